package types

import "time"

// for mongo
//
//	symbol: 交易对, as configured
//	interval: candle size in minutes
//	time: candle open time
//	prices and volume are kept as decimal strings
type Candle struct {
	ID       string    `bson:"_id"`
	Symbol   string    `bson:"symbol"`
	Interval int       `bson:"interval"`
	Time     time.Time `bson:"time"`
	Open     string    `bson:"open"`
	High     string    `bson:"high"`
	Low      string    `bson:"low"`
	Close    string    `bson:"close"`
	VWAP     string    `bson:"vwap"`
	Volume   string    `bson:"volume"`
	Count    int64     `bson:"count"`
}
