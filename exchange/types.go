package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticker struct {
	Symbol     string
	Last       decimal.Decimal
	LowestAsk  decimal.Decimal // 卖1
	HighestBid decimal.Decimal // 买1
	Open       decimal.Decimal // today's opening price
	High24h    decimal.Decimal
	Low24h     decimal.Decimal
	Volume24h  decimal.Decimal // base currency
	VWAP24h    decimal.Decimal
	Trades24h  int64
}

type Candle struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	VWAP      decimal.Decimal
	Volume    decimal.Decimal
	Count     int64
}

const (
	MIN1  = time.Minute
	MIN5  = 5 * time.Minute
	MIN15 = 15 * time.Minute
	MIN30 = 30 * time.Minute
	HOUR1 = time.Hour
	HOUR4 = 4 * time.Hour
	DAY1  = 24 * time.Hour
	WEEK1 = 7 * DAY1
	DAY15 = 15 * DAY1
)
