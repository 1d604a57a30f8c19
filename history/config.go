package history

import "github.com/xyths/hs"

type Config struct {
	Exchange hs.ExchangeConf
	Mongo    hs.MongoConf
	History  hs.HistoryConf // Interval is the poll period, e.g. "5m"
	Log      hs.LogConf
	Candle   CandleConf
}

type CandleConf struct {
	Interval int // minutes, one of kraken.Intervals
}
