package kraken

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ServerTime struct {
	UnixTime int64  `json:"unixtime"`
	RFC1123  string `json:"rfc1123"`
}

func (t ServerTime) Time() time.Time { return time.Unix(t.UnixTime, 0) }

type SystemStatus struct {
	Status    string `json:"status"` // online, maintenance, cancel_only, post_only
	Timestamp string `json:"timestamp"`
}

type AssetInfo struct {
	AssetClass      string `json:"aclass"`
	AltName         string `json:"altname"`
	Decimals        int    `json:"decimals"`
	DisplayDecimals int    `json:"display_decimals"`
	Status          string `json:"status"`
}

type AssetPair struct {
	AltName           string              `json:"altname"`
	WsName            string              `json:"wsname"`
	AssetClassBase    string              `json:"aclass_base"`
	Base              string              `json:"base"`
	AssetClassQuote   string              `json:"aclass_quote"`
	Quote             string              `json:"quote"`
	PairDecimals      int                 `json:"pair_decimals"`
	CostDecimals      int                 `json:"cost_decimals"`
	LotDecimals       int                 `json:"lot_decimals"`
	LotMultiplier     int                 `json:"lot_multiplier"`
	LeverageBuy       []int               `json:"leverage_buy"`
	LeverageSell      []int               `json:"leverage_sell"`
	Fees              [][]decimal.Decimal `json:"fees"`
	FeesMaker         [][]decimal.Decimal `json:"fees_maker"`
	FeeVolumeCurrency string              `json:"fee_volume_currency"`
	MarginCall        int                 `json:"margin_call"`
	MarginStop        int                 `json:"margin_stop"`
	OrderMin          decimal.Decimal     `json:"ordermin"`
	CostMin           decimal.Decimal     `json:"costmin"`
	TickSize          decimal.Decimal     `json:"tick_size"`
	Status            string              `json:"status"`
}

// TickerInfo arrays follow the exchange layout: Ask and Bid are
// [price, whole lot volume, lot volume], the [2] arrays are [today, last 24h].
type TickerInfo struct {
	Ask       [3]decimal.Decimal `json:"a"`
	Bid       [3]decimal.Decimal `json:"b"`
	LastTrade [2]decimal.Decimal `json:"c"`
	Volume    [2]decimal.Decimal `json:"v"`
	VWAP      [2]decimal.Decimal `json:"p"`
	Trades    [2]int64           `json:"t"`
	Low       [2]decimal.Decimal `json:"l"`
	High      [2]decimal.Decimal `json:"h"`
	Open      decimal.Decimal    `json:"o"`
}

// OHLCData is the candle list of one pair plus the cursor for the next poll.
type OHLCData struct {
	Pair    string
	Candles []OHLC
	Last    int64
}

type OHLC struct {
	Time   int64
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	VWAP   decimal.Decimal
	Volume decimal.Decimal
	Count  int64
}

// [time, open, high, low, close, vwap, volume, count]
func (o *OHLC) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 8 {
		return errors.Errorf("ohlc entry has %d fields, want 8", len(raw))
	}
	if err := json.Unmarshal(raw[0], &o.Time); err != nil {
		return err
	}
	for i, d := range []*decimal.Decimal{&o.Open, &o.High, &o.Low, &o.Close, &o.VWAP, &o.Volume} {
		if err := json.Unmarshal(raw[i+1], d); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw[7], &o.Count)
}

type OrderBookEntry struct {
	Price     decimal.Decimal
	Volume    decimal.Decimal
	Timestamp int64
}

// [price, volume, timestamp]
func (e *OrderBookEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 3 {
		return errors.Errorf("order book entry has %d fields, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Price); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.Volume); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &e.Timestamp)
}

type OrderBook struct {
	Asks []OrderBookEntry `json:"asks"`
	Bids []OrderBookEntry `json:"bids"`
}

type TradesData struct {
	Pair   string
	Trades []Trade
	Last   string
}

type Trade struct {
	Price     decimal.Decimal
	Volume    decimal.Decimal
	Time      float64
	Side      string // b or s
	OrderType string // m or l
	Misc      string
	TradeID   int64
}

// [price, volume, time, side, type, misc, trade id]
func (t *Trade) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 6 {
		return errors.Errorf("trade entry has %d fields, want at least 6", len(raw))
	}
	targets := []interface{}{&t.Price, &t.Volume, &t.Time, &t.Side, &t.OrderType, &t.Misc}
	for i, v := range targets {
		if err := json.Unmarshal(raw[i], v); err != nil {
			return err
		}
	}
	if len(raw) > 6 {
		return json.Unmarshal(raw[6], &t.TradeID)
	}
	return nil
}

type SpreadData struct {
	Pair    string
	Spreads []Spread
	Last    int64
}

type Spread struct {
	Time int64
	Bid  decimal.Decimal
	Ask  decimal.Decimal
}

// [time, bid, ask]
func (s *Spread) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 3 {
		return errors.Errorf("spread entry has %d fields, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Time); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &s.Bid); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &s.Ask)
}

// splitLast separates the "last" cursor from the per pair payload of OHLC,
// Trades and Spread results. Those results carry exactly one pair.
func splitLast(raw json.RawMessage) (pair string, data json.RawMessage, last json.RawMessage, err error) {
	var m map[string]json.RawMessage
	if err = json.Unmarshal(raw, &m); err != nil {
		return
	}
	last = m["last"]
	for k, v := range m {
		if k == "last" {
			continue
		}
		pair, data = k, v
		return
	}
	err = errors.New("result carries no pair data")
	return
}

type TradeBalance struct {
	EquivalentBalance decimal.Decimal `json:"eb"`
	TradeBalance      decimal.Decimal `json:"tb"`
	MarginAmount      decimal.Decimal `json:"m"`
	UnrealizedNet     decimal.Decimal `json:"n"`
	Cost              decimal.Decimal `json:"c"`
	Valuation         decimal.Decimal `json:"v"`
	Equity            decimal.Decimal `json:"e"`
	FreeMargin        decimal.Decimal `json:"mf"`
	MarginLevel       decimal.Decimal `json:"ml"`
	Unexecuted        decimal.Decimal `json:"uv"`
}

type OrderDescription struct {
	Pair      string `json:"pair"`
	Type      string `json:"type"`
	OrderType string `json:"ordertype"`
	Price     string `json:"price"`
	Price2    string `json:"price2"`
	Leverage  string `json:"leverage"`
	Order     string `json:"order"`
	Close     string `json:"close"`
}

type OrderInfo struct {
	RefID      string           `json:"refid"`
	UserRef    int64            `json:"userref"`
	Status     string           `json:"status"`
	OpenTime   float64          `json:"opentm"`
	StartTime  float64          `json:"starttm"`
	ExpireTime float64          `json:"expiretm"`
	CloseTime  float64          `json:"closetm"`
	Descr      OrderDescription `json:"descr"`
	Volume     decimal.Decimal  `json:"vol"`
	VolumeExec decimal.Decimal  `json:"vol_exec"`
	Cost       decimal.Decimal  `json:"cost"`
	Fee        decimal.Decimal  `json:"fee"`
	Price      decimal.Decimal  `json:"price"`
	StopPrice  decimal.Decimal  `json:"stopprice"`
	LimitPrice decimal.Decimal  `json:"limitprice"`
	Misc       string           `json:"misc"`
	Flags      string           `json:"oflags"`
	Trades     []string         `json:"trades"`
	Reason     string           `json:"reason"`
}

type OpenOrders struct {
	Open map[string]OrderInfo `json:"open"`
}

type ClosedOrders struct {
	Closed map[string]OrderInfo `json:"closed"`
	Count  int                  `json:"count"`
}

type TradeInfo struct {
	OrderTxID string          `json:"ordertxid"`
	PosTxID   string          `json:"postxid"`
	Pair      string          `json:"pair"`
	Time      float64         `json:"time"`
	Type      string          `json:"type"`
	OrderType string          `json:"ordertype"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Fee       decimal.Decimal `json:"fee"`
	Volume    decimal.Decimal `json:"vol"`
	Margin    decimal.Decimal `json:"margin"`
	Misc      string          `json:"misc"`
}

type TradesHistory struct {
	Trades map[string]TradeInfo `json:"trades"`
	Count  int                  `json:"count"`
}

type PositionInfo struct {
	OrderTxID  string          `json:"ordertxid"`
	PosStatus  string          `json:"posstatus"`
	Pair       string          `json:"pair"`
	Time       float64         `json:"time"`
	Type       string          `json:"type"`
	OrderType  string          `json:"ordertype"`
	Cost       decimal.Decimal `json:"cost"`
	Fee        decimal.Decimal `json:"fee"`
	Volume     decimal.Decimal `json:"vol"`
	VolumeC    decimal.Decimal `json:"vol_closed"`
	Margin     decimal.Decimal `json:"margin"`
	Value      decimal.Decimal `json:"value"`
	Net        decimal.Decimal `json:"net"`
	Terms      string          `json:"terms"`
	RolloverTm string          `json:"rollovertm"`
	Misc       string          `json:"misc"`
	Flags      string          `json:"oflags"`
}

type LedgerInfo struct {
	RefID      string          `json:"refid"`
	Time       float64         `json:"time"`
	Type       string          `json:"type"`
	SubType    string          `json:"subtype"`
	AssetClass string          `json:"aclass"`
	Asset      string          `json:"asset"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	Balance    decimal.Decimal `json:"balance"`
}

type Ledgers struct {
	Ledger map[string]LedgerInfo `json:"ledger"`
	Count  int                   `json:"count"`
}

type FeeInfo struct {
	Fee        decimal.Decimal `json:"fee"`
	MinFee     decimal.Decimal `json:"minfee"`
	MaxFee     decimal.Decimal `json:"maxfee"`
	NextFee    decimal.Decimal `json:"nextfee"`
	NextVolume decimal.Decimal `json:"nextvolume"`
	TierVolume decimal.Decimal `json:"tiervolume"`
}

type TradeVolume struct {
	Currency  string             `json:"currency"`
	Volume    decimal.Decimal    `json:"volume"`
	Fees      map[string]FeeInfo `json:"fees"`
	FeesMaker map[string]FeeInfo `json:"fees_maker"`
}

type AddOrderResult struct {
	Descr struct {
		Order string `json:"order"`
		Close string `json:"close"`
	} `json:"descr"`
	TxID []string `json:"txid"`
}

type CancelOrderResult struct {
	Count   int  `json:"count"`
	Pending bool `json:"pending"`
}

type DepositMethod struct {
	Method          string          `json:"method"`
	Limit           json.RawMessage `json:"limit"` // false or an amount
	Fee             decimal.Decimal `json:"fee"`
	AddressSetupFee decimal.Decimal `json:"address-setup-fee"`
	GenAddress      bool            `json:"gen-address"`
}

type DepositAddress struct {
	Address  string `json:"address"`
	ExpireTm string `json:"expiretm"`
	New      bool   `json:"new"`
	Tag      string `json:"tag"`
}

type TransferStatus struct {
	Method     string          `json:"method"`
	AssetClass string          `json:"aclass"`
	Asset      string          `json:"asset"`
	RefID      string          `json:"refid"`
	TxID       string          `json:"txid"`
	Info       string          `json:"info"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	Time       int64           `json:"time"`
	Status     string          `json:"status"`
}

type WithdrawInfo struct {
	Method string          `json:"method"`
	Limit  decimal.Decimal `json:"limit"`
	Amount decimal.Decimal `json:"amount"`
	Fee    decimal.Decimal `json:"fee"`
}

type WithdrawResult struct {
	RefID string `json:"refid"`
}

type WebSocketsToken struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}
