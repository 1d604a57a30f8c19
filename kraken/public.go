package kraken

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xyths/kraken/exchange"
)

func (c *Client) public(ctx context.Context, resource string, params Params, result interface{}) error {
	res, err := c.PublicRequest(ctx, resource, params)
	if err != nil {
		return err
	}
	return res.Decode(result)
}

// Time returns the server time.
func (c *Client) Time(ctx context.Context) (t ServerTime, err error) {
	err = c.public(ctx, "Time", Params{}, &t)
	return
}

func (c *Client) SystemStatus(ctx context.Context) (s SystemStatus, err error) {
	err = c.public(ctx, "SystemStatus", Params{}, &s)
	return
}

// Assets returns asset info keyed by asset name, for all assets when none are given.
func (c *Client) Assets(ctx context.Context, assets ...string) (map[string]AssetInfo, error) {
	var p Params
	p.Set("asset", assets)
	var res map[string]AssetInfo
	if err := c.public(ctx, "Assets", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// AssetPairs returns tradable pairs. info may be empty or one of AssetPairInfos.
func (c *Client) AssetPairs(ctx context.Context, info string, pairs ...string) (map[string]AssetPair, error) {
	var p Params
	if info != "" {
		if err := checkString("AssetPairs", "info", info, AssetPairInfos); err != nil {
			return nil, err
		}
		p.Set("info", info)
	}
	p.Set("pair", pairs)
	var res map[string]AssetPair
	if err := c.public(ctx, "AssetPairs", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Ticker(ctx context.Context, pairs ...string) (map[string]TickerInfo, error) {
	if len(pairs) == 0 {
		return nil, validationError("Ticker", "at least one pair is required")
	}
	var p Params
	p.Set("pair", pairs)
	var res map[string]TickerInfo
	if err := c.public(ctx, "Ticker", p, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// OHLC returns candles of interval minutes, which must be one of Intervals.
// since is the "last" cursor of a previous call, 0 for the most recent candles.
func (c *Client) OHLC(ctx context.Context, pair string, interval int, since int64) (*OHLCData, error) {
	if err := checkRequired("OHLC", "pair", pair); err != nil {
		return nil, err
	}
	if err := checkInt("OHLC", "interval", interval, Intervals); err != nil {
		return nil, err
	}
	p := NewParams("pair", pair, "interval", interval)
	if since > 0 {
		p.Set("since", since)
	}
	res, err := c.PublicRequest(ctx, "OHLC", p)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := res.Decode(&raw); err != nil {
		return nil, err
	}
	name, data, last, err := splitLast(raw)
	if err != nil {
		return nil, decodeError("OHLC", err)
	}
	out := &OHLCData{Pair: name}
	if err := json.Unmarshal(data, &out.Candles); err != nil {
		return nil, decodeError("OHLC", err)
	}
	if len(last) > 0 {
		if err := json.Unmarshal(last, &out.Last); err != nil {
			return nil, decodeError("OHLC", err)
		}
	}
	return out, nil
}

// Depth returns the order book of pair, count entries per side when count > 0.
func (c *Client) Depth(ctx context.Context, pair string, count int) (*OrderBook, error) {
	if err := checkRequired("Depth", "pair", pair); err != nil {
		return nil, err
	}
	p := NewParams("pair", pair)
	if count > 0 {
		p.Set("count", count)
	}
	var res map[string]OrderBook
	if err := c.public(ctx, "Depth", p, &res); err != nil {
		return nil, err
	}
	for _, book := range res {
		return &book, nil
	}
	return nil, decodeError("Depth", errors.New("result carries no pair data"))
}

func (c *Client) Trades(ctx context.Context, pair string, since string) (*TradesData, error) {
	if err := checkRequired("Trades", "pair", pair); err != nil {
		return nil, err
	}
	p := NewParams("pair", pair)
	if since != "" {
		p.Set("since", since)
	}
	res, err := c.PublicRequest(ctx, "Trades", p)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := res.Decode(&raw); err != nil {
		return nil, err
	}
	name, data, last, err := splitLast(raw)
	if err != nil {
		return nil, decodeError("Trades", err)
	}
	out := &TradesData{Pair: name}
	if err := json.Unmarshal(data, &out.Trades); err != nil {
		return nil, decodeError("Trades", err)
	}
	if len(last) > 0 {
		if err := json.Unmarshal(last, &out.Last); err != nil {
			return nil, decodeError("Trades", err)
		}
	}
	return out, nil
}

func (c *Client) Spread(ctx context.Context, pair string, since int64) (*SpreadData, error) {
	if err := checkRequired("Spread", "pair", pair); err != nil {
		return nil, err
	}
	p := NewParams("pair", pair)
	if since > 0 {
		p.Set("since", since)
	}
	res, err := c.PublicRequest(ctx, "Spread", p)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := res.Decode(&raw); err != nil {
		return nil, err
	}
	name, data, last, err := splitLast(raw)
	if err != nil {
		return nil, decodeError("Spread", err)
	}
	out := &SpreadData{Pair: name}
	if err := json.Unmarshal(data, &out.Spreads); err != nil {
		return nil, decodeError("Spread", err)
	}
	if len(last) > 0 {
		if err := json.Unmarshal(last, &out.Last); err != nil {
			return nil, decodeError("Spread", err)
		}
	}
	return out, nil
}

func decodeError(op string, err error) error {
	return &Error{Kind: ErrExchange, Op: op, Err: err}
}

// exchange.RestAPI

func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	t, err := c.tickerOf(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return t.LastTrade[0], nil
}

func (c *Client) Last24hVolume(ctx context.Context, symbol string) (decimal.Decimal, error) {
	t, err := c.tickerOf(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return t.Volume[1], nil
}

// GetTicker converts the ticker of symbol to the shared exchange type.
func (c *Client) GetTicker(ctx context.Context, symbol string) (exchange.Ticker, error) {
	t, err := c.tickerOf(ctx, symbol)
	if err != nil {
		return exchange.Ticker{}, err
	}
	return exchange.Ticker{
		Symbol:     symbol,
		Last:       t.LastTrade[0],
		LowestAsk:  t.Ask[0],
		HighestBid: t.Bid[0],
		Open:       t.Open,
		High24h:    t.High[1],
		Low24h:     t.Low[1],
		Volume24h:  t.Volume[1],
		VWAP24h:    t.VWAP[1],
		Trades24h:  t.Trades[1],
	}, nil
}

// candle periods accepted by CandleBySize, in minutes
var periodIntervals = map[time.Duration]int{
	exchange.MIN1:  1,
	exchange.MIN5:  5,
	exchange.MIN15: 15,
	exchange.MIN30: 30,
	exchange.HOUR1: 60,
	exchange.HOUR4: 240,
	exchange.DAY1:  1440,
	exchange.WEEK1: 10080,
	exchange.DAY15: 21600,
}

// CandleBySize returns candles of the given period, one of the exchange period constants.
func (c *Client) CandleBySize(ctx context.Context, symbol string, period time.Duration, since time.Time) ([]exchange.Candle, error) {
	interval, ok := periodIntervals[period]
	if !ok {
		return nil, validationError("CandleBySize", "unsupported candle period %s", period)
	}
	var cursor int64
	if !since.IsZero() {
		cursor = since.Unix()
	}
	data, err := c.OHLC(ctx, symbol, interval, cursor)
	if err != nil {
		return nil, err
	}
	candles := make([]exchange.Candle, len(data.Candles))
	for i, o := range data.Candles {
		candles[i] = exchange.Candle{
			Timestamp: time.Unix(o.Time, 0),
			Open:      o.Open,
			High:      o.High,
			Low:       o.Low,
			Close:     o.Close,
			VWAP:      o.VWAP,
			Volume:    o.Volume,
			Count:     o.Count,
		}
	}
	return candles, nil
}

// the ticker result is keyed by the exchange's own pair name, which may differ
// from symbol (XBTUSD comes back as XXBTZUSD)
func (c *Client) tickerOf(ctx context.Context, symbol string) (TickerInfo, error) {
	tickers, err := c.Ticker(ctx, symbol)
	if err != nil {
		return TickerInfo{}, err
	}
	if t, ok := tickers[symbol]; ok {
		return t, nil
	}
	if len(tickers) == 1 {
		for _, t := range tickers {
			return t, nil
		}
	}
	for name, t := range tickers {
		if strings.EqualFold(name, symbol) {
			return t, nil
		}
	}
	return TickerInfo{}, decodeError("Ticker", errors.Errorf("no ticker for %s", symbol))
}
