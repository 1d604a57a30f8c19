package history

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyths/hs"
	"github.com/xyths/kraken/exchange"
	"github.com/xyths/kraken/kraken"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu     sync.Mutex
	since  map[string]int64
	data   map[string][]kraken.OHLC
	failOn map[string]error
}

func (f *fakeSource) OHLC(ctx context.Context, pair string, interval int, since int64) (*kraken.OHLCData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.since == nil {
		f.since = make(map[string]int64)
	}
	f.since[pair] = since
	if err := f.failOn[pair]; err != nil {
		return nil, err
	}
	var out []kraken.OHLC
	for _, o := range f.data[pair] {
		if o.Time > since {
			out = append(out, o)
		}
	}
	return &kraken.OHLCData{Pair: pair, Candles: out}, nil
}

type memStore struct {
	mu      sync.Mutex
	candles map[string]map[int64]exchange.Candle
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{candles: make(map[string]map[int64]exchange.Candle)}
}

func (m *memStore) Latest(ctx context.Context, symbol string, interval int) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest int64
	for ts := range m.candles[symbol] {
		if ts > latest {
			latest = ts
		}
	}
	if latest == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(latest, 0), true, nil
}

func (m *memStore) Save(ctx context.Context, symbol string, interval int, candles []exchange.Candle) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	if m.candles[symbol] == nil {
		m.candles[symbol] = make(map[int64]exchange.Candle)
	}
	for _, c := range candles {
		m.candles[symbol][c.Timestamp.Unix()] = c
	}
	return len(candles), nil
}

func (m *memStore) Candles(ctx context.Context, symbol string, interval int, start, end time.Time) ([]exchange.Candle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []exchange.Candle
	for _, c := range m.candles[symbol] {
		if !c.Timestamp.Before(start) && !c.Timestamp.After(end) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func ohlc(ts int64, price string) kraken.OHLC {
	p := decimal.RequireFromString(price)
	return kraken.OHLC{Time: ts, Open: p, High: p, Low: p, Close: p, VWAP: p, Volume: decimal.NewFromInt(1), Count: 3}
}

func testConfig(symbols ...string) Config {
	return Config{
		Exchange: hs.ExchangeConf{Symbols: symbols},
		History:  hs.HistoryConf{Interval: "1m"},
		Candle:   CandleConf{Interval: 1},
	}
}

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(Config{History: hs.HistoryConf{Interval: "soon"}})
	assert.Error(t, err)

	h, err := NewFromConfig(Config{History: hs.HistoryConf{Interval: "5m"}})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, h.interval)
	assert.Equal(t, 1, h.config.Candle.Interval)
}

func TestHistory_PullOnce(t *testing.T) {
	src := &fakeSource{data: map[string][]kraken.OHLC{
		"XBTUSD": {ohlc(1688671200, "30306.1"), ohlc(1688671260, "30300")},
		"ETHUSD": {ohlc(1688671200, "1850.5")},
	}}
	store := newMemStore()
	h, err := newWithDeps(testConfig("XBTUSD", "ETHUSD"), src, store, zap.NewNop().Sugar())
	require.NoError(t, err)

	require.NoError(t, h.PullOnce(context.Background()))
	assert.Len(t, store.candles["XBTUSD"], 2)
	assert.Len(t, store.candles["ETHUSD"], 1)
	assert.Equal(t, int64(0), src.since["XBTUSD"])

	// the second round resumes one candle before the latest stored one
	src.data["XBTUSD"] = append(src.data["XBTUSD"], ohlc(1688671320, "30310"))
	require.NoError(t, h.PullOnce(context.Background()))
	assert.Equal(t, int64(1688671260-60), src.since["XBTUSD"])
	assert.Len(t, store.candles["XBTUSD"], 3)
}

func TestHistory_PullOnceFetchError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{
		data:   map[string][]kraken.OHLC{"ETHUSD": {ohlc(1688671200, "1850.5")}},
		failOn: map[string]error{"XBTUSD": boom, "DOTUSD": boom},
	}
	store := newMemStore()
	h, err := newWithDeps(testConfig("XBTUSD", "ETHUSD", "DOTUSD"), src, store, zap.NewNop().Sugar())
	require.NoError(t, err)

	err = h.PullOnce(context.Background())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Len(t, store.candles["ETHUSD"], 1)
}

func TestHistory_PullOnceSaveError(t *testing.T) {
	src := &fakeSource{data: map[string][]kraken.OHLC{"XBTUSD": {ohlc(1688671200, "30306.1")}}}
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	h, err := newWithDeps(testConfig("XBTUSD"), src, store, zap.NewNop().Sugar())
	require.NoError(t, err)

	err = h.PullOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestHistory_PullStopsOnCancel(t *testing.T) {
	src := &fakeSource{data: map[string][]kraken.OHLC{}}
	h, err := newWithDeps(testConfig("XBTUSD"), src, newMemStore(), zap.NewNop().Sugar())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, h.Pull(ctx))
}

func TestHistory_Export(t *testing.T) {
	src := &fakeSource{data: map[string][]kraken.OHLC{
		"XBTUSD": {ohlc(1688671200, "30306.1"), ohlc(1688671260, "30300")},
	}}
	h, err := newWithDeps(testConfig("XBTUSD"), src, newMemStore(), zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, h.PullOnce(context.Background()))

	dir, err := ioutil.TempDir("", "history")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "candles.csv")

	require.NoError(t, h.Export(context.Background(), "XBTUSD", time.Unix(1688671200, 0), time.Unix(1688671200, 0), file))
	data, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "symbol,time,open,high,low,close,vwap,volume,count", lines[0])
	assert.Equal(t, "XBTUSD,2023-07-06T19:20:00Z,30306.1,30306.1,30306.1,30306.1,30306.1,1,3", lines[1])
}

func TestCandleDoc(t *testing.T) {
	c := exchange.Candle{
		Timestamp: time.Unix(1688671200, 0),
		Open:      decimal.RequireFromString("30306.1"),
		High:      decimal.RequireFromString("30306.2"),
		Low:       decimal.RequireFromString("30305.7"),
		Close:     decimal.RequireFromString("30305.7"),
		VWAP:      decimal.RequireFromString("30306.1"),
		Volume:    decimal.RequireFromString("3.39243896"),
		Count:     23,
	}
	doc := toDoc("XBTUSD", 1, c)
	assert.Equal(t, "XBTUSD-1-1688671200", doc.ID)
	back, err := fromDoc(doc)
	require.NoError(t, err)
	assert.True(t, back.Timestamp.Equal(c.Timestamp))
	assert.True(t, back.Volume.Equal(c.Volume))
	assert.Equal(t, c.Count, back.Count)

	doc.VWAP = ""
	_, err = fromDoc(doc)
	assert.Error(t, err)

	doc.VWAP = "30306.1"
	doc.High = "n/a"
	_, err = fromDoc(doc)
	assert.Contains(t, err.Error(), "field high")
}
