package history

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/xyths/hs"
	"github.com/xyths/kraken/exchange"
	"github.com/xyths/kraken/kraken"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is the part of the kraken client the archiver needs.
type Source interface {
	OHLC(ctx context.Context, pair string, interval int, since int64) (*kraken.OHLCData, error)
}

// History archives OHLC candles of the configured symbols.
type History struct {
	config   Config
	interval time.Duration

	Sugar *zap.SugaredLogger
	db    *mongo.Database
	ex    Source
	store Store
}

func New(configFilename string) (*History, error) {
	cfg := Config{}
	if err := hs.ParseJsonConfig(configFilename, &cfg); err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

func NewFromConfig(cfg Config) (*History, error) {
	d, err := time.ParseDuration(cfg.History.Interval)
	if err != nil {
		return nil, errors.Wrapf(err, "bad history interval %q", cfg.History.Interval)
	}
	if cfg.Candle.Interval == 0 {
		cfg.Candle.Interval = 1
	}
	return &History{
		config:   cfg,
		interval: d,
	}, nil
}

// Init connects to mongo and builds the exchange client. Tests use
// newWithDeps instead.
func (h *History) Init(ctx context.Context) error {
	l, err := hs.NewZapLogger(h.config.Log)
	if err != nil {
		return err
	}
	h.Sugar = l.Sugar()
	h.Sugar.Info("Logger initialized")

	db, err := hs.ConnectMongo(ctx, h.config.Mongo)
	if err != nil {
		return err
	}
	h.db = db
	h.store = NewMongoStore(db)

	ex, err := kraken.New(kraken.Config{
		Key:    h.config.Exchange.Key,
		Secret: h.config.Exchange.Secret,
		Host:   h.config.Exchange.Host,
	}, kraken.WithLogger(h.Sugar))
	if err != nil {
		return err
	}
	h.ex = ex
	h.Sugar.Infof("Exchange initialized, symbols: %v", h.config.Exchange.Symbols)
	return nil
}

func newWithDeps(cfg Config, ex Source, store Store, sugar *zap.SugaredLogger) (*History, error) {
	h, err := NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	h.ex = ex
	h.store = store
	h.Sugar = sugar
	return h, nil
}

func (h *History) Close(ctx context.Context) {
	if h.db != nil {
		_ = h.db.Client().Disconnect(ctx)
	}
}

// Pull archives once, then every poll period until ctx is done.
func (h *History) Pull(ctx context.Context) error {
	if err := h.PullOnce(ctx); err != nil {
		h.Sugar.Errorf("error when pull candles: %s", err)
	}

	for {
		select {
		case <-ctx.Done():
			h.Sugar.Info(ctx.Err())
			return nil
		case <-time.After(h.interval):
			if err := h.PullOnce(ctx); err != nil {
				h.Sugar.Errorf("error when pull candles: %s", err)
			}
		}
	}
}

// PullOnce fetches every symbol concurrently. A failed fetch does not stop the
// other symbols and is reported in the combined error; a failed save aborts
// the round.
func (h *History) PullOnce(ctx context.Context) error {
	var (
		mu        sync.Mutex
		fetchErrs error
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range h.config.Exchange.Symbols {
		symbol := symbol
		g.Go(func() error {
			candles, err := h.fetch(ctx, symbol)
			if err != nil {
				h.Sugar.Errorw("fetch candles failed", "symbol", symbol, "error", err)
				mu.Lock()
				fetchErrs = multierr.Append(fetchErrs, errors.Wrapf(err, "fetch %s", symbol))
				mu.Unlock()
				return nil
			}
			n, err := h.store.Save(ctx, symbol, h.config.Candle.Interval, candles)
			if err != nil {
				return errors.Wrapf(err, "save %s", symbol)
			}
			h.Sugar.Infow("candles saved", "symbol", symbol, "got", len(candles), "saved", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return fetchErrs
}

func (h *History) fetch(ctx context.Context, symbol string) ([]exchange.Candle, error) {
	interval := h.config.Candle.Interval
	latest, ok, err := h.store.Latest(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	var since int64
	if ok {
		// one step back so the last stored candle, possibly still forming, is refreshed
		since = latest.Unix() - int64(interval)*60
	}
	data, err := h.ex.OHLC(ctx, symbol, interval, since)
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

// Export writes the stored candles of symbol between start and end to csvfile.
func (h *History) Export(ctx context.Context, symbol string, start, end time.Time, csvfile string) error {
	candles, err := h.store.Candles(ctx, symbol, h.config.Candle.Interval, start, end)
	if err != nil {
		h.Sugar.Errorf("error when load candles: %s", err)
		return err
	}
	f, err := os.Create(csvfile)
	if err != nil {
		h.Sugar.Error(err)
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	header := []string{"symbol", "time", "open", "high", "low", "close", "vwap", "volume", "count"}
	if err = w.Write(header); err != nil {
		return err
	}
	for _, c := range candles {
		record := []string{
			symbol,
			c.Timestamp.UTC().Format(time.RFC3339),
			c.Open.String(),
			c.High.String(),
			c.Low.String(),
			c.Close.String(),
			c.VWAP.String(),
			c.Volume.String(),
			strconv.FormatInt(c.Count, 10),
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
