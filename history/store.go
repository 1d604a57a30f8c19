package history

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xyths/kraken/exchange"
	"github.com/xyths/kraken/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps candles per (symbol, interval). Saving a candle that already
// exists replaces it, so the still forming last candle gets refreshed.
type Store interface {
	Latest(ctx context.Context, symbol string, interval int) (t time.Time, ok bool, err error)
	Save(ctx context.Context, symbol string, interval int, candles []exchange.Candle) (int, error)
	Candles(ctx context.Context, symbol string, interval int, start, end time.Time) ([]exchange.Candle, error)
}

const collNameCandle = "candle"

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collNameCandle)}
}

func candleID(symbol string, interval int, t time.Time) string {
	return fmt.Sprintf("%s-%d-%d", symbol, interval, t.Unix())
}

func (s *MongoStore) Latest(ctx context.Context, symbol string, interval int) (time.Time, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "time", Value: -1}})
	var c types.Candle
	err := s.coll.FindOne(ctx, bson.D{{Key: "symbol", Value: symbol}, {Key: "interval", Value: interval}}, opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return c.Time, true, nil
}

func (s *MongoStore) Save(ctx context.Context, symbol string, interval int, candles []exchange.Candle) (int, error) {
	if len(candles) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, len(candles))
	for i, c := range candles {
		doc := toDoc(symbol, interval, c)
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: doc.ID}}).
			SetReplacement(doc).
			SetUpsert(true)
	}
	res, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(res.UpsertedCount + res.ModifiedCount), nil
}

func (s *MongoStore) Candles(ctx context.Context, symbol string, interval int, start, end time.Time) ([]exchange.Candle, error) {
	cursor, err := s.coll.Find(ctx, bson.D{
		{Key: "symbol", Value: symbol},
		{Key: "interval", Value: interval},
		{Key: "time", Value: bson.D{
			{Key: "$gte", Value: start},
			{Key: "$lte", Value: end},
		}},
	}, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []types.Candle
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	candles := make([]exchange.Candle, len(docs))
	for i, d := range docs {
		if candles[i], err = fromDoc(d); err != nil {
			return nil, errors.Wrapf(err, "candle %s", d.ID)
		}
	}
	return candles, nil
}

func toDoc(symbol string, interval int, c exchange.Candle) types.Candle {
	return types.Candle{
		ID:       candleID(symbol, interval, c.Timestamp),
		Symbol:   symbol,
		Interval: interval,
		Time:     c.Timestamp.UTC(),
		Open:     c.Open.String(),
		High:     c.High.String(),
		Low:      c.Low.String(),
		Close:    c.Close.String(),
		VWAP:     c.VWAP.String(),
		Volume:   c.Volume.String(),
		Count:    c.Count,
	}
}

func fromDoc(d types.Candle) (c exchange.Candle, err error) {
	c.Timestamp = d.Time
	c.Count = d.Count
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"open", d.Open, &c.Open},
		{"high", d.High, &c.High},
		{"low", d.Low, &c.Low},
		{"close", d.Close, &c.Close},
		{"vwap", d.VWAP, &c.VWAP},
		{"volume", d.Volume, &c.Volume},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return exchange.Candle{}, errors.Wrapf(err, "field %s", f.name)
		}
	}
	return c, nil
}
