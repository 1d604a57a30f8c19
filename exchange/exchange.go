package exchange

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RestAPI is the market data surface a REST exchange client offers to the
// rest of the toolkit.
type RestAPI interface {
	ExchangeName() string
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	Last24hVolume(ctx context.Context, symbol string) (decimal.Decimal, error)
	CandleBySize(ctx context.Context, symbol string, period time.Duration, since time.Time) ([]Candle, error)
}

type volume struct {
	Symbol string
	Vol    decimal.Decimal
}
type symbolVolume []volume

func (sv symbolVolume) Len() int {
	return len(sv)
}
func (sv symbolVolume) Swap(i, j int) {
	sv[i], sv[j] = sv[j], sv[i]
}
func (sv symbolVolume) Less(i, j int) bool {
	return sv[i].Vol.LessThan(sv[j].Vol)
}

// SortByVol24h sorts symbols by 24h trade volume, largest first. Symbols
// whose volume can't be fetched or isn't positive are dropped.
func SortByVol24h(ctx context.Context, ex RestAPI, symbols []string) ([]string, error) {
	var vols symbolVolume
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vol, err := ex.Last24hVolume(ctx, s)
		if err != nil {
			continue
		}
		if !vol.IsPositive() {
			continue
		}
		vols = append(vols, volume{Symbol: s, Vol: vol})
	}
	sort.Stable(sort.Reverse(vols))
	ret := make([]string, len(vols))
	for i := 0; i < len(vols); i++ {
		ret[i] = vols[i].Symbol
	}
	return ret, nil
}
