package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/registry"
	"github.com/gfranco93/bolsa-monitor/utils"
)

var ErrAllStrategiesFailed = errors.New("all acquisition strategies failed")

// Strategy is one way of obtaining a quote for an instrument. Strategies
// are tried in order, first success wins.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, instrument registry.Instrument) (model.Quote, error)
}

type Fetcher struct {
	strategies []Strategy
}

func New(strategies ...Strategy) *Fetcher {
	return &Fetcher{strategies: strategies}
}

// Fetch tries every strategy in order and returns the first quote with a
// positive price. A strategy error or panic means move on to the next one.
func (f *Fetcher) Fetch(ctx context.Context, instrument registry.Instrument) (model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	for _, strategy := range f.strategies {
		quote, err := f.tryStrategy(ctx, strategy, instrument)
		if err != nil {
			slog.Warn(
				"acquisition strategy failed",
				slog.String("rqID", rqID),
				slog.String("strategy", strategy.Name()),
				slog.String("symbol", instrument.Symbol),
				slog.String("err", err.Error()),
			)
			continue
		}

		if !quote.Price.IsPositive() {
			slog.Warn(
				"acquisition strategy returned non-positive price",
				slog.String("rqID", rqID),
				slog.String("strategy", strategy.Name()),
				slog.String("symbol", instrument.Symbol),
			)
			continue
		}

		return quote, nil
	}

	return model.Quote{}, fmt.Errorf("%w: %s", ErrAllStrategiesFailed, instrument.Symbol)
}

func (f *Fetcher) tryStrategy(ctx context.Context, strategy Strategy, instrument registry.Instrument) (quote model.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(
				"panic recovered in acquisition strategy",
				slog.String("strategy", strategy.Name()),
				slog.String("symbol", instrument.Symbol),
				slog.Any("panic", r),
				slog.String("stacktrace", string(debug.Stack())),
			)
			err = fmt.Errorf("panic in strategy %s: %v", strategy.Name(), r)
		}
	}()

	return strategy.Fetch(ctx, instrument)
}
