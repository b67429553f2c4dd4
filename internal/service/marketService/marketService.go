package marketService

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/registry"
	"github.com/gfranco93/bolsa-monitor/internal/service"
	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/shopspring/decimal"
)

type Fetcher interface {
	Fetch(ctx context.Context, instrument registry.Instrument) (model.Quote, error)
}

type Repository interface {
	UpsertQuotes(ctx context.Context, quotes []model.Quote) error
	InsertPriceHistory(ctx context.Context, quotes []model.Quote) error
	LatestQuotes(ctx context.Context) (model.Snapshot, error)
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
}

type Cache interface {
	SetSnapshot(ctx context.Context, snapshot model.Snapshot) error
	GetSnapshot(ctx context.Context) (model.Snapshot, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, snapshot model.Snapshot) (fileBytes []byte, fileExtension string, err error)
}

type MarketService struct {
	cfg       *config.Config
	reg       registry.Registry
	fetcher   Fetcher
	repo      Repository
	cache     Cache
	reportGen ReportGenerator

	// guards against interleaving writes from overlapping triggers
	collectMu sync.Mutex
}

func New(cfg *config.Config, reg registry.Registry, fetcher Fetcher, repo Repository, cache Cache, reportGen ReportGenerator) *MarketService {
	return &MarketService{
		cfg:       cfg,
		reg:       reg,
		fetcher:   fetcher,
		repo:      repo,
		cache:     cache,
		reportGen: reportGen,
	}
}

// Collect runs one full collection cycle: every registry instrument is
// fetched exactly once, sequentially, with the mandatory inter-call delay.
// Failed symbols are skipped until the next cycle; store errors propagate.
// A second trigger while a cycle is in flight gets ErrCollectionInProgress.
func (s *MarketService) Collect(ctx context.Context) (model.Snapshot, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.Collect"

	if !s.collectMu.TryLock() {
		slog.Warn("collection trigger rejected", slog.String("rqID", rqID), slog.String("op", op))
		return nil, service.ErrCollectionInProgress
	}
	defer s.collectMu.Unlock()

	slog.Debug("Collect start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("Collect finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	collected := make([]model.Quote, 0, len(s.reg.Instruments()))

	for i, instrument := range s.reg.Instruments() {
		if i > 0 {
			// upstream throttles aggressive polling, keep the fixed delay
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.Collection.FetchDelay):
			}
		}

		quote, err := s.fetcher.Fetch(ctx, instrument)
		if err != nil {
			slog.Warn(
				"skipping symbol for this cycle",
				slog.String("rqID", rqID),
				slog.String("op", op),
				slog.String("symbol", instrument.Symbol),
				slog.String("err", err.Error()),
			)
			continue
		}

		collected = append(collected, quote)
	}

	if len(collected) > 0 {
		err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.repo.UpsertQuotes(ctx, collected); err != nil {
				return err
			}
			return s.repo.InsertPriceHistory(ctx, collected)
		})
		if err != nil {
			slog.Error("got error persisting snapshot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return nil, err
		}
	}

	// read back so the returned snapshot carries the presentation order
	snapshot, err := s.repo.LatestQuotes(ctx)
	if err != nil {
		slog.Error("got error from repo.LatestQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if err := s.cache.SetSnapshot(ctx, snapshot); err != nil {
		slog.Error("got error caching snapshot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	slog.Info(
		"collection cycle complete",
		slog.String("rqID", rqID),
		slog.Int("collected", len(collected)),
		slog.Int("skipped", len(s.reg.Instruments())-len(collected)),
	)

	return snapshot, nil
}

// CollectJob adapts Collect for the scheduler; an already-running cycle is
// not an error for the timer.
func (s *MarketService) CollectJob(ctx context.Context) error {
	_, err := s.Collect(utils.CtxWithRqID(ctx))
	if errors.Is(err, service.ErrCollectionInProgress) {
		return nil
	}
	return err
}

// Snapshot returns the latest persisted snapshot, cache first, filtered by
// category. An empty store yields an empty snapshot, not an error.
func (s *MarketService) Snapshot(ctx context.Context, filter model.Category) (model.Snapshot, model.Summary, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.Snapshot"

	slog.Debug("Snapshot start", slog.String("rqID", rqID), slog.String("op", op), slog.String("filter", string(filter)))
	defer func() {
		slog.Debug("Snapshot finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	snapshot, err := s.cache.GetSnapshot(ctx)
	if err != nil {
		snapshot, err = s.repo.LatestQuotes(ctx)
		if err != nil {
			slog.Error("got error from repo.LatestQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return nil, model.Summary{}, err
		}

		if cacheErr := s.cache.SetSnapshot(ctx, snapshot); cacheErr != nil {
			slog.Error("got error caching snapshot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", cacheErr.Error()))
		}
	}

	filtered := filterSnapshot(snapshot, filter)

	return filtered, summarize(filtered), nil
}

// Report renders the latest unfiltered snapshot as a spreadsheet.
func (s *MarketService) Report(ctx context.Context) ([]byte, string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.Report"

	slog.Debug("Report start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("Report finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	snapshot, _, err := s.Snapshot(ctx, model.CategoryAll)
	if err != nil {
		return nil, "", err
	}

	return s.reportGen.Generate(ctx, snapshot)
}

func filterSnapshot(snapshot model.Snapshot, filter model.Category) model.Snapshot {
	if filter == "" || filter == model.CategoryAll {
		return snapshot
	}

	filtered := make(model.Snapshot, 0, len(snapshot))
	for _, quote := range snapshot {
		if quote.Category == filter {
			filtered = append(filtered, quote)
		}
	}
	return filtered
}

func summarize(snapshot model.Snapshot) model.Summary {
	summary := model.Summary{Instruments: len(snapshot)}
	if len(snapshot) == 0 {
		return summary
	}

	sum := decimal.Zero
	for _, quote := range snapshot {
		sum = sum.Add(quote.DividendYield)
		if quote.DividendYield.GreaterThan(summary.BestYield) {
			summary.BestYield = quote.DividendYield
		}
		if quote.Category == model.CategoryFund {
			summary.MonthlyFunds++
		}
	}
	summary.AvgYield = sum.Div(decimal.NewFromInt(int64(len(snapshot)))).Round(2)

	return summary
}
