package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gfranco93/bolsa-monitor/data/repository"
	"github.com/gfranco93/bolsa-monitor/internal/converter/dbConverter"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/model/dbModel"
	"github.com/gfranco93/bolsa-monitor/utils"
)

// UpsertQuotes writes the snapshot keyed by symbol, latest values win.
func (r *Postgres) UpsertQuotes(ctx context.Context, quotes []model.Quote) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpsertQuotes"

	slog.Debug("UpsertQuotes start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("quotes", len(quotes)))
	defer func() {
		if err != nil {
			slog.Error("UpsertQuotes failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertQuotes completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	if len(quotes) == 0 {
		return nil
	}

	const cols = 10
	sb := strings.Builder{}
	args := make([]any, 0, len(quotes)*cols)

	sb.WriteString(`
		INSERT INTO quotes
			(symbol, name, category, price, dividend_yield, last_dividend, payment_frequency, sector, day_change, updated_at)
		VALUES `)

	for i, q := range quotes {
		args = append(args,
			q.Symbol, q.Name, string(q.Category), q.Price, q.DividendYield,
			q.LastDividend, q.PaymentFrequency, q.Sector, q.DayChange, q.UpdatedAt,
		)

		start := i*cols + 1
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			start, start+1, start+2, start+3, start+4, start+5, start+6, start+7, start+8, start+9,
		))

		if i < len(quotes)-1 {
			sb.WriteString(",")
		}
	}

	sb.WriteString(`
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			dividend_yield = EXCLUDED.dividend_yield,
			last_dividend = EXCLUDED.last_dividend,
			payment_frequency = EXCLUDED.payment_frequency,
			sector = EXCLUDED.sector,
			day_change = EXCLUDED.day_change,
			updated_at = EXCLUDED.updated_at;
	`)

	_, err = r.txOrDb(ctx).ExecContext(ctx, sb.String(), args...)
	return err
}

// InsertPriceHistory appends one price point per quote of the cycle.
func (r *Postgres) InsertPriceHistory(ctx context.Context, quotes []model.Quote) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertPriceHistory"

	slog.Debug("InsertPriceHistory start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("quotes", len(quotes)))
	defer func() {
		if err != nil {
			slog.Error("InsertPriceHistory failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertPriceHistory completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	if len(quotes) == 0 {
		return nil
	}

	const cols = 3
	sb := strings.Builder{}
	args := make([]any, 0, len(quotes)*cols)

	sb.WriteString(`INSERT INTO price_history (symbol, captured_at, price) VALUES `)

	for i, q := range quotes {
		args = append(args, q.Symbol, q.UpdatedAt, q.Price)

		start := i*cols + 1
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d)", start, start+1, start+2))

		if i < len(quotes)-1 {
			sb.WriteString(",")
		}
	}

	_, err = r.txOrDb(ctx).ExecContext(ctx, sb.String(), args...)
	return err
}

// LatestQuotes returns the persisted snapshot ordered by dividend yield
// descending, the presentation order of the dashboard.
func (r *Postgres) LatestQuotes(ctx context.Context) (snapshot model.Snapshot, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.LatestQuotes"
	query := `
		SELECT symbol, name, category, price, dividend_yield, last_dividend, payment_frequency, sector, day_change, updated_at
		FROM quotes
		ORDER BY dividend_yield DESC
		`

	slog.Debug("LatestQuotes start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("LatestQuotes failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("LatestQuotes completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var quote dbModel.Quote
		err = rows.StructScan(&quote)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, dbConverter.ConvertQuote(quote))
	}

	return snapshot, nil
}

// GetQuote returns the persisted row for one symbol.
func (r *Postgres) GetQuote(ctx context.Context, symbol string) (quote model.Quote, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetQuote"
	query := `
		SELECT symbol, name, category, price, dividend_yield, last_dividend, payment_frequency, sector, day_change, updated_at
		FROM quotes
		WHERE symbol = $1
		`

	slog.Debug("GetQuote start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetQuote failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetQuote completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbQuote := dbModel.Quote{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, symbol).StructScan(&dbQuote)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Quote{}, repository.ErrNotFound
		}
		return model.Quote{}, err
	}

	return dbConverter.ConvertQuote(dbQuote), nil
}
