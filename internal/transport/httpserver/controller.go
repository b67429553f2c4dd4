package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/service"
	"github.com/gfranco93/bolsa-monitor/utils"
)

type Service interface {
	Collect(ctx context.Context) (model.Snapshot, error)
	Snapshot(ctx context.Context, filter model.Category) (model.Snapshot, model.Summary, error)
	Report(ctx context.Context) (fileBytes []byte, fileExtension string, err error)
}

type Controller struct {
	cfg     *config.Config
	service Service
}

func NewController(cfg *config.Config, srv Service) *Controller {
	return &Controller{cfg: cfg, service: srv}
}

// Quotes handles GET /api/v1/quotes?category=
func (c *Controller) Quotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, summary, err := c.service.Snapshot(ctx, parseCategory(r.URL.Query().Get("category")))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	if snapshot == nil {
		snapshot = model.Snapshot{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"quotes":  snapshot,
		"summary": summary,
	})
}

// Refresh handles POST /api/v1/refresh: triggers one collection cycle.
func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	snapshot, err := c.service.Collect(ctx)
	if err != nil {
		if errors.Is(err, service.ErrCollectionInProgress) {
			respondError(w, http.StatusConflict, "collection already in progress")
			return
		}
		slog.Error("collection cycle failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		respondError(w, http.StatusInternalServerError, "collection cycle failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"collected": len(snapshot)})
}

// Report handles GET /api/v1/report.xlsx
func (c *Controller) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	fileBytes, _, err := c.service.Report(ctx)
	if err != nil {
		slog.Error("report generation failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		respondError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="snapshot.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fileBytes)
}

// Health handles GET /health
func (c *Controller) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseCategory(raw string) model.Category {
	switch model.Category(raw) {
	case model.CategoryFund, model.CategoryETF, model.CategoryEquity:
		return model.Category(raw)
	default:
		return model.CategoryAll
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.String("err", err.Error()))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
