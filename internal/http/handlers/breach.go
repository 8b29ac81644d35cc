package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/breachwatch/breachwatch/internal/breach"
	"github.com/breachwatch/breachwatch/internal/domain/user"
	"github.com/breachwatch/breachwatch/internal/observability"
	"github.com/gin-gonic/gin"
)

type AnalyticsFetcher interface {
	Analytics(ctx context.Context, email string) (json.RawMessage, error)
}

type BreachHandler struct {
	client  AnalyticsFetcher
	log     *slog.Logger
	metrics *observability.Prom
}

func NewBreachHandler(client AnalyticsFetcher, log *slog.Logger, metrics *observability.Prom) *BreachHandler {
	return &BreachHandler{
		client:  client,
		log:     log,
		metrics: metrics,
	}
}

type emailBreachRequest struct {
	Email string `json:"email"`
}

// EmailBreach proxies one lookup to the upstream breach-analytics API.
// Input is validated before any outbound call; the upstream payload passes
// through unmodified.
func (h *BreachHandler) EmailBreach(ctx *gin.Context) {
	var req emailBreachRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "Invalid request body")
		return
	}

	if req.Email == "" {
		RespondBadRequest(ctx, "Email is required")
		return
	}

	if !user.ValidEmail(req.Email) {
		RespondBadRequest(ctx, "Invalid email format")
		return
	}

	start := time.Now()

	raw, err := h.client.Analytics(ctx.Request.Context(), req.Email)

	elapsed := time.Since(start)

	if err != nil {
		h.observeLookup("upstream_error", elapsed)
		h.log.ErrorContext(ctx.Request.Context(), "breach check failed", "err", err)

		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Breach checking service is currently unavailable",
			"error":   err.Error(),
			"email":   req.Email,
		})
		return
	}

	h.logOutcome(ctx, raw, elapsed)

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"email":     req.Email,
		"data":      raw,
		"checkedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

// logOutcome parses the payload best-effort for logs and metrics. A payload
// that fails to parse is still returned to the client as-is.
func (h *BreachHandler) logOutcome(ctx *gin.Context, raw json.RawMessage, elapsed time.Duration) {
	report, err := breach.ParseReport(raw)

	if err != nil {
		h.observeLookup("unparsed", elapsed)
		h.log.WarnContext(ctx.Request.Context(), "breach payload did not parse", "err", err)
		return
	}

	result := "breached"

	if report.IsSafe() {
		result = "safe"
	}

	h.observeLookup(result, elapsed)

	attrs := []any{
		"result", result,
		"breach_count", report.BreachCount(),
		"exposed_records", report.TotalExposedRecords(),
	}

	if label, score, ok := report.Risk(); ok {
		attrs = append(attrs, "risk_label", label, "risk_score", score)
	}

	h.log.InfoContext(ctx.Request.Context(), "breach lookup", attrs...)
}

func (h *BreachHandler) observeLookup(result string, elapsed time.Duration) {
	if h.metrics != nil {
		h.metrics.ObserveLookup(result, elapsed)
	}
}
