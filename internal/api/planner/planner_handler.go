package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wanderhost/concierge-agent/app/observability/metrics"
	"github.com/wanderhost/concierge-agent/internal/api"
	"github.com/wanderhost/concierge-agent/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type PlannerHandler struct {
	plannerService Service
	logger         *slog.Logger
	metrics        *metrics.AppMetrics // may be nil in tests
}

func NewPlannerHandler(plannerService Service, appMetrics *metrics.AppMetrics, logger *slog.Logger) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
		logger:         logger,
		metrics:        appMetrics,
	}
}

// GeneratePlan handles POST /agent/plan (and its /ai/concierge alias).
func (h *PlannerHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "GeneratePlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/agent/plan"),
	))
	defer span.End()

	start := time.Now()

	var req types.PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "Invalid plan request body", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeInvalidInput, err.Error())
		return
	}

	resp, err := h.plannerService.Plan(ctx, &req)
	if h.metrics != nil {
		h.metrics.PlanRequestsTotal.Add(ctx, 1)
		h.metrics.PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan request failed")
		h.writePlanError(w, r, err)
		return
	}

	span.SetAttributes(attribute.Int("plan.days", len(resp.DayPlans)))
	span.SetStatus(codes.Ok, "Plan generated")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// writePlanError maps the pipeline error taxonomy onto HTTP statuses.
func (h *PlannerHandler) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrNoTripSource), errors.Is(err, types.ErrLocationUnresolved):
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeInvalidInput, err.Error())
	case errors.Is(err, types.ErrBookingNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, api.CodeBookingNotFound, err.Error())
	case errors.Is(err, types.ErrGenerationFailed), errors.Is(err, types.ErrGenerationEmpty):
		if h.metrics != nil {
			h.metrics.GenerationFailuresTotal.Add(r.Context(), 1)
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeGenerationFailed, err.Error())
	case errors.Is(err, types.ErrDependencyUnavailable):
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, api.CodeDependencyUnreachable, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Unhandled plan error", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}
