package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wanderhost/concierge-agent/internal/api/enrichment"
	"github.com/wanderhost/concierge-agent/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the business logic contract for the concierge pipeline.
type Service interface {
	Plan(ctx context.Context, req *types.PlanRequest) (*types.PlanResponse, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	resolver  *ContextResolver
	generator Generator
	search    enrichment.SearchClient
}

func NewServiceImpl(resolver *ContextResolver, generator Generator, search enrichment.SearchClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		resolver:  resolver,
		generator: generator,
		search:    search,
	}
}

// Plan runs the full pipeline: resolve context, normalize preferences,
// generate the itinerary, enrich, assemble. Generation failures propagate;
// enrichment failures degrade into warnings inside the assembled response.
func (s *ServiceImpl) Plan(ctx context.Context, req *types.PlanRequest) (*types.PlanResponse, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Plan")
	defer span.End()

	trip, signals, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Context resolution failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("trip.location", trip.Location),
		attribute.String("trip.source", string(trip.Source)),
	)

	prefs := NormalizePreferences(req.Preferences, signals, trip, req.FreeText)

	blocks, err := s.generator.Generate(ctx, trip, prefs)
	if err != nil {
		s.logger.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}

	restaurants, tips := s.enrich(ctx, trip, prefs)

	resp := assemblePlan(assemblerInput{
		trip:        trip,
		prefs:       prefs,
		blocks:      blocks,
		restaurants: restaurants,
		tips:        tips,
		modelUsed:   s.generator.ModelName(),
	})

	span.SetAttributes(attribute.Int("plan.days", len(resp.DayPlans)))
	span.SetStatus(codes.Ok, "Plan assembled")
	return resp, nil
}

// enrich runs the two independent search queries concurrently. The search
// client is best-effort by contract, so there is nothing to propagate here.
func (s *ServiceImpl) enrich(ctx context.Context, trip *types.TripContext, prefs types.PreferenceSet) (restaurants, tips []types.SearchResult) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "enrich", trace.WithAttributes(
		attribute.String("trip.location", trip.Location),
	))
	defer span.End()

	dietary := "good"
	if len(prefs.DietaryFilters) > 0 {
		dietary = prefs.DietaryFilters[0]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		restaurants = s.search.Search(gctx, fmt.Sprintf("%s restaurants in %s", dietary, trip.Location))
		return nil
	})
	g.Go(func() error {
		tips = s.search.Search(gctx, fmt.Sprintf("best attractions and tips for %s", trip.Location))
		return nil
	})
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("enrichment.restaurants", len(restaurants)),
		attribute.Int("enrichment.tips", len(tips)),
	)
	return restaurants, tips
}
