package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wanderhost/concierge-agent/internal/types"
)

// Generator produces the day-by-day itinerary blocks. The mode (generative or
// rule-based) is fixed by configuration at startup, never by request input.
type Generator interface {
	Generate(ctx context.Context, trip *types.TripContext, prefs types.PreferenceSet) ([]types.ItineraryBlock, error)
	ModelName() string
}

// TextGenerator is the slice of the AI client the generative mode needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

var _ Generator = (*GenerativeItineraryGenerator)(nil)
var _ Generator = (*RuleBasedItineraryGenerator)(nil)

// GenerativeItineraryGenerator asks an external model for the itinerary.
// Failures and empty output are hard errors: earlier revisions of this
// service silently fell back to the rule-based itinerary, which hid backend
// outages from callers, so the failure is surfaced instead.
type GenerativeItineraryGenerator struct {
	logger *slog.Logger
	ai     TextGenerator
}

func NewGenerativeItineraryGenerator(ai TextGenerator, logger *slog.Logger) *GenerativeItineraryGenerator {
	return &GenerativeItineraryGenerator{
		logger: logger,
		ai:     ai,
	}
}

func (g *GenerativeItineraryGenerator) ModelName() string {
	return g.ai.Model()
}

func (g *GenerativeItineraryGenerator) Generate(ctx context.Context, trip *types.TripContext, prefs types.PreferenceSet) ([]types.ItineraryBlock, error) {
	days := ExpandDateRange(trip.Dates)
	prompt := getItineraryPrompt(trip.Location, days[0], len(days), summarizePreferences(prefs))

	g.logger.InfoContext(ctx, "Generating itinerary",
		slog.String("location", trip.Location),
		slog.Int("days", len(days)),
		slog.String("model", g.ai.Model()),
	)

	payload, err := g.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrGenerationFailed, err)
	}

	blocks, err := parseItineraryBlocks(payload)
	if err != nil {
		g.logger.ErrorContext(ctx, "Unparseable generator output", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s", types.ErrGenerationEmpty, err)
	}
	if len(blocks) == 0 {
		return nil, types.ErrGenerationEmpty
	}
	return blocks, nil
}

// RuleBasedItineraryGenerator builds a deterministic itinerary from a fixed
// phrase template. It always succeeds.
type RuleBasedItineraryGenerator struct{}

func NewRuleBasedItineraryGenerator() *RuleBasedItineraryGenerator {
	return &RuleBasedItineraryGenerator{}
}

func (g *RuleBasedItineraryGenerator) ModelName() string {
	return "rule-based"
}

func (g *RuleBasedItineraryGenerator) Generate(_ context.Context, trip *types.TripContext, prefs types.PreferenceSet) ([]types.ItineraryBlock, error) {
	city := strings.TrimSpace(strings.Split(trip.Location, ",")[0])
	firstInterest := "local attractions"
	if len(prefs.Interests) > 0 {
		firstInterest = prefs.Interests[0]
	}

	days := ExpandDateRange(trip.Dates)
	blocks := make([]types.ItineraryBlock, 0, len(days))
	for _, day := range days {
		blocks = append(blocks, types.ItineraryBlock{
			Day:       day,
			Morning:   []string{fmt.Sprintf("Scenic walk in %s", city)},
			Afternoon: []string{fmt.Sprintf("Visit %s", firstInterest)},
			Evening:   []string{"Dinner at a recommended spot"},
		})
	}
	return blocks, nil
}
