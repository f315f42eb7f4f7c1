package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wanderhost/concierge-agent/config"
	"github.com/wanderhost/concierge-agent/internal/api/auth"
	"github.com/wanderhost/concierge-agent/internal/api/enrichment"
	"github.com/wanderhost/concierge-agent/internal/api/planner"
	api "github.com/wanderhost/concierge-agent/internal/router"
	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const e2eSecret = "e2e-shared-secret"

// stubBookingRepo serves a fixed set of bookings without a database.
type stubBookingRepo struct {
	bookings map[uuid.UUID]*types.BookingContext
}

func (s *stubBookingRepo) GetBookingContext(_ context.Context, id uuid.UUID) (*types.BookingContext, error) {
	return s.bookings[id], nil
}

func (s *stubBookingRepo) Ping(context.Context) error { return nil }

// E2ETestSuite drives the assembled HTTP stack end to end: router, auth
// middleware and the full planning pipeline with a stubbed booking store.
type E2ETestSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	bookingID uuid.UUID
}

func (s *E2ETestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.bookingID = uuid.New()
	start := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 13, 0, 0, 0, 0, time.UTC)
	guests := 3
	repo := &stubBookingRepo{bookings: map[uuid.UUID]*types.BookingContext{
		s.bookingID: {
			ID:        s.bookingID,
			City:      "Lisbon",
			Country:   "Portugal",
			Title:     "Alfama Loft",
			StartDate: &start,
			EndDate:   &end,
			Guests:    &guests,
		},
	}}

	resolver := planner.NewContextResolver(repo, logger)
	generator := planner.NewRuleBasedItineraryGenerator()
	// No API key configured: search is a no-op, so responses carry warnings.
	search := enrichment.NewTavilyClient(config.SearchConfig{MaxResults: 5}, logger)
	service := planner.NewServiceImpl(resolver, generator, search, logger)
	handler := planner.NewPlannerHandler(service, nil, logger)

	authCfg := config.AuthConfig{
		SecretKey:    e2eSecret,
		Issuer:       "homestay-platform",
		TravelerRole: "TRAVELER",
	}

	router := api.SetupRouter(&api.Config{
		PlannerHandler:         handler,
		BookingRepo:            repo,
		AuthenticateMiddleware: auth.Authenticate(logger, authCfg),
		Logger:                 logger,
	})

	s.server = httptest.NewServer(router)
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *E2ETestSuite) travelerToken(role string) string {
	claims := jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"iss":  "homestay-platform",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e2eSecret))
	s.Require().NoError(err)
	return token
}

func (s *E2ETestSuite) postPlan(token string, body any) (*http.Response, []byte) {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/agent/plan", bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, raw
}

func (s *E2ETestSuite) TestHealthEndpointsArePublic() {
	for _, path := range []string{"/healthz", "/health"} {
		resp, err := s.client.Get(s.server.URL + path)
		s.Require().NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode, path)
	}
}

func (s *E2ETestSuite) TestPlanRejectsMissingToken() {
	resp, _ := s.postPlan("", map[string]string{"free_text": "a week in Lisbon"})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) TestPlanRejectsWrongRole() {
	resp, _ := s.postPlan(s.travelerToken("HOST"), map[string]string{"free_text": "a week in Lisbon"})
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *E2ETestSuite) TestPlanFromBookingID() {
	resp, raw := s.postPlan(s.travelerToken("TRAVELER"), map[string]string{
		"bookingId": s.bookingID.String(),
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	var plan types.PlanResponse
	s.Require().NoError(json.Unmarshal(raw, &plan))

	s.Equal("Lisbon, Portugal", plan.Meta.Location)
	s.Equal(3, plan.Meta.Guests)
	s.False(plan.Meta.NLUDerived)
	s.Equal("rule-based", plan.Meta.ModelUsed)
	s.Len(plan.DayPlans, 4)
	for _, day := range plan.DayPlans {
		s.Len(day.Activities, 3)
	}
	s.NotEmpty(plan.PackingChecklist)
	s.NotEmpty(plan.RestaurantRecommendations)
	// Search is disabled in this suite, so both enrichment warnings fire.
	s.Len(plan.Warnings, 2)
}

func (s *E2ETestSuite) TestPlanFromFreeText() {
	resp, raw := s.postPlan(s.travelerToken("TRAVELER"), map[string]string{
		"free_text": "Plan a family trip to Paris next week for 5 days with 2 kids, vegan, wheelchair accessible",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	var plan types.PlanResponse
	s.Require().NoError(json.Unmarshal(raw, &plan))

	s.Contains(plan.Meta.Location, "Paris")
	s.True(plan.Meta.NLUDerived)
	s.Equal(types.PartyFamily, plan.Meta.Party.Type)
	s.Equal(2, plan.Meta.Party.Kids)
	for _, card := range plan.ActivityCards {
		s.True(card.WheelchairFriendly)
		s.True(card.KidFriendly)
	}
}

func (s *E2ETestSuite) TestPlanUnknownBookingIs404() {
	resp, raw := s.postPlan(s.travelerToken("TRAVELER"), map[string]string{
		"bookingId": uuid.NewString(),
	})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Equal("booking_not_found", body.Code)
}

func (s *E2ETestSuite) TestConciergeAliasServesSameHandler() {
	payload, _ := json.Marshal(map[string]string{"bookingId": s.bookingID.String()})
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/ai/concierge", bytes.NewReader(payload))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.travelerToken("TRAVELER"))

	resp, err := s.client.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end suite in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
