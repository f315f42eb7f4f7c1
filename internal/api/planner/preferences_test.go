package planner

import (
	"testing"

	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDietary(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"nil", nil, nil},
		{"single string", "Vegan", []string{"vegan"}},
		{"string slice", []string{" Vegan ", "HALAL"}, []string{"vegan", "halal"}},
		{"json decoded slice", []any{"Vegetarian", 42, "kosher"}, []string{"vegetarian", "kosher"}},
		{"gluten free canonicalized", []string{"Gluten Free", "gluten-free"}, []string{"gluten-free"}},
		{"duplicates keep first-seen order", []string{"vegan", "halal", "vegan"}, []string{"vegan", "halal"}},
		{"blank entries dropped", []string{"  ", "vegan"}, []string{"vegan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDietary(tt.raw))
		})
	}
}

func TestNormalizeDietary_Idempotent(t *testing.T) {
	once := NormalizeDietary([]string{"Gluten Free", "VEGAN"})
	twice := NormalizeDietary(once)
	assert.Equal(t, once, twice)
}

func TestNormalizePreferences_DefaultInterests(t *testing.T) {
	trip := &types.TripContext{PartyType: types.PartyCouple}
	prefs := NormalizePreferences(nil, nil, trip, "")
	assert.Equal(t, []string{"museums", "parks"}, prefs.Interests)
	assert.Equal(t, types.BudgetMid, prefs.Budget)
	assert.False(t, prefs.AccessibilityRequired)
	assert.False(t, prefs.KidFriendly)
}

func TestNormalizePreferences_ExplicitValuesWinOverSignals(t *testing.T) {
	raw := &types.RawPreferences{
		Budget:    "high",
		Interests: []string{"food"},
	}
	signals := &FreeTextSignals{
		Budget:        types.BudgetLow,
		BudgetMatched: true,
		Interests:     []string{"food", "hiking"},
	}
	trip := &types.TripContext{PartyType: types.PartyCouple}

	prefs := NormalizePreferences(raw, signals, trip, "")
	assert.Equal(t, types.BudgetHigh, prefs.Budget)
	// Signal interests only fill gaps, without duplicating explicit ones.
	assert.Equal(t, []string{"food", "hiking"}, prefs.Interests)
}

func TestNormalizePreferences_SignalBudgetFillsGap(t *testing.T) {
	signals := &FreeTextSignals{Budget: types.BudgetLow, BudgetMatched: true}
	trip := &types.TripContext{PartyType: types.PartyCouple}
	prefs := NormalizePreferences(nil, signals, trip, "")
	assert.Equal(t, types.BudgetLow, prefs.Budget)
}

func TestNormalizePreferences_AccessibilitySources(t *testing.T) {
	trip := &types.TripContext{PartyType: types.PartyCouple}

	fromText := NormalizePreferences(nil, nil, trip, "we travel with a stroller")
	assert.True(t, fromText.AccessibilityRequired)

	fromMobility := NormalizePreferences(&types.RawPreferences{Mobility: "Wheelchair user"}, nil, trip, "")
	assert.True(t, fromMobility.AccessibilityRequired)

	fromSignals := NormalizePreferences(nil, &FreeTextSignals{Accessibility: true}, trip, "")
	assert.True(t, fromSignals.AccessibilityRequired)
}

func TestNormalizePreferences_KidFriendly(t *testing.T) {
	family := NormalizePreferences(nil, nil, &types.TripContext{PartyType: types.PartyFamily}, "")
	assert.True(t, family.KidFriendly)

	withKids := NormalizePreferences(nil, nil, &types.TripContext{PartyType: types.PartyUnknown, KidsCount: 1}, "")
	assert.True(t, withKids.KidFriendly)

	couple := NormalizePreferences(nil, nil, &types.TripContext{PartyType: types.PartyCouple}, "")
	assert.False(t, couple.KidFriendly)
}
