package planner

import (
	"strings"

	"github.com/wanderhost/concierge-agent/internal/types"
)

// mobility phrases that flag an accessibility requirement when present in
// free text or in the normalized mobility preference.
var mobilityFreeTextKeywords = []string{"wheelchair", "stroller", "no hike", "no long hike"}

// NormalizePreferences canonicalizes the loosely-typed client preferences and
// folds in free-text-derived defaults. Caller-supplied values always win;
// extracted signals only fill gaps.
func NormalizePreferences(raw *types.RawPreferences, signals *FreeTextSignals, trip *types.TripContext, freeText string) types.PreferenceSet {
	if raw == nil {
		raw = &types.RawPreferences{}
	}

	prefs := types.PreferenceSet{
		DietaryFilters: NormalizeDietary(raw.Dietary),
	}

	prefs.Interests = append(prefs.Interests, raw.Interests...)

	if signals != nil {
		for _, d := range signals.Dietary {
			prefs.DietaryFilters = appendUnique(prefs.DietaryFilters, d)
		}
		for _, interest := range signals.Interests {
			prefs.Interests = appendUnique(prefs.Interests, interest)
		}
	}
	if len(prefs.Interests) == 0 {
		prefs.Interests = []string{"museums", "parks"}
	}

	prefs.Budget = resolveBudget(raw.Budget, signals)

	lowerText := strings.ToLower(freeText)
	for _, kw := range mobilityFreeTextKeywords {
		if strings.Contains(lowerText, kw) {
			prefs.AccessibilityRequired = true
			break
		}
	}
	mobility := strings.ToLower(raw.Mobility)
	if strings.Contains(mobility, "wheelchair") || strings.Contains(mobility, "accessible") {
		prefs.AccessibilityRequired = true
	}
	if signals != nil && signals.Accessibility {
		prefs.AccessibilityRequired = true
	}

	prefs.KidFriendly = trip.PartyType == types.PartyFamily || trip.KidsCount > 0

	return prefs
}

// NormalizeDietary lower-cases, trims and deduplicates dietary values while
// preserving first-seen order. It accepts either a single string or a list,
// and canonicalizes "gluten free" to "gluten-free". Normalizing an already
// normalized set is a no-op.
func NormalizeDietary(raw any) []string {
	var values []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		values = []string{v}
	case []string:
		values = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}

	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if v == "gluten free" {
			v = "gluten-free"
		}
		out = appendUnique(out, v)
	}
	return out
}

func resolveBudget(raw string, signals *FreeTextSignals) types.BudgetTier {
	switch types.BudgetTier(strings.ToLower(strings.TrimSpace(raw))) {
	case types.BudgetLow:
		return types.BudgetLow
	case types.BudgetMid:
		return types.BudgetMid
	case types.BudgetHigh:
		return types.BudgetHigh
	}
	if signals != nil && signals.BudgetMatched {
		return signals.Budget
	}
	return types.BudgetMid
}
