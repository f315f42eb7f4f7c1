package planner

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wanderhost/concierge-agent/internal/types"
)

// FreeTextSignals is everything the heuristic extractor can pull out of a
// free-form travel request. All fields are defaults: values the caller
// supplied explicitly always win over these.
type FreeTextSignals struct {
	Location      string
	Start         time.Time
	End           time.Time
	KidsCount     int
	PartyType     types.PartyType
	Interests     []string
	Budget        types.BudgetTier
	BudgetMatched bool
	Dietary       []string
	Accessibility bool
}

var (
	// Location follows "in " up to a clause boundary.
	locationPattern = regexp.MustCompile(`(?i)\bin\s+(.+?)(?:\s+(?:next|this|for|with)\b|[,.;!?]|$)`)
	// Fragment fallback: first comma/semicolon/"and"-delimited piece of the text.
	fragmentSplitter = regexp.MustCompile(`(?i)[,;]|\band\b`)
	kidsPattern      = regexp.MustCompile(`(?i)\b(\d+)\s+(kid|kids|child|children)\b`)
)

// Keyword tables are ordered slices, not maps: extraction order feeds the
// interest rotation downstream, so it has to be deterministic.
var interestKeywords = []struct {
	keyword  string
	interest string
}{
	{"museum", "museums"},
	{"art", "art"},
	{"food", "food"},
	{"park", "parks"},
	{"hike", "hiking"},
	{"beach", "beach"},
	{"history", "history"},
	{"music", "music"},
}

var dietaryKeywords = []struct {
	keywords []string
	filter   string
}{
	{[]string{"vegan"}, "vegan"},
	{[]string{"vegetarian"}, "vegetarian"},
	{[]string{"gluten-free", "gluten free"}, "gluten-free"},
	{[]string{"halal"}, "halal"},
	{[]string{"kosher"}, "kosher"},
}

var (
	lowBudgetKeywords  = []string{"budget", "cheap", "affordable"}
	highBudgetKeywords = []string{"luxury", "high-end", "splurge", "premium"}

	accessibilityKeywords = []string{"wheelchair", "stroller", "no long hike", "no hikes", "accessible"}
)

// ExtractFreeTextSignals runs the keyword/pattern heuristics over a free-form
// travel request. It never errors: an unresolvable location is reported as an
// empty Location and decided by the resolver.
func ExtractFreeTextSignals(text string, now time.Time) FreeTextSignals {
	lower := strings.ToLower(text)

	signals := FreeTextSignals{
		Location:  extractLocation(text),
		PartyType: types.PartyCouple,
		Budget:    types.BudgetMid,
	}

	// Date anchoring: default start three days out, overridden by the
	// strongest phrase present. Checks run in this order on purpose.
	start := now.AddDate(0, 0, 3)
	if strings.Contains(lower, "next week") {
		start = now.AddDate(0, 0, 7)
	}
	if strings.Contains(lower, "weekend") {
		start = upcomingFriday(now)
	}
	if strings.Contains(lower, "tomorrow") {
		start = now.AddDate(0, 0, 1)
	}
	duration := 3
	if strings.Contains(lower, "week") {
		duration = 7
	}
	signals.Start = truncateToDay(start)
	signals.End = signals.Start.AddDate(0, 0, duration-1)

	// Party composition.
	if m := kidsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			signals.KidsCount = n
		}
	} else if strings.Contains(lower, "kids") || strings.Contains(lower, "children") {
		signals.KidsCount = 2
	}
	switch {
	case signals.KidsCount > 0 || strings.Contains(lower, "family"):
		signals.PartyType = types.PartyFamily
	case strings.Contains(lower, "friends"):
		signals.PartyType = types.PartyFriends
	}

	for _, kw := range interestKeywords {
		if strings.Contains(lower, kw.keyword) {
			signals.Interests = append(signals.Interests, kw.interest)
		}
	}

	for _, kw := range lowBudgetKeywords {
		if strings.Contains(lower, kw) {
			signals.Budget = types.BudgetLow
			signals.BudgetMatched = true
		}
	}
	for _, kw := range highBudgetKeywords {
		if strings.Contains(lower, kw) {
			signals.Budget = types.BudgetHigh
			signals.BudgetMatched = true
		}
	}

	for _, d := range dietaryKeywords {
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				signals.Dietary = appendUnique(signals.Dietary, d.filter)
				break
			}
		}
	}

	for _, kw := range accessibilityKeywords {
		if strings.Contains(lower, kw) {
			signals.Accessibility = true
			break
		}
	}

	return signals
}

func extractLocation(text string) string {
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			return loc
		}
	}
	fragments := fragmentSplitter.Split(text, 2)
	return strings.TrimSpace(fragments[0])
}

// upcomingFriday returns the next Friday strictly after now.
func upcomingFriday(now time.Time) time.Time {
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
