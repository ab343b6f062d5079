// Package scoring turns captured vendor fields and detected signals into a
// lead score and an outreach priority. Everything here is pure; the same
// inputs always produce the same score.
package scoring

import (
	"strings"

	"github.com/lumiere-weddings/concierge/internal/models"
)

// Priority breakpoints on the clamped score.
const (
	hotThreshold  = 80
	warmThreshold = 50
)

// premiumDestinations matched case-insensitively against the lead location.
var premiumDestinations = []string{
	"lake como",
	"amalfi",
	"positano",
	"tuscany",
	"santorini",
	"provence",
	"french riviera",
	"st. barts",
	"aspen",
	"napa",
	"big sur",
	"maui",
	"bali",
	"kyoto",
}

// luxuryBrandTokens matched against business name and website.
var luxuryBrandTokens = []string{
	"four seasons",
	"aman",
	"belmond",
	"rosewood",
	"ritz-carlton",
	"ritz carlton",
	"mandarin oriental",
	"st. regis",
	"st regis",
	"bulgari",
	"peninsula",
	"six senses",
}

// strategicCategories are vendor categories the brand actively recruits.
var strategicCategories = []string{
	"planner",
	"planning",
	"videography",
	"videographer",
	"luxury florist",
	"floral design",
	"photography",
	"couture",
}

// Score applies the weighted additive rubric. Terms are additive, so
// evaluation order never changes the result; the sum is floor-clamped at 0.
func Score(fields models.CaptureFields, signals models.Signals) int {
	score := 0

	if fields.LuxuryPositioning {
		score += 20
	}
	if matchesAny(fields.Location, premiumDestinations) {
		score += 20
	}
	if matchesAny(fields.BusinessName, luxuryBrandTokens) || matchesAny(fields.Website, luxuryBrandTokens) {
		score += 15
	}
	if matchesAny(fields.Category, strategicCategories) {
		score += 15
	}
	switch fields.IntentTiming {
	case models.TimingImmediate:
		score += 15
	case models.TimingPlanning:
		score += 8
	}
	if fields.Website != "" {
		score += 10
	}
	if signals.IsDecisionMaker {
		score += 10
	}
	if signals.InternationalFocus {
		score += 10
	}
	if signals.EditorialReady {
		score += 10
	}
	if signals.MassMarketExposure {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	return score
}

// PriorityFor is a pure step function of the score alone.
func PriorityFor(score int) models.Priority {
	switch {
	case score >= hotThreshold:
		return models.PriorityHot
	case score >= warmThreshold:
		return models.PriorityWarm
	default:
		return models.PriorityCold
	}
}

func matchesAny(value string, tokens []string) bool {
	if value == "" {
		return false
	}
	value = strings.ToLower(value)
	for _, token := range tokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}
