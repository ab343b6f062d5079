package intent

import (
	"strings"

	"github.com/lumiere-weddings/concierge/internal/models"
)

var decisionMakerKeywords = []string{
	"i own",
	"my company",
	"my business",
	"my studio",
	"my team",
	"founder",
	"co-founder",
	"owner",
	"creative director",
	"managing director",
	"ceo",
	"i decide",
	"i'm in charge",
}

var internationalKeywords = []string{
	"international",
	"destination wedding",
	"destinations",
	"worldwide",
	"europe",
	"overseas",
	"abroad",
	"multilingual",
	"global clientele",
	"travel for weddings",
}

var editorialKeywords = []string{
	"published",
	"featured in",
	"editorial",
	"press coverage",
	"vogue",
	"harper's bazaar",
	"magazine feature",
	"style shoot",
	"styled shoot",
	"portfolio ready",
}

var massMarketKeywords = []string{
	"the knot",
	"weddingwire",
	"wedding wire",
	"zola",
	"groupon",
	"discount packages",
	"budget weddings",
	"budget-friendly",
	"cheap",
	"affordable packages",
	"high volume",
	"volume business",
}

// Detect runs the four signal tests over raw message text. Signals are
// independent; no match suppresses another's evaluation.
func Detect(text string) models.Signals {
	content := strings.ToLower(text)
	return models.Signals{
		IsDecisionMaker:    containsAny(content, decisionMakerKeywords),
		InternationalFocus: containsAny(content, internationalKeywords),
		EditorialReady:     containsAny(content, editorialKeywords),
		MassMarketExposure: containsAny(content, massMarketKeywords),
	}
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
