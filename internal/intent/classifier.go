package intent

import "strings"

// Flow names used in message metadata and routing decisions.
const (
	FlowVendor = "vendor"
	FlowCouple = "couple"
)

// DefaultFlow is the policy for ambiguous input: the consumer flow is the
// lower-commitment branch, so anything the matcher cannot place goes there.
const DefaultFlow = FlowCouple

// vendorKeywords mark business-inquiry language. Matching is a lowercased
// substring test, same as the signal tables.
var vendorKeywords = []string{
	"our venue",
	"our business",
	"our brand",
	"our studio",
	"our atelier",
	"our portfolio",
	"we are a",
	"we're a",
	"i am a photographer",
	"i'm a photographer",
	"wedding planner",
	"wedding vendor",
	"planner for",
	"florist",
	"videographer",
	"caterer",
	"list my",
	"feature my",
	"partner with",
	"partnership",
	"collaborate with you",
	"join your directory",
	"advertise",
	"vendor application",
	"media kit",
	"press kit",
	"b2b",
}

// IsVendor reports whether the text reads as a business inquiry. It is
// deterministic and never fails; ambiguous input classifies as couple.
func IsVendor(text string) bool {
	content := strings.ToLower(text)
	for _, kw := range vendorKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// FlowFor maps the classifier decision onto a flow name.
func FlowFor(text string) string {
	if IsVendor(text) {
		return FlowVendor
	}
	return DefaultFlow
}
