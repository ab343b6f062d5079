package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiere-weddings/concierge/internal/models"
)

func TestScore_WeightedTerms(t *testing.T) {
	tests := []struct {
		name    string
		fields  models.CaptureFields
		signals models.Signals
		want    int
	}{
		{
			name:   "empty inputs score zero",
			fields: models.CaptureFields{},
			want:   0,
		},
		{
			name:   "luxury positioning alone",
			fields: models.CaptureFields{LuxuryPositioning: true},
			want:   20,
		},
		{
			name:   "premium destination is case-insensitive substring",
			fields: models.CaptureFields{Location: "Bellagio, LAKE COMO, Italy"},
			want:   20,
		},
		{
			name:   "brand token in website counts",
			fields: models.CaptureFields{Website: "https://events.fourseasons.example/aman-retreats"},
			want:   15 + 10, // brand + website supplied
		},
		{
			name:   "strategic category",
			fields: models.CaptureFields{Category: "Wedding Planner"},
			want:   15,
		},
		{
			name:   "immediate timing",
			fields: models.CaptureFields{IntentTiming: models.TimingImmediate},
			want:   15,
		},
		{
			name:   "planning timing",
			fields: models.CaptureFields{IntentTiming: models.TimingPlanning},
			want:   8,
		},
		{
			name:   "exploring timing adds nothing",
			fields: models.CaptureFields{IntentTiming: models.TimingExploring},
			want:   0,
		},
		{
			name:    "positive signals",
			signals: models.Signals{IsDecisionMaker: true, InternationalFocus: true, EditorialReady: true},
			want:    30,
		},
		{
			name:    "mass market penalty clamps at zero",
			signals: models.Signals{MassMarketExposure: true},
			want:    0,
		},
		{
			name:    "penalty subtracts from positive terms",
			fields:  models.CaptureFields{LuxuryPositioning: true},
			signals: models.Signals{MassMarketExposure: true},
			want:    5,
		},
		{
			name: "all positive terms bound at 125",
			fields: models.CaptureFields{
				BusinessName:      "Aman Weddings",
				Category:          "planner",
				Location:          "Lake Como",
				Website:           "https://aman.example",
				IntentTiming:      models.TimingImmediate,
				LuxuryPositioning: true,
			},
			signals: models.Signals{IsDecisionMaker: true, InternationalFocus: true, EditorialReady: true},
			want:    125,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Score(tt.fields, tt.signals))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	fields := models.CaptureFields{
		BusinessName:      "Belmond Collective",
		Category:          "videography",
		Location:          "Tuscany",
		IntentTiming:      models.TimingPlanning,
		LuxuryPositioning: true,
	}
	signals := models.Signals{IsDecisionMaker: true, MassMarketExposure: true}

	first := Score(fields, signals)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Score(fields, signals))
	}
}

func TestPriorityFor_Breakpoints(t *testing.T) {
	tests := []struct {
		score int
		want  models.Priority
	}{
		{score: 125, want: models.PriorityHot},
		{score: 80, want: models.PriorityHot},
		{score: 79, want: models.PriorityWarm},
		{score: 50, want: models.PriorityWarm},
		{score: 49, want: models.PriorityCold},
		{score: 0, want: models.PriorityCold},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, PriorityFor(tt.score), "score %d", tt.score)
	}
}

// A planner for Four Seasons Lake Como with immediate availability must
// come out hot.
func TestScore_HotPlannerScenario(t *testing.T) {
	fields := models.CaptureFields{
		BusinessName:      "Four Seasons Lake Como Weddings",
		Category:          "planner",
		ContactName:       "Giulia Ferri",
		Email:             "giulia@example.com",
		Location:          "Lake Como",
		IntentTiming:      models.TimingImmediate,
		LuxuryPositioning: true,
	}
	score := Score(fields, models.Signals{})
	require.GreaterOrEqual(t, score, 85)
	require.Equal(t, models.PriorityHot, PriorityFor(score))
}

func TestScore_ColdBrowserScenario(t *testing.T) {
	fields := models.CaptureFields{
		BusinessName: "Riverside Events",
		Category:     "venue",
		ContactName:  "Pat Miller",
		Email:        "pat@example.com",
		IntentTiming: models.TimingExploring,
	}
	score := Score(fields, models.Signals{})
	require.LessOrEqual(t, score, 8)
	require.Equal(t, models.PriorityCold, PriorityFor(score))
}
