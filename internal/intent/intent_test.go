package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVendor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "planner introduction",
			text: "We are the wedding planner for Four Seasons Lake Como, immediate availability needed",
			want: true,
		},
		{
			name: "directory request",
			text: "Hi! I'd love to join your directory — I run a floral studio in Positano.",
			want: true,
		},
		{
			name: "partnership inquiry",
			text: "Would Lumière be open to a partnership with our venue?",
			want: true,
		},
		{
			name: "couple browsing",
			text: "just checking out options, no rush",
			want: false,
		},
		{
			name: "couple planning question",
			text: "My fiancé and I are dreaming of a spring ceremony — where do we even start?",
			want: false,
		},
		{
			name: "empty input defaults to couple",
			text: "",
			want: false,
		},
		{
			name: "ambiguous input defaults to couple",
			text: "hello",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsVendor(tt.text))
		})
	}
}

func TestFlowFor(t *testing.T) {
	require.Equal(t, FlowVendor, FlowFor("please feature my studio"))
	require.Equal(t, FlowCouple, FlowFor("we got engaged last week!"))
	require.Equal(t, DefaultFlow, FlowFor(""))
}

func TestDetect_IndependentSignals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want struct{ dm, intl, ed, mass bool }
	}{
		{
			name: "quiet text has no signals",
			text: "hello there",
		},
		{
			name: "decision maker",
			text: "I'm the founder and creative director of the studio",
			want: struct{ dm, intl, ed, mass bool }{dm: true},
		},
		{
			name: "international focus",
			text: "We specialize in destination weddings across Europe",
			want: struct{ dm, intl, ed, mass bool }{intl: true},
		},
		{
			name: "editorial ready",
			text: "Our work was featured in Vogue last season",
			want: struct{ dm, intl, ed, mass bool }{ed: true},
		},
		{
			name: "mass market exposure",
			text: "We get most of our bookings through The Knot and WeddingWire",
			want: struct{ dm, intl, ed, mass bool }{mass: true},
		},
		{
			name: "signals do not suppress each other",
			text: "I own a studio doing destination weddings, published in Vogue, also on The Knot with discount packages",
			want: struct{ dm, intl, ed, mass bool }{dm: true, intl: true, ed: true, mass: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			require.Equal(t, tt.want.dm, got.IsDecisionMaker, "IsDecisionMaker")
			require.Equal(t, tt.want.intl, got.InternationalFocus, "InternationalFocus")
			require.Equal(t, tt.want.ed, got.EditorialReady, "EditorialReady")
			require.Equal(t, tt.want.mass, got.MassMarketExposure, "MassMarketExposure")
		})
	}
}
