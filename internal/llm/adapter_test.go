package llm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiere-weddings/concierge/internal/models"
)

func TestParseCapture_CompletePayload(t *testing.T) {
	raw := []byte(`{
		"businessName": "Aman Weddings",
		"category": "planner",
		"contactName": "Giulia Ferri",
		"email": "giulia@example.com",
		"location": "Lake Como",
		"website": "https://aman.example",
		"intentTiming": "immediate",
		"luxuryPositioning": true
	}`)

	fields, err := ParseCapture(raw)
	require.NoError(t, err)
	require.Equal(t, "Aman Weddings", fields.BusinessName)
	require.Equal(t, "planner", fields.Category)
	require.Equal(t, "giulia@example.com", fields.Email)
	require.Equal(t, models.TimingImmediate, fields.IntentTiming)
	require.True(t, fields.LuxuryPositioning)
}

func TestParseCapture_RequiredFieldsOnly(t *testing.T) {
	raw := []byte(`{"businessName":"Riverside","category":"venue","contactName":"Pat","email":"pat@example.com"}`)

	fields, err := ParseCapture(raw)
	require.NoError(t, err)
	require.Empty(t, fields.Location)
	require.Empty(t, fields.Website)
	require.Equal(t, models.IntentTiming(""), fields.IntentTiming)
}

func TestParseCapture_MissingRequiredField(t *testing.T) {
	payloads := map[string]string{
		"businessName": `{"category":"venue","contactName":"Pat","email":"pat@example.com"}`,
		"category":     `{"businessName":"Riverside","contactName":"Pat","email":"pat@example.com"}`,
		"contactName":  `{"businessName":"Riverside","category":"venue","email":"pat@example.com"}`,
		"email":        `{"businessName":"Riverside","category":"venue","contactName":"Pat"}`,
	}

	for missing, payload := range payloads {
		_, err := ParseCapture([]byte(payload))
		require.Error(t, err, "payload missing %s must be rejected", missing)
	}
}

func TestParseCapture_MalformedJSON(t *testing.T) {
	_, err := ParseCapture([]byte(`{"businessName": `))
	require.Error(t, err)
}

func TestParseCapture_UnknownTimingDropped(t *testing.T) {
	raw := []byte(`{"businessName":"Riverside","category":"venue","contactName":"Pat","email":"pat@example.com","intentTiming":"someday"}`)

	fields, err := ParseCapture(raw)
	require.NoError(t, err)
	require.Equal(t, models.IntentTiming(""), fields.IntentTiming)
}
