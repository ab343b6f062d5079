package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lumiere-weddings/concierge/internal/models"
)

// CaptureToolName is the function the model may call on the vendor branch.
const CaptureToolName = "capture_lead"

// ProviderError is a failure of the hosted completion provider: timeout,
// non-success status or an unusable response body. Callers decide fallback
// behavior; the adapter never substitutes an empty reply.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Turn is one prior message handed to the provider.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is what a completion returned: the assistant text and, when the
// model invoked capture_lead with all required fields, the parsed capture.
type Reply struct {
	Text    string
	Capture *models.CaptureFields
}

// Client is the outbound port to the completion provider.
type Client interface {
	// Complete sends the system prompt plus history and returns the
	// reply. withCapture attaches the capture_lead tool schema; a reply
	// without a tool call is the common case, not an error.
	Complete(ctx context.Context, systemPrompt string, history []Turn, withCapture bool) (*Reply, error)
}

var captureLeadSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"businessName": {"type": "string", "description": "Name of the vendor's business"},
		"category": {"type": "string", "description": "Vendor category, e.g. planner, photography, videography, floral design"},
		"contactName": {"type": "string", "description": "Name of the person we are speaking with"},
		"email": {"type": "string", "description": "Contact email address"},
		"location": {"type": "string", "description": "City or region the business operates in"},
		"website": {"type": "string", "description": "Business website URL"},
		"intentTiming": {"type": "string", "enum": ["immediate", "planning", "exploring"], "description": "How soon they want to move"},
		"luxuryPositioning": {"type": "boolean", "description": "Whether the business positions itself as luxury"}
	},
	"required": ["businessName", "category", "contactName", "email"]
}`)

// OpenAIClient talks to the OpenAI chat-completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float64, timeout time.Duration, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, history []Turn, withCapture bool) (*Reply, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
	}
	if withCapture {
		req.Tools = []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        CaptureToolName,
				Description: "Record the vendor's business details once the required fields are known.",
				Parameters:  captureLeadSchema,
			},
		}}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Err: fmt.Errorf("empty choices in response")}
	}

	choice := resp.Choices[0].Message
	reply := &Reply{Text: strings.TrimSpace(choice.Content)}

	for _, call := range choice.ToolCalls {
		if call.Function.Name != CaptureToolName {
			continue
		}
		capture, err := ParseCapture([]byte(call.Function.Arguments))
		if err != nil {
			// A malformed or partial tool payload degrades to a
			// text-only turn.
			c.logger.Warn("Discarding unusable capture_lead call",
				zap.Error(err),
				zap.String("arguments", call.Function.Arguments))
			continue
		}
		reply.Capture = capture
		break
	}

	return reply, nil
}

// ParseCapture validates a capture_lead argument payload. Payloads missing
// any required field are rejected so a partial record is never persisted.
func ParseCapture(raw []byte) (*models.CaptureFields, error) {
	var fields models.CaptureFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("malformed capture payload: %w", err)
	}
	if !fields.Complete() {
		return nil, fmt.Errorf("capture payload missing required fields")
	}
	switch fields.IntentTiming {
	case "", models.TimingImmediate, models.TimingPlanning, models.TimingExploring:
	default:
		// An unknown timing value scores as absent rather than
		// poisoning the record.
		fields.IntentTiming = ""
	}
	return &fields, nil
}
