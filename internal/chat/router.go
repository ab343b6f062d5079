// Package chat orchestrates one conversational turn: classify, persist,
// complete, score, notify. Each inbound request is handled in isolation;
// there is no cross-request state.
package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lumiere-weddings/concierge/internal/intent"
	"github.com/lumiere-weddings/concierge/internal/llm"
	"github.com/lumiere-weddings/concierge/internal/models"
	"github.com/lumiere-weddings/concierge/internal/notify"
	"github.com/lumiere-weddings/concierge/internal/scoring"
	"github.com/lumiere-weddings/concierge/internal/storage"
)

// ApologyReply is returned when the completion provider fails. The caller
// still receives a coherent conversational turn.
const ApologyReply = "I'm so sorry — I'm having a little trouble on my end right now. Could you give me a moment and try again?"

const defaultHistoryLimit = 20

// Router composes the classifier, store, adapter, scorer and sink for each
// inbound turn.
type Router struct {
	store        storage.Storage
	provider     llm.Client
	sink         notify.Sink
	logger       *zap.Logger
	historyLimit int
}

func NewRouter(store storage.Storage, provider llm.Client, sink notify.Sink, logger *zap.Logger) *Router {
	return &Router{
		store:        store,
		provider:     provider,
		sink:         sink,
		logger:       logger,
		historyLimit: defaultHistoryLimit,
	}
}

// TurnResult is the outcome of one /chat turn.
type TurnResult struct {
	ThreadID           string
	Reply              string
	Lead               *models.VendorLead
	Meta               models.MessageMeta
	UserMessageID      string
	AssistantMessageID string
	// Degraded marks a turn whose reply is valid but whose assistant-side
	// persistence or provider call failed.
	Degraded bool
}

// HandleChat runs the persistent-thread flow for an authenticated owner.
func (r *Router) HandleChat(ctx context.Context, ownerID, candidateThreadID, message string) (*TurnResult, error) {
	if message == "" {
		return nil, &ValidationError{Reason: "message text is required"}
	}
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	flow := intent.FlowFor(message)
	vendor := flow == intent.FlowVendor
	chatType := models.ChatTypeCouple
	if vendor {
		chatType = models.ChatTypeBusiness
	}
	meta := models.MessageMeta{Flow: flow, Intent: flow, Stage: models.StageIntent}

	thread, err := r.store.ResolveThread(ctx, candidateThreadID, ownerID, message, chatType)
	if err != nil {
		if IsAuthorization(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "thread resolve", Err: err}
	}

	userMsg, err := r.store.AppendMessage(ctx, thread.ID, ownerID, models.RoleUser, message, meta)
	if err != nil {
		// The user message must be durable before anything else runs;
		// without it the turn never happened.
		return nil, &PersistenceError{Op: "user message", Err: err}
	}

	history, err := r.store.ThreadMessages(ctx, thread.ID, ownerID, r.historyLimit)
	if err != nil {
		r.logger.Error("Failed to load thread history, completing with current message only",
			zap.Error(err),
			zap.String("thread_id", thread.ID))
		history = []*models.Message{userMsg}
	}

	systemPrompt := llm.CoupleSystemPrompt
	if vendor {
		systemPrompt = llm.VendorSystemPrompt
	}

	result := &TurnResult{
		ThreadID:      thread.ID,
		Meta:          meta,
		UserMessageID: userMsg.ID,
	}

	reply, err := r.provider.Complete(ctx, systemPrompt, historyTurns(history), vendor)
	if err != nil {
		r.logger.Error("Completion provider failed",
			zap.Error(err),
			zap.String("thread_id", thread.ID),
			zap.String("flow", flow))
		result.Reply = ApologyReply
		result.Degraded = true
		r.persistAssistant(ctx, result, ownerID, meta)
		return result, nil
	}

	result.Reply = reply.Text
	if vendor && reply.Capture != nil {
		result.Lead = r.captureLead(ctx, *reply.Capture, message)
	}

	r.persistAssistant(ctx, result, ownerID, meta)
	return result, nil
}

// VendorTurn is one stateless Atlas exchange; history is client-held.
type VendorTurn struct {
	Message string
	History []llm.Turn
}

// VendorTurnResult is the outcome of one /vendor-chat turn.
type VendorTurnResult struct {
	Reply   string
	Stage   string
	Persona string
	Lead    *models.VendorLead
}

// HandleVendorTurn runs the Atlas persona over client-held history. Captured
// leads are persisted and dispatched exactly as on the /chat vendor branch.
func (r *Router) HandleVendorTurn(ctx context.Context, turn VendorTurn) (*VendorTurnResult, error) {
	if turn.Message == "" {
		return nil, &ValidationError{Reason: "message text is required"}
	}

	history := make([]llm.Turn, 0, len(turn.History)+1)
	history = append(history, turn.History...)
	history = append(history, llm.Turn{Role: string(models.RoleUser), Content: turn.Message})

	result := &VendorTurnResult{
		Stage:   models.StageIntent,
		Persona: llm.PersonaVendor,
	}

	reply, err := r.provider.Complete(ctx, llm.VendorSystemPrompt, history, true)
	if err != nil {
		r.logger.Error("Completion provider failed", zap.Error(err), zap.String("flow", intent.FlowVendor))
		result.Reply = ApologyReply
		return result, nil
	}

	result.Reply = reply.Text
	if reply.Capture != nil {
		result.Lead = r.captureLead(ctx, *reply.Capture, turn.Message)
	}
	return result, nil
}

// captureLead scores validated capture fields, persists the lead and
// dispatches the hot-lead alert. Persistence and notification failures are
// logged and never fail the turn.
func (r *Router) captureLead(ctx context.Context, fields models.CaptureFields, message string) *models.VendorLead {
	signals := intent.Detect(message)
	score := scoring.Score(fields, signals)

	lead := &models.VendorLead{
		BusinessName:      fields.BusinessName,
		Category:          fields.Category,
		Location:          fields.Location,
		ContactName:       fields.ContactName,
		ContactEmail:      fields.Email,
		Website:           fields.Website,
		LuxuryPositioning: fields.LuxuryPositioning,
		IntentTiming:      fields.IntentTiming,
		Stage:             models.StageIntent,
		Score:             score,
		Priority:          scoring.PriorityFor(score),
	}

	if err := r.store.SaveLead(ctx, lead); err != nil {
		r.logger.Error("Failed to save lead",
			zap.Error(err),
			zap.String("business_name", lead.BusinessName),
			zap.Int("score", score))
	}

	if lead.Priority == models.PriorityHot {
		r.dispatchAlert(lead)
	}

	return lead
}

func (r *Router) dispatchAlert(lead *models.VendorLead) {
	// Detached from the request context: a client disconnect must not
	// stop the alert, and a slow channel must not stall the reply.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := r.sink.NotifyHotLead(ctx, lead); err != nil {
			r.logger.Error("Failed to send hot-lead alert",
				zap.Error(err),
				zap.String("business_name", lead.BusinessName),
				zap.Int("score", lead.Score))
		}
	}()
}

// persistAssistant appends the assistant reply. A failure here is degraded
// but reportable: the user still gets the reply text.
func (r *Router) persistAssistant(ctx context.Context, result *TurnResult, ownerID string, meta models.MessageMeta) {
	msg, err := r.store.AppendMessage(ctx, result.ThreadID, ownerID, models.RoleAssistant, result.Reply, meta)
	if err != nil {
		r.logger.Error("Failed to persist assistant message",
			zap.Error(err),
			zap.String("thread_id", result.ThreadID))
		result.Degraded = true
		return
	}
	result.AssistantMessageID = msg.ID
}

func historyTurns(messages []*models.Message) []llm.Turn {
	turns := make([]llm.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, llm.Turn{Role: string(msg.Role), Content: msg.Content})
	}
	return turns
}
