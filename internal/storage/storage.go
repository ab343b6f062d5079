package storage

import (
	"context"
	"errors"

	"github.com/lumiere-weddings/concierge/internal/models"
)

var (
	// ErrThreadNotFound means the thread id does not exist.
	ErrThreadNotFound = errors.New("thread not found")
	// ErrNotThreadOwner means the thread exists but belongs to someone else.
	// Callers must surface this as an authorization failure, never by
	// reassigning the turn to a fresh thread.
	ErrNotThreadOwner = errors.New("thread not owned by caller")
)

// Storage owns thread, message and lead persistence. Implementations must be
// safe for concurrent use across requests.
type Storage interface {
	// ResolveThread reuses candidateID when it exists and belongs to
	// ownerID. An empty or unknown candidate creates a new thread titled
	// from the first message; a foreign candidate returns
	// ErrNotThreadOwner.
	ResolveThread(ctx context.Context, candidateID, ownerID, firstMessage string, chatType models.ChatType) (*models.Thread, error)

	// AppendMessage inserts one message at the end of a thread. It fails
	// with ErrThreadNotFound or ErrNotThreadOwner rather than dropping
	// the write.
	AppendMessage(ctx context.Context, threadID, ownerID string, role models.Role, content string, meta models.MessageMeta) (*models.Message, error)

	// ThreadMessages returns up to limit of the thread's most recent
	// messages in insertion order (limit <= 0 means all).
	ThreadMessages(ctx context.Context, threadID, ownerID string, limit int) ([]*models.Message, error)

	Close() error

	LeadStorage
}

// LeadStorage persists scored vendor leads.
type LeadStorage interface {
	SaveLead(ctx context.Context, lead *models.VendorLead) error
}

const maxTitleLen = 60

// titleFromMessage derives a thread title from the first message text.
func titleFromMessage(text string) string {
	runes := []rune(text)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen])
	}
	return text
}
