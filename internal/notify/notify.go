// Package notify delivers hot-lead alerts to the operations team. Delivery
// is best effort: a failed alert is logged by the caller and never fails the
// conversational turn.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/lumiere-weddings/concierge/internal/models"
)

// Sink is the outbound alert port. Implementations must be safe for
// concurrent use.
type Sink interface {
	NotifyHotLead(ctx context.Context, lead *models.VendorLead) error
}

// NopSink drops alerts. Used when no notification channel is configured.
type NopSink struct{}

func (NopSink) NotifyHotLead(ctx context.Context, lead *models.VendorLead) error { return nil }

// DedupeSink suppresses repeat alerts for the same contact email within a
// TTL. In-process only; restarts forget history, which is acceptable for a
// best-effort channel.
type DedupeSink struct {
	inner Sink
	ttl   time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewDedupeSink(inner Sink, ttl time.Duration) *DedupeSink {
	return &DedupeSink{
		inner: inner,
		ttl:   ttl,
		seen:  make(map[string]time.Time),
	}
}

func (s *DedupeSink) NotifyHotLead(ctx context.Context, lead *models.VendorLead) error {
	s.mu.Lock()
	now := time.Now()
	if last, exists := s.seen[lead.ContactEmail]; exists && now.Sub(last) < s.ttl {
		s.mu.Unlock()
		return nil
	}
	s.seen[lead.ContactEmail] = now
	for email, at := range s.seen {
		if now.Sub(at) >= s.ttl {
			delete(s.seen, email)
		}
	}
	s.mu.Unlock()

	return s.inner.NotifyHotLead(ctx, lead)
}
