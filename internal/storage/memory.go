package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumiere-weddings/concierge/internal/models"
)

// MemoryStorage keeps everything in process memory. Used for local runs and
// as the storage double in tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	threads  map[string]*models.Thread
	messages map[string][]*models.Message
	leads    []*models.VendorLead
	seq      int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		threads:  make(map[string]*models.Thread),
		messages: make(map[string][]*models.Message),
	}
}

func (s *MemoryStorage) ResolveThread(ctx context.Context, candidateID, ownerID, firstMessage string, chatType models.ChatType) (*models.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if candidateID != "" {
		if thread, exists := s.threads[candidateID]; exists {
			if thread.UserID != ownerID {
				return nil, ErrNotThreadOwner
			}
			copied := *thread
			return &copied, nil
		}
	}

	thread := &models.Thread{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Title:     titleFromMessage(firstMessage),
		ChatType:  chatType,
		CreatedAt: time.Now(),
	}
	s.threads[thread.ID] = thread
	copied := *thread
	return &copied, nil
}

func (s *MemoryStorage) AppendMessage(ctx context.Context, threadID, ownerID string, role models.Role, content string, meta models.MessageMeta) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, exists := s.threads[threadID]
	if !exists {
		return nil, ErrThreadNotFound
	}
	if thread.UserID != ownerID {
		return nil, ErrNotThreadOwner
	}

	// seq keeps insertion order stable even when the clock does not tick
	// between appends.
	s.seq++
	msg := &models.Message{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		UserID:    ownerID,
		Role:      role,
		Content:   content,
		Meta:      meta,
		CreatedAt: time.Now().Add(time.Duration(s.seq)),
	}
	s.messages[threadID] = append(s.messages[threadID], msg)
	copied := *msg
	return &copied, nil
}

func (s *MemoryStorage) ThreadMessages(ctx context.Context, threadID, ownerID string, limit int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread, exists := s.threads[threadID]
	if !exists {
		return nil, ErrThreadNotFound
	}
	if thread.UserID != ownerID {
		return nil, ErrNotThreadOwner
	}

	stored := s.messages[threadID]
	if limit > 0 && len(stored) > limit {
		stored = stored[len(stored)-limit:]
	}

	messages := make([]*models.Message, 0, len(stored))
	for _, msg := range stored {
		copied := *msg
		messages = append(messages, &copied)
	}
	return messages, nil
}

func (s *MemoryStorage) SaveLead(ctx context.Context, lead *models.VendorLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	lead.CreatedAt = time.Now()
	copied := *lead
	s.leads = append(s.leads, &copied)
	return nil
}

// Leads returns a snapshot of saved leads, newest last.
func (s *MemoryStorage) Leads() []*models.VendorLead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leads := make([]*models.VendorLead, 0, len(s.leads))
	for _, lead := range s.leads {
		copied := *lead
		leads = append(leads, &copied)
	}
	return leads
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
