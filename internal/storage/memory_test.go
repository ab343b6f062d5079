package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiere-weddings/concierge/internal/models"
)

func TestResolveThread_CreatesAndReuses(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	created, err := store.ResolveThread(ctx, "", "user-1", "hello there", models.ChatTypeCouple)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "user-1", created.UserID)
	require.Equal(t, models.ChatTypeCouple, created.ChatType)
	require.Equal(t, "hello there", created.Title)

	// Repeated resolution with the same id must return the same thread.
	for i := 0; i < 3; i++ {
		reused, err := store.ResolveThread(ctx, created.ID, "user-1", "different text", models.ChatTypeBusiness)
		require.NoError(t, err)
		require.Equal(t, created.ID, reused.ID)
		require.Equal(t, created.Title, reused.Title)
		require.Equal(t, created.ChatType, reused.ChatType)
	}
}

func TestResolveThread_TruncatesTitle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	long := strings.Repeat("a very long opening message ", 10)
	thread, err := store.ResolveThread(ctx, "", "user-1", long, models.ChatTypeCouple)
	require.NoError(t, err)
	require.Len(t, []rune(thread.Title), 60)
	require.Equal(t, long[:60], thread.Title)
}

func TestResolveThread_UnknownCandidateCreatesFresh(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	thread, err := store.ResolveThread(ctx, "no-such-thread", "user-1", "first message", models.ChatTypeBusiness)
	require.NoError(t, err)
	require.NotEqual(t, "no-such-thread", thread.ID)
	require.Equal(t, "user-1", thread.UserID)
}

func TestResolveThread_ForeignThreadRejected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	theirs, err := store.ResolveThread(ctx, "", "owner", "their conversation", models.ChatTypeCouple)
	require.NoError(t, err)

	_, err = store.ResolveThread(ctx, theirs.ID, "intruder", "hijack attempt", models.ChatTypeCouple)
	require.ErrorIs(t, err, ErrNotThreadOwner)
}

func TestAppendMessage_RoundTripOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	thread, err := store.ResolveThread(ctx, "", "user-1", "hi", models.ChatTypeCouple)
	require.NoError(t, err)

	meta := models.MessageMeta{Flow: "couple", Intent: "couple", Stage: "intent"}
	contents := []string{"first", "second", "third", "fourth"}
	roles := []models.Role{models.RoleUser, models.RoleAssistant, models.RoleUser, models.RoleAssistant}
	for i, content := range contents {
		msg, err := store.AppendMessage(ctx, thread.ID, "user-1", roles[i], content, meta)
		require.NoError(t, err)
		require.NotEmpty(t, msg.ID)
	}

	messages, err := store.ThreadMessages(ctx, thread.ID, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	for i, msg := range messages {
		require.Equal(t, contents[i], msg.Content)
		require.Equal(t, roles[i], msg.Role)
		require.Equal(t, meta, msg.Meta)
	}
}

func TestThreadMessages_LimitKeepsNewestInOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	thread, err := store.ResolveThread(ctx, "", "user-1", "hi", models.ChatTypeCouple)
	require.NoError(t, err)

	for _, content := range []string{"a", "b", "c", "d", "e"} {
		_, err := store.AppendMessage(ctx, thread.ID, "user-1", models.RoleUser, content, models.MessageMeta{})
		require.NoError(t, err)
	}

	messages, err := store.ThreadMessages(ctx, thread.ID, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "d", messages[0].Content)
	require.Equal(t, "e", messages[1].Content)
}

func TestAppendMessage_FailsLoudly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, err := store.AppendMessage(ctx, "missing", "user-1", models.RoleUser, "hi", models.MessageMeta{})
	require.ErrorIs(t, err, ErrThreadNotFound)

	thread, err := store.ResolveThread(ctx, "", "owner", "hi", models.ChatTypeCouple)
	require.NoError(t, err)

	_, err = store.AppendMessage(ctx, thread.ID, "intruder", models.RoleUser, "hi", models.MessageMeta{})
	require.ErrorIs(t, err, ErrNotThreadOwner)

	messages, err := store.ThreadMessages(ctx, thread.ID, "owner", 0)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestSaveLead_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	lead := &models.VendorLead{
		BusinessName: "Aman Weddings",
		Category:     "planner",
		ContactName:  "Giulia",
		ContactEmail: "giulia@example.com",
		Stage:        models.StageIntent,
		Score:        85,
		Priority:     models.PriorityHot,
	}
	require.NoError(t, store.SaveLead(ctx, lead))
	require.NotEmpty(t, lead.ID)

	leads := store.Leads()
	require.Len(t, leads, 1)
	require.Equal(t, lead.ID, leads[0].ID)
	require.Equal(t, models.PriorityHot, leads[0].Priority)
}
