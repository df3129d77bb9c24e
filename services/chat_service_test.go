package services

import (
	"context"
	"sync"
	"testing"

	"stacks_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEvents captures conversation snapshots pushed after appends.
type recordingEvents struct {
	mu        sync.Mutex
	snapshots []models.Conversation
}

func (r *recordingEvents) ConversationUpdated(conversation models.Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, conversation)
}

func newPairConversation(t *testing.T, fake *fakeDynamo) *models.Conversation {
	t.Helper()
	cs := &ChatService{Dynamo: fake}
	conversation, created, err := cs.FindOrCreateDirectConversation(context.Background(), "alice", "bob", "Alice", "Bob")
	require.NoError(t, err)
	require.True(t, created)
	return conversation
}

func TestSendMessageValidation(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	ctx := context.Background()
	conversation := newPairConversation(t, fake)

	_, err := cs.SendMessage(ctx, conversation.ConversationID, "alice", "Alice", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = cs.SendMessage(ctx, conversation.ConversationID, "mallory", "Mallory", "hi")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = cs.SendMessage(ctx, "missing_conversation", "alice", "Alice", "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := cs.GetConversation(ctx, conversation.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, after.Messages)
}

func TestSendMessagePreservesHistory(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	ctx := context.Background()
	conversation := newPairConversation(t, fake)

	first, err := cs.SendMessage(ctx, conversation.ConversationID, "alice", "Alice", "hi")
	require.NoError(t, err)
	second, err := cs.SendMessage(ctx, conversation.ConversationID, "bob", "Bob", "hey")
	require.NoError(t, err)

	after, err := cs.GetConversation(ctx, conversation.ConversationID)
	require.NoError(t, err)
	require.Len(t, after.Messages, 2)
	assert.Equal(t, first.ID, after.Messages[0].ID)
	assert.Equal(t, "hi", after.Messages[0].Message)
	assert.Equal(t, second.ID, after.Messages[1].ID)
	assert.Equal(t, "hey", after.Messages[1].Message)
	assert.Equal(t, "hey", after.LastMessage)
	assert.Equal(t, second.Timestamp, after.LastMessageTime)
}

func TestConcurrentSendsBothRetained(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	ctx := context.Background()
	conversation := newPairConversation(t, fake)

	var wg sync.WaitGroup
	for _, send := range []struct{ sender, name, body string }{
		{"alice", "Alice", "hi"},
		{"bob", "Bob", "hey"},
	} {
		wg.Add(1)
		go func(sender, name, body string) {
			defer wg.Done()
			_, err := cs.SendMessage(ctx, conversation.ConversationID, sender, name, body)
			assert.NoError(t, err)
		}(send.sender, send.name, send.body)
	}
	wg.Wait()

	after, err := cs.GetConversation(ctx, conversation.ConversationID)
	require.NoError(t, err)
	require.Len(t, after.Messages, 2)

	bodies := []string{after.Messages[0].Message, after.Messages[1].Message}
	assert.ElementsMatch(t, []string{"hi", "hey"}, bodies)
	assert.Contains(t, bodies, after.LastMessage)
}

func TestSendMessageTrimsBody(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	conversation := newPairConversation(t, fake)

	message, err := cs.SendMessage(context.Background(), conversation.ConversationID, "alice", "Alice", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", message.Message)
}

func TestSendMessageBroadcastsFullSnapshot(t *testing.T) {
	fake := newFakeDynamo()
	events := &recordingEvents{}
	cs := &ChatService{Dynamo: fake, Events: events}
	ctx := context.Background()
	conversation := newPairConversation(t, fake)

	_, err := cs.SendMessage(ctx, conversation.ConversationID, "alice", "Alice", "hi")
	require.NoError(t, err)
	_, err = cs.SendMessage(ctx, conversation.ConversationID, "bob", "Bob", "hey")
	require.NoError(t, err)

	require.Len(t, events.snapshots, 2)
	// Each push carries the whole history, not a delta.
	assert.Len(t, events.snapshots[0].Messages, 1)
	assert.Len(t, events.snapshots[1].Messages, 2)
	assert.Equal(t, "hey", events.snapshots[1].LastMessage)
}

func TestFindOrCreateDirectConversation(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	ctx := context.Background()

	created, wasCreated, err := cs.FindOrCreateDirectConversation(ctx, "bob", "alice", "Bob", "Alice")
	require.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, "alice_bob", created.ConversationID)
	assert.Equal(t, []string{"alice", "bob"}, created.Participants)
	assert.Equal(t, []string{"Alice", "Bob"}, created.ParticipantNames)

	// Reversed calling order resolves to the same conversation.
	found, wasCreated, err := cs.FindOrCreateDirectConversation(ctx, "alice", "bob", "Alice", "Bob")
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, created.ConversationID, found.ConversationID)
	assert.Equal(t, 1, fake.count(models.ConversationsTable))

	_, _, err = cs.FindOrCreateDirectConversation(ctx, "alice", "alice", "Alice", "Alice")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListConversationsForUser(t *testing.T) {
	fake := newFakeDynamo()
	cs := &ChatService{Dynamo: fake}
	ctx := context.Background()

	first, _, err := cs.FindOrCreateDirectConversation(ctx, "alice", "bob", "Alice", "Bob")
	require.NoError(t, err)
	second, _, err := cs.FindOrCreateDirectConversation(ctx, "alice", "carol", "Alice", "Carol")
	require.NoError(t, err)
	_, _, err = cs.FindOrCreateDirectConversation(ctx, "bob", "carol", "Bob", "Carol")
	require.NoError(t, err)

	_, err = cs.SendMessage(ctx, first.ConversationID, "alice", "Alice", "hi bob")
	require.NoError(t, err)
	_, err = cs.SendMessage(ctx, second.ConversationID, "carol", "Carol", "hi alice")
	require.NoError(t, err)

	conversations, err := cs.ListConversationsForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	ids := []string{conversations[0].ConversationID, conversations[1].ConversationID}
	assert.ElementsMatch(t, []string{first.ConversationID, second.ConversationID}, ids)
	// Most recent message first.
	assert.GreaterOrEqual(t, conversations[0].LastMessageTime, conversations[1].LastMessageTime)

	none, err := cs.ListConversationsForUser(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, none)
}
