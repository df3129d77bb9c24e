package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"stacks_server/models"
	"stacks_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatEvents receives the full conversation snapshot after every successful
// append, mirroring a document-subscription feed. Implemented by the socket
// server; nil disables broadcasting.
type ChatEvents interface {
	ConversationUpdated(conversation models.Conversation)
}

// ChatService manages conversation documents and their embedded messages.
type ChatService struct {
	Dynamo DynamoAPI
	Events ChatEvents
}

// SendMessage appends a message to a conversation. The append happens at
// the store level (list_append), so two participants sending concurrently
// both land in the history; lastMessage/lastMessageTime ride along in the
// same update.
func (cs *ChatService) SendMessage(ctx context.Context, conversationID, senderID, senderName, body string) (*models.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", ErrValidation)
	}
	if senderID == "" {
		return nil, fmt.Errorf("%w: senderId is required", ErrValidation)
	}

	conversation, err := cs.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: %s is not a participant of %s", ErrValidation, senderID, conversationID)
	}

	message := models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		SenderName: senderName,
		Message:    body,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	messageAttr, err := attributevalue.MarshalMap(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	extraSets := map[string]types.AttributeValue{
		"lastMessage":     &types.AttributeValueMemberS{Value: message.Message},
		"lastMessageTime": &types.AttributeValueMemberS{Value: message.Timestamp},
	}

	if err := cs.Dynamo.AppendToList(ctx, models.ConversationsTable, key, "messages", &types.AttributeValueMemberM{Value: messageAttr}, extraSets); err != nil {
		return nil, fmt.Errorf("failed to append message to %s: %w", conversationID, err)
	}

	cs.broadcast(ctx, conversationID)
	return &message, nil
}

// GetConversation fetches the full conversation document
func (cs *ChatService) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrValidation)
	}

	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	item, err := cs.Dynamo.GetItem(ctx, models.ConversationsTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conversation, nil
}

// ListConversationsForUser returns every conversation the user participates
// in, most recent message first.
func (cs *ChatService) ListConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	var conversations []models.Conversation
	err := cs.Dynamo.ScanWithFilter(ctx, models.ConversationsTable, func(item map[string]types.AttributeValue) bool {
		for _, participant := range utils.ExtractStringList(item, "participants") {
			if participant == userID {
				return true
			}
		}
		return false
	}, nil, &conversations)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations for %s: %w", userID, err)
	}

	if conversations == nil {
		conversations = []models.Conversation{}
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime > conversations[j].LastMessageTime
	})
	return conversations, nil
}

// FindOrCreateDirectConversation resolves the conversation for a pair of
// users outside the match flow, creating an empty one when absent. The pair
// key matches the one the match flow uses, so both paths share a single
// conversation.
func (cs *ChatService) FindOrCreateDirectConversation(ctx context.Context, userA, userB, nameA, nameB string) (*models.Conversation, bool, error) {
	if userA == "" || userB == "" {
		return nil, false, fmt.Errorf("%w: both user IDs are required", ErrValidation)
	}
	if userA == userB {
		return nil, false, fmt.Errorf("%w: cannot start a conversation with yourself", ErrValidation)
	}

	pairID := CanonicalPairID(userA, userB)
	if existing, err := cs.GetConversation(ctx, pairID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	u1, u2, n1, n2 := userA, userB, nameA, nameB
	if u2 < u1 {
		u1, u2 = u2, u1
		n1, n2 = n2, n1
	}

	conversation := models.Conversation{
		ConversationID:   pairID,
		Participants:     []string{u1, u2},
		ParticipantNames: []string{n1, n2},
		Messages:         []models.ChatMessage{},
		LastMessage:      "",
		LastMessageTime:  "",
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	err := cs.Dynamo.PutItemIfAbsent(ctx, models.ConversationsTable, conversation, "conversationId")
	if errors.Is(err, ErrAlreadyExists) {
		existing, getErr := cs.GetConversation(ctx, pairID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create conversation: %w", err)
	}

	return &conversation, true, nil
}

// broadcast re-reads the conversation and pushes the full snapshot to
// subscribers. Failures are logged and swallowed; delivery is best-effort
// and never fails the send.
func (cs *ChatService) broadcast(ctx context.Context, conversationID string) {
	if cs.Events == nil {
		return
	}
	conversation, err := cs.GetConversation(ctx, conversationID)
	if err != nil {
		log.Printf("❌ Failed to load conversation %s for broadcast: %v", conversationID, err)
		return
	}
	cs.Events.ConversationUpdated(*conversation)
}
