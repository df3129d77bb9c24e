package models

// ChatMessage is a single message embedded in a conversation document.
// Immutable once appended.
type ChatMessage struct {
	ID         string `dynamodbav:"id" json:"id"`
	SenderID   string `dynamodbav:"senderId" json:"senderId"`
	SenderName string `dynamodbav:"senderName" json:"senderName"`
	Message    string `dynamodbav:"message" json:"message"`
	Timestamp  string `dynamodbav:"timestamp" json:"timestamp"`
}

// Conversation holds the full message history for a pair of users in one
// document. ConversationID equals the canonical pair key, so the match flow
// and the direct-message flow converge on a single conversation per pair.
// Messages is append-only; LastMessage/LastMessageTime are a denormalized
// cache of the final message for list rendering.
type Conversation struct {
	ConversationID   string        `dynamodbav:"conversationId" json:"conversationId"` // Partition key
	Participants     []string      `dynamodbav:"participants" json:"participants"`
	ParticipantNames []string      `dynamodbav:"participantNames" json:"participantNames"`
	Messages         []ChatMessage `dynamodbav:"messages" json:"messages"`
	LastMessage      string        `dynamodbav:"lastMessage" json:"lastMessage"`
	LastMessageTime  string        `dynamodbav:"lastMessageTime" json:"lastMessageTime"`
	CreatedAt        string        `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"
