package models

// Match records mutual interest between two users. MatchID is the canonical
// pair key: both user IDs sorted lexicographically and joined with "_", so
// evaluation from either side lands on the same item. User1ID/User2ID follow
// the same sorted order.
type Match struct {
	MatchID        string `dynamodbav:"matchId" json:"matchId"` // Partition key
	User1ID        string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID        string `dynamodbav:"user2Id" json:"user2Id"`
	User1Name      string `dynamodbav:"user1Name" json:"user1Name"`
	User2Name      string `dynamodbav:"user2Name" json:"user2Name"`
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	Status         string `dynamodbav:"status" json:"status"` // active, archived
	MatchDate      string `dynamodbav:"matchDate" json:"matchDate"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
