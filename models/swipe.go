package models

// Swipe is a single swipe gesture. Swipes are append-only: repeated swipes
// on the same pair each produce a new item.
type Swipe struct {
	SwipeID        string `dynamodbav:"swipeId" json:"swipeId"` // Partition key
	SwiperID       string `dynamodbav:"swiperId" json:"swiperId"`
	SwipedUserID   string `dynamodbav:"swipedUserId" json:"swipedUserId"`
	Action         string `dynamodbav:"action" json:"action"` // pass, like, superlike
	SwiperName     string `dynamodbav:"swiperName" json:"swiperName"`
	SwipedUserName string `dynamodbav:"swipedUserName" json:"swipedUserName"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipe events
const SwipesTable = "Swipes"

// SwiperIndex is the GSI used to query swipes by their author
const SwiperIndex = "swiperId-index"
