package models

// Swipe actions
const (
	SwipeActionPass      = "pass"
	SwipeActionLike      = "like"
	SwipeActionSuperlike = "superlike"
)

// Match statuses
const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)
