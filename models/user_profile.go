package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID          string   `dynamodbav:"userId,omitempty" json:"userId,omitempty"`
	Name            string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email           string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Bio             string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Age             int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender          string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	City            string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Interests       []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	ProfileImageURL string   `dynamodbav:"profileImageURL,omitempty" json:"profileImageURL,omitempty"`
	Latitude        float64  `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude       float64  `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`

	// DistanceBetween is computed per request, never stored.
	DistanceBetween float64 `dynamodbav:"-" json:"distanceBetween,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
