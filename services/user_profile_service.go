package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"stacks_server/models"
	"stacks_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo DynamoAPI
}

// AddUserProfile adds a new user profile
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to add profile: %w", err)
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return nil, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpdateUserProfile applies string-field updates to an existing profile
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for field, value := range updates {
		placeholder := ":" + field
		attributeName := "#" + field
		updateExpression += " " + attributeName + " = " + placeholder + ","
		expressionAttributeValues[placeholder] = &types.AttributeValueMemberS{Value: value}
		expressionAttributeNames[attributeName] = field
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile %s: %w", userID, err)
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}
	return &updatedProfile, nil
}

// SetProfileImageURL sets the profile photo URL after an upload completes
func (ups *UserProfileService) SetProfileImageURL(ctx context.Context, userID, imageURL string) (*models.UserProfile, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("%w: imageURL is required", ErrValidation)
	}
	return ups.UpdateUserProfile(ctx, userID, map[string]string{"profileImageURL": imageURL})
}

// DeleteUserProfile removes a user profile
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, key)
}

// GetDiscoveryProfiles returns the swipe-feed candidates for a user: every
// profile except their own and those they have already swiped on. When both
// sides carry coordinates the distance is attached for display.
func (ups *UserProfileService) GetDiscoveryProfiles(ctx context.Context, userID string) ([]models.UserProfile, error) {
	viewer, err := ups.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	swiped, err := ups.swipedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	swiped[userID] = struct{}{}

	var profiles []models.UserProfile
	err = ups.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		candidateID := utils.ExtractString(item, "userId")
		if candidateID == "" {
			return false
		}
		_, excluded := swiped[candidateID]
		return !excluded
	}, nil, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discovery profiles: %w", err)
	}

	if profiles == nil {
		profiles = []models.UserProfile{}
	}

	for i := range profiles {
		if viewer.Latitude == 0 || viewer.Longitude == 0 || profiles[i].Latitude == 0 || profiles[i].Longitude == 0 {
			continue
		}
		distance := utils.CalculateDistance(viewer.Latitude, viewer.Longitude, profiles[i].Latitude, profiles[i].Longitude)
		profiles[i].DistanceBetween = math.Round(distance*100) / 100
	}

	log.Printf("🔍 Discovery for %s: %d candidates", userID, len(profiles))
	return profiles, nil
}

// swipedUserIDs collects every user the viewer has already swiped on, in
// either direction of the gesture (any action counts as seen).
func (ups *UserProfileService) swipedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	keyCondition := "swiperId = :swiper"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ups.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwiperIndex, keyCondition, expressionValues, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes for %s: %w", userID, err)
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if target := utils.ExtractString(item, "swipedUserId"); target != "" {
			seen[target] = struct{}{}
		}
	}
	return seen, nil
}
