package services

import (
	"context"
	"errors"
	"fmt"

	"stacks_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService is the read side of matches: list views and pair lookups.
type MatchService struct {
	Dynamo DynamoAPI
}

// MatchWithProfile is a match enriched with the other party's profile for
// list rendering.
type MatchWithProfile struct {
	models.Match
	PartnerID       string `json:"partnerId"`
	PartnerName     string `json:"partnerName"`
	PartnerImageURL string `json:"partnerImageURL,omitempty"`
}

// GetMatchesForUser returns every active match the user is part of,
// enriched with the partner's profile where one exists.
func (ms *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]MatchWithProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	var matches []models.Match
	err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		user1, _ := item["user1Id"].(*types.AttributeValueMemberS)
		user2, _ := item["user2Id"].(*types.AttributeValueMemberS)
		if user1 == nil || user2 == nil {
			return false
		}
		return user1.Value == userID || user2.Value == userID
	}, nil, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", userID, err)
	}

	enriched := []MatchWithProfile{}
	for _, match := range matches {
		if match.Status == models.MatchStatusArchived {
			continue
		}

		partnerID, partnerName := match.User2ID, match.User2Name
		if partnerID == userID {
			partnerID, partnerName = match.User1ID, match.User1Name
		}

		row := MatchWithProfile{Match: match, PartnerID: partnerID, PartnerName: partnerName}
		if profile, err := ms.getProfile(ctx, partnerID); err == nil {
			if profile.Name != "" {
				row.PartnerName = profile.Name
			}
			row.PartnerImageURL = profile.ProfileImageURL
		}
		enriched = append(enriched, row)
	}
	return enriched, nil
}

// GetMatchByPair looks up the match for two users under the canonical key,
// falling back to the reversed legacy key.
func (ms *MatchService) GetMatchByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	if userA == "" || userB == "" {
		return nil, fmt.Errorf("%w: both user IDs are required", ErrValidation)
	}

	for _, matchID := range []string{CanonicalPairID(userA, userB), legacyPairID(userA, userB)} {
		key := map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchID},
		}
		item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, key)
		if errors.Is(err, ErrItemNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
		}

		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match: %w", err)
		}
		return &match, nil
	}

	return nil, fmt.Errorf("%w: no match for %s and %s", ErrNotFound, userA, userB)
}

func (ms *MatchService) getProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
