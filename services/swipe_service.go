package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stacks_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// SwipeService records swipe gestures and turns mutual interest into
// exactly one match and one conversation per pair.
type SwipeService struct {
	Dynamo DynamoAPI
}

// SwipeResult is returned to the swiper. Matched is true only for the swipe
// that completed the mutual condition; Match then carries the record the
// caller should surface as the "It's a match" notification.
type SwipeResult struct {
	Swipe   models.Swipe  `json:"swipe"`
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
}

// CanonicalPairID derives the shared key for a pair of users: both IDs
// sorted lexicographically and joined with "_". Sorting makes the key
// independent of which side triggered the evaluation.
func CanonicalPairID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// legacyPairID is the reverse of the canonical key, where matches written
// by the old call-order-dependent scheme may sit. Never written anymore,
// only checked on lookup so those matches stay visible. Sorting first keeps
// the result independent of the caller's argument order.
func legacyPairID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userB + "_" + userA
}

// RecordSwipe appends one immutable swipe and, for like/superlike, runs
// match evaluation. A pass never evaluates. Repeated swipes on the same
// pair are not deduplicated; each one re-triggers evaluation.
func (ss *SwipeService) RecordSwipe(ctx context.Context, swiperID, swipedUserID, action, swiperName, swipedUserName string) (*SwipeResult, error) {
	if swiperID == "" || swipedUserID == "" {
		return nil, fmt.Errorf("%w: swiperId and swipedUserId are required", ErrValidation)
	}
	if swiperID == swipedUserID {
		return nil, fmt.Errorf("%w: cannot swipe on yourself", ErrValidation)
	}
	switch action {
	case models.SwipeActionPass, models.SwipeActionLike, models.SwipeActionSuperlike:
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	swipe := models.Swipe{
		SwipeID:        uuid.NewString(),
		SwiperID:       swiperID,
		SwipedUserID:   swipedUserID,
		Action:         action,
		SwiperName:     swiperName,
		SwipedUserName: swipedUserName,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := ss.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	result := &SwipeResult{Swipe: swipe}
	if action == models.SwipeActionPass {
		return result, nil
	}

	match, err := ss.EvaluateMatch(ctx, swiperID, swipedUserID, swiperName, swipedUserName)
	if err != nil {
		return nil, err
	}
	if match != nil {
		log.Printf("🎉 Match: %s ❤️ %s (%s)", swiperID, swipedUserID, match.MatchID)
		result.Matched = true
		result.Match = match
	}
	return result, nil
}

// EvaluateMatch checks whether the swiped user has previously liked the
// swiper. Interest is stored per-event, so this is a query over the target's
// swipe history rather than a field lookup. Returns nil when no mutual
// interest exists.
func (ss *SwipeService) EvaluateMatch(ctx context.Context, swiperID, swipedUserID, swiperName, swipedUserName string) (*models.Match, error) {
	liked, err := ss.hasUserLiked(ctx, swipedUserID, swiperID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return nil, nil
	}

	match, _, err := ss.CreateMatchIfAbsent(ctx, swiperID, swipedUserID, swiperName, swipedUserName)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// hasUserLiked reports whether swiperID has an existing like/superlike
// toward targetID, via the swiperId-index GSI.
func (ss *SwipeService) hasUserLiked(ctx context.Context, swiperID, targetID string) (bool, error) {
	keyCondition := "swiperId = :swiper"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: swiperID},
	}

	items, err := ss.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwiperIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return false, fmt.Errorf("failed to query swipes for %s: %w", swiperID, err)
	}

	for _, item := range items {
		var swipe models.Swipe
		if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
			log.Printf("❌ Error unmarshalling swipe: %v", err)
			continue
		}
		if swipe.SwipedUserID != targetID {
			continue
		}
		if swipe.Action == models.SwipeActionLike || swipe.Action == models.SwipeActionSuperlike {
			return true, nil
		}
	}
	return false, nil
}

// CreateMatchIfAbsent creates the match and its conversation exactly once
// per unordered pair. Concurrent evaluations from both sides race on the
// conditional write; the loser re-reads and returns the winner's record.
// The returned bool is true only for the invocation that created the match.
func (ss *SwipeService) CreateMatchIfAbsent(ctx context.Context, userA, userB, nameA, nameB string) (*models.Match, bool, error) {
	pairID := CanonicalPairID(userA, userB)

	if existing, err := ss.getMatch(ctx, pairID); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, ss.ensureConversationForMatch(ctx, existing)
	}

	// Matches written before keys were canonicalized may sit under the
	// reversed key.
	if existing, err := ss.getMatch(ctx, legacyPairID(userA, userB)); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, ss.ensureConversationForMatch(ctx, existing)
	}

	// Canonical order for user1/user2 mirrors the key.
	u1, u2, n1, n2 := userA, userB, nameA, nameB
	if u2 < u1 {
		u1, u2 = u2, u1
		n1, n2 = n2, n1
	}

	match := models.Match{
		MatchID:        pairID,
		User1ID:        u1,
		User2ID:        u2,
		User1Name:      n1,
		User2Name:      n2,
		ConversationID: pairID,
		Status:         models.MatchStatusActive,
		MatchDate:      time.Now().UTC().Format(time.RFC3339),
	}

	err := ss.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, match, "matchId")
	if errors.Is(err, ErrAlreadyExists) {
		existing, getErr := ss.getMatch(ctx, pairID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, ss.ensureConversationForMatch(ctx, existing)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create match: %w", err)
	}

	if err := ss.ensureConversation(ctx, pairID, u1, u2, n1, n2); err != nil {
		return nil, false, err
	}

	return &match, true, nil
}

// ensureConversationForMatch backfills the conversation for a match that
// already exists. A store failure between the match put and the conversation
// put can leave the match without its conversation; because the create is
// conditional, re-running it from any later evaluation repairs that state
// without touching a conversation that made it through.
func (ss *SwipeService) ensureConversationForMatch(ctx context.Context, match *models.Match) error {
	conversationID := match.ConversationID
	if conversationID == "" {
		conversationID = match.MatchID
	}
	return ss.ensureConversation(ctx, conversationID, match.User1ID, match.User2ID, match.User1Name, match.User2Name)
}

// ensureConversation creates the empty conversation under the pair key. A
// conversation already created by the direct-message path is kept as-is.
func (ss *SwipeService) ensureConversation(ctx context.Context, pairID, user1, user2, name1, name2 string) error {
	conversation := models.Conversation{
		ConversationID:   pairID,
		Participants:     []string{user1, user2},
		ParticipantNames: []string{name1, name2},
		Messages:         []models.ChatMessage{},
		LastMessage:      "",
		LastMessageTime:  "",
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	err := ss.Dynamo.PutItemIfAbsent(ctx, models.ConversationsTable, conversation, "conversationId")
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (ss *SwipeService) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	item, err := ss.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
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
