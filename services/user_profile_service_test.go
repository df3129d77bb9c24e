package services

import (
	"context"
	"testing"

	"stacks_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGetUserProfile(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}
	ctx := context.Background()

	_, err := ups.AddUserProfile(ctx, models.UserProfile{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := ups.AddUserProfile(ctx, models.UserProfile{
		UserID: "alice",
		Name:   "Alice",
		Bio:    "hello",
		Age:    29,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.UserID)

	fetched, err := ups.GetUserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)
	assert.Equal(t, 29, fetched.Age)

	_, err = ups.GetUserProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserProfile(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}
	ctx := context.Background()

	_, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "alice", Name: "Alice"})
	require.NoError(t, err)

	updated, err := ups.UpdateUserProfile(ctx, "alice", map[string]string{"bio": "new bio", "city": "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "Berlin", updated.City)
	assert.Equal(t, "Alice", updated.Name)

	_, err = ups.UpdateUserProfile(ctx, "alice", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetProfileImageURL(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}
	ctx := context.Background()

	_, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "alice", Name: "Alice"})
	require.NoError(t, err)

	updated, err := ups.SetProfileImageURL(ctx, "alice", "https://example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.jpg", updated.ProfileImageURL)

	_, err = ups.SetProfileImageURL(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetDiscoveryProfilesExcludesSelfAndSwiped(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}
	ss := &SwipeService{Dynamo: fake}
	ctx := context.Background()

	for _, p := range []models.UserProfile{
		{UserID: "alice", Name: "Alice"},
		{UserID: "bob", Name: "Bob"},
		{UserID: "carol", Name: "Carol"},
		{UserID: "dave", Name: "Dave"},
	} {
		_, err := ups.AddUserProfile(ctx, p)
		require.NoError(t, err)
	}

	// Alice has already swiped on Bob (like) and Carol (pass); both drop
	// out of her feed.
	_, err := ss.RecordSwipe(ctx, "alice", "bob", models.SwipeActionLike, "Alice", "Bob")
	require.NoError(t, err)
	_, err = ss.RecordSwipe(ctx, "alice", "carol", models.SwipeActionPass, "Alice", "Carol")
	require.NoError(t, err)

	profiles, err := ups.GetDiscoveryProfiles(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "dave", profiles[0].UserID)
}

func TestGetDiscoveryProfilesAttachesDistance(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}
	ctx := context.Background()

	// Berlin and Hamburg, roughly 255 km apart.
	_, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "alice", Name: "Alice", Latitude: 52.52, Longitude: 13.405})
	require.NoError(t, err)
	_, err = ups.AddUserProfile(ctx, models.UserProfile{UserID: "bob", Name: "Bob", Latitude: 53.551, Longitude: 9.994})
	require.NoError(t, err)
	_, err = ups.AddUserProfile(ctx, models.UserProfile{UserID: "carol", Name: "Carol"})
	require.NoError(t, err)

	profiles, err := ups.GetDiscoveryProfiles(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	byID := map[string]models.UserProfile{}
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	assert.InDelta(t, 255, byID["bob"].DistanceBetween, 5)
	assert.Zero(t, byID["carol"].DistanceBetween)
}
