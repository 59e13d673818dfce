package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

func TestGraphService_SelfFollowNeverCreatesEdge(t *testing.T) {
	a := newApp(t)
	alice := a.seed(t, "alice")

	err := a.graph.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
	assert.Empty(t, a.db.follows)

	ok, err := a.graph.IsFollowing(context.Background(), alice.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGraphService_FollowThenDuplicate(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")

	require.NoError(t, a.graph.Follow(ctx, alice.ID, bob.ID))

	ok, err := a.graph.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	back, err := a.graph.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, back, "follow is directed")

	assert.ErrorIs(t, a.graph.Follow(ctx, alice.ID, bob.ID), domain.ErrAlreadyFollowing)
	assert.Len(t, a.db.follows, 1)
}

func TestGraphService_FollowUnknownUser(t *testing.T) {
	a := newApp(t)
	alice := a.seed(t, "alice")

	err := a.graph.Follow(context.Background(), alice.ID, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGraphService_Unfollow(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")

	assert.ErrorIs(t, a.graph.Unfollow(ctx, alice.ID, bob.ID), domain.ErrNotFollowing)

	require.NoError(t, a.graph.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, a.graph.Unfollow(ctx, alice.ID, bob.ID))

	ok, err := a.graph.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGraphService_FollowersAnnotatedInOneBatch(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	target := a.seed(t, "target")
	viewer := a.seed(t, "viewer")
	f1, f2, f3 := a.seed(t, "f1"), a.seed(t, "f2"), a.seed(t, "f3")

	for _, f := range []*domain.User{f1, f2, f3, viewer} {
		require.NoError(t, a.graph.Follow(ctx, f.ID, target.ID))
	}
	require.NoError(t, a.graph.Follow(ctx, viewer.ID, f2.ID))

	a.amongCalls = 0
	entries, err := a.graph.Followers(ctx, target.ID, viewer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, 1, a.amongCalls)

	flags := map[string]bool{}
	for _, e := range entries {
		flags[e.Username] = e.IsFollowing
	}
	assert.Equal(t, map[string]bool{"f1": false, "f2": true, "f3": false, "viewer": false}, flags)
}

func TestGraphService_FollowingAnonymousViewer(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")
	require.NoError(t, a.graph.Follow(ctx, alice.ID, bob.ID))

	a.amongCalls = 0
	entries, err := a.graph.Following(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Username)
	assert.False(t, entries[0].IsFollowing)
	assert.Zero(t, a.amongCalls)
}

func TestGraphService_FollowersOfUnknownUser(t *testing.T) {
	a := newApp(t)
	_, err := a.graph.Followers(context.Background(), "nobody", "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
