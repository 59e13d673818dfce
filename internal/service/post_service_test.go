package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

func TestPostService_CreateValidation(t *testing.T) {
	a := newApp(t)
	alice := a.seed(t, "alice")
	ctx := context.Background()

	_, err := a.posts.Create(ctx, alice.ID, "", "caption")
	assert.ErrorIs(t, err, domain.ErrImageRequired)
	_, err = a.posts.Create(ctx, alice.ID, "posts/a.png", "  ")
	assert.ErrorIs(t, err, domain.ErrCaptionRequired)
	assert.Empty(t, a.db.posts)
}

func TestPostService_LikeUnlikeRoundTrip(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")
	post, err := a.posts.Create(ctx, alice.ID, "posts/a.png", "hello")
	require.NoError(t, err)

	likes := func() int64 {
		d, err := a.posts.Get(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		return d.LikesCount
	}
	before := likes()

	require.NoError(t, a.posts.Like(ctx, bob.ID, post.ID))
	assert.Equal(t, before+1, likes())
	assert.ErrorIs(t, a.posts.Like(ctx, bob.ID, post.ID), domain.ErrAlreadyLiked)
	assert.Equal(t, before+1, likes())

	likers, err := a.posts.Likers(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, "bob", likers[0].Username)

	require.NoError(t, a.posts.Unlike(ctx, bob.ID, post.ID))
	assert.Equal(t, before, likes())
	assert.ErrorIs(t, a.posts.Unlike(ctx, bob.ID, post.ID), domain.ErrLikeNotFound)
}

func TestPostService_LikeMissingPost(t *testing.T) {
	a := newApp(t)
	bob := a.seed(t, "bob")
	assert.ErrorIs(t, a.posts.Like(context.Background(), bob.ID, "missing"), domain.ErrPostNotFound)
}

func TestPostService_OwnershipGating(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")
	post, err := a.posts.Create(ctx, alice.ID, "posts/a.png", "hello")
	require.NoError(t, err)

	_, err = a.posts.Update(ctx, bob.ID, post.ID, "", "hijacked")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, a.posts.Delete(ctx, bob.ID, post.ID), domain.ErrForbidden)

	updated, err := a.posts.Update(ctx, alice.ID, post.ID, "", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Caption)
	assert.Equal(t, "posts/a.png", updated.Image, "empty image keeps the stored one")

	updated, err = a.posts.Update(ctx, alice.ID, post.ID, "posts/b.png", "")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Caption)
	assert.Equal(t, []string{"posts/a.png"}, a.images.deleted)
}

func TestPostService_DeleteCascades(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")
	post, err := a.posts.Create(ctx, alice.ID, "posts/a.png", "hello")
	require.NoError(t, err)
	c, err := a.comments.Create(ctx, bob.ID, post.ID, "nice")
	require.NoError(t, err)
	require.NoError(t, a.posts.Like(ctx, bob.ID, post.ID))
	require.NoError(t, a.comments.Like(ctx, alice.ID, post.ID, c.ID))

	require.NoError(t, a.posts.Delete(ctx, alice.ID, post.ID))

	_, err = a.posts.Get(ctx, post.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	_, err = a.comments.List(ctx, post.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	_, err = a.db.commentsGet(c.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Empty(t, a.db.postLikes)
	assert.Empty(t, a.db.commentLikes)
	assert.Equal(t, []string{"posts/a.png"}, a.images.deleted)
}

func TestPostService_FeedAndExplore(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob, carol := a.seed(t, "alice"), a.seed(t, "bob"), a.seed(t, "carol")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, u := range []*domain.User{bob, carol, bob} {
		a.posts.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := a.posts.Create(ctx, u.ID, "posts/x.png", "post")
		require.NoError(t, err)
	}

	feed, err := a.posts.Feed(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed, "no followees means an empty feed")

	require.NoError(t, a.graph.Follow(ctx, alice.ID, bob.ID))
	feed, err = a.posts.Feed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.Equal(t, bob.ID, p.UserID)
	}
	assert.True(t, feed[0].CreatedAt.After(feed[1].CreatedAt), "newest first")

	all, err := a.posts.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostService_GetFollowFlagRelativeToOwner(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice, bob := a.seed(t, "alice"), a.seed(t, "bob")
	post, err := a.posts.Create(ctx, alice.ID, "posts/a.png", "hello")
	require.NoError(t, err)
	require.NoError(t, a.graph.Follow(ctx, bob.ID, alice.ID))

	d, err := a.posts.Get(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, d.IsFollowing)
	assert.NotNil(t, d.Comments)

	own, err := a.posts.Get(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, own.IsFollowing)
}
