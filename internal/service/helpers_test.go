package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
	"github.com/SARVESHVARADKAR123/picshare/internal/security"
)

const testPassword = "pw123456"

var (
	hashOnce sync.Once
	testHash string
)

type app struct {
	db         *memDB
	auth       *AuthService
	users      *UserService
	graph      *GraphService
	posts      *PostService
	comments   *CommentService
	events     []recordedEvent
	revoked    *memRevoker
	images     *memImages
	amongCalls int
}

func newApp(t *testing.T) *app {
	t.Helper()
	codec, err := security.NewTokenCodec("test-secret", "picshare", time.Hour)
	require.NoError(t, err)

	a := &app{
		db:      newMemDB(),
		revoked: &memRevoker{tokens: map[string]time.Time{}},
		images:  &memImages{},
	}
	users := memUsers{a.db}
	posts := memPosts{a.db}
	comments := memComments{a.db}
	likes := memLikes{a.db}
	follows := memFollows{memDB: a.db, amongCalls: &a.amongCalls}
	events := memEvents{events: &a.events}

	a.auth = NewAuthService(users, noTx{}, codec, a.revoked, events)
	a.users = NewUserService(users, follows, posts, nil, a.images)
	a.graph = NewGraphService(follows, users, noTx{}, events)
	a.posts = NewPostService(posts, comments, likes, follows, a.images, noTx{}, events)
	a.comments = NewCommentService(comments, posts, likes, noTx{}, events)
	return a
}

// seed inserts a user directly, skipping the per-call bcrypt cost of Register.
func (a *app) seed(t *testing.T, username string) *domain.User {
	t.Helper()
	hashOnce.Do(func() {
		var err error
		testHash, err = security.HashPassword(testPassword)
		require.NoError(t, err)
	})
	now := time.Now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: testHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, memUsers{a.db}.Create(context.Background(), nil, u))
	return u
}

func (a *app) eventNames() []string {
	out := make([]string, len(a.events))
	for i, e := range a.events {
		out[i] = e.Event
	}
	return out
}
