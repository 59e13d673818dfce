package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

// memDB is an in-memory stand-in for the Postgres schema, including its
// unique keys and cascades.
type memDB struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	posts        map[string]*domain.Post
	comments     map[string]*domain.Comment
	postLikes    map[[2]string]time.Time
	commentLikes map[[2]string]time.Time
	follows      map[[2]string]time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:        map[string]*domain.User{},
		posts:        map[string]*domain.Post{},
		comments:     map[string]*domain.Comment{},
		postLikes:    map[[2]string]time.Time{},
		commentLikes: map[[2]string]time.Time{},
		follows:      map[[2]string]time.Time{},
	}
}

func (db *memDB) summary(id string) domain.UserSummary {
	if u, ok := db.users[id]; ok {
		return u.Summary()
	}
	return domain.UserSummary{ID: id}
}

func (db *memDB) deletePost(id string) {
	delete(db.posts, id)
	for k := range db.postLikes {
		if k[1] == id {
			delete(db.postLikes, k)
		}
	}
	for cid, c := range db.comments {
		if c.PostID == id {
			db.deleteComment(cid)
		}
	}
}

func (db *memDB) deleteComment(id string) {
	delete(db.comments, id)
	for k := range db.commentLikes {
		if k[1] == id {
			delete(db.commentLikes, k)
		}
	}
}

type memUsers struct{ *memDB }

func (s memUsers) Create(_ context.Context, _ *sql.Tx, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.users {
		if o.Username == u.Username || o.Email == u.Email {
			return domain.ErrUserConflict
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.ID == id })
}

func (s memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Username == username })
}

func (s memUsers) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Username == identifier || u.Email == identifier })
}

func (s memUsers) Taken(_ context.Context, username, email, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == excludeID {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func (s memUsers) Update(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	cp.PasswordHash = old.PasswordHash
	s.users[u.ID] = &cp
	return nil
}

func (s memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s memUsers) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	for pid, p := range s.posts {
		if p.UserID == id {
			s.deletePost(pid)
		}
	}
	for cid, c := range s.comments {
		if c.UserID == id {
			s.deleteComment(cid)
		}
	}
	for _, m := range []map[[2]string]time.Time{s.postLikes, s.commentLikes} {
		for k := range m {
			if k[0] == id {
				delete(m, k)
			}
		}
	}
	for k := range s.follows {
		if k[0] == id || k[1] == id {
			delete(s.follows, k)
		}
	}
	return nil
}

func (s memUsers) Counts(_ context.Context, id string) (domain.UserCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c domain.UserCounts
	for _, p := range s.posts {
		if p.UserID == id {
			c.PostCount++
		}
	}
	for k := range s.follows {
		if k[1] == id {
			c.FollowerCount++
		}
		if k[0] == id {
			c.FollowingCount++
		}
	}
	return c, nil
}

type memPosts struct{ *memDB }

func (s memPosts) Insert(_ context.Context, _ *sql.Tx, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s memPosts) Get(_ context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (s memPosts) Update(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s memPosts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	s.deletePost(id)
	return nil
}

func (s memPosts) view(p *domain.Post, viewerID string) domain.PostView {
	v := domain.PostView{Post: *p, User: s.summary(p.UserID)}
	for k := range s.postLikes {
		if k[1] == p.ID {
			v.LikesCount++
			if k[0] == viewerID {
				v.IsLiked = true
			}
		}
	}
	for _, c := range s.comments {
		if c.PostID == p.ID {
			v.CommentsCount++
		}
	}
	return v
}

func (s memPosts) List(_ context.Context, viewerID string, f domain.PostFilter) ([]domain.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowed := map[string]bool{}
	for _, id := range f.AuthorIDs {
		allowed[id] = true
	}
	out := []domain.PostView{}
	for _, p := range s.posts {
		if f.AuthorIDs != nil && !allowed[p.UserID] {
			continue
		}
		out = append(out, s.view(p, viewerID))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s memPosts) GetView(_ context.Context, id, viewerID string) (*domain.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	v := s.view(p, viewerID)
	return &v, nil
}

type memComments struct{ *memDB }

func (s memComments) Insert(_ context.Context, _ *sql.Tx, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return domain.ErrPostNotFound
	}
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s memComments) Get(_ context.Context, id string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (s memComments) Update(_ context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s memComments) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	s.deleteComment(id)
	return nil
}

func (s memComments) ListByPost(_ context.Context, postID, viewerID string) ([]domain.CommentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.CommentView{}
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		v := domain.CommentView{Comment: *c, User: s.summary(c.UserID)}
		for k := range s.commentLikes {
			if k[1] == c.ID {
				v.LikesCount++
				if k[0] == viewerID {
					v.IsLiked = true
				}
			}
		}
		out = append(out, v)
	}
	return out, nil
}

type memLikes struct{ *memDB }

func (s memLikes) LikePost(_ context.Context, _ *sql.Tx, l domain.PostLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[l.PostID]; !ok {
		return domain.ErrPostNotFound
	}
	k := [2]string{l.UserID, l.PostID}
	if _, ok := s.postLikes[k]; ok {
		return domain.ErrAlreadyLiked
	}
	s.postLikes[k] = l.CreatedAt
	return nil
}

func (s memLikes) UnlikePost(_ context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]string{userID, postID}
	if _, ok := s.postLikes[k]; !ok {
		return domain.ErrLikeNotFound
	}
	delete(s.postLikes, k)
	return nil
}

func (s memLikes) LikeComment(_ context.Context, _ *sql.Tx, l domain.CommentLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[l.CommentID]; !ok {
		return domain.ErrCommentNotFound
	}
	k := [2]string{l.UserID, l.CommentID}
	if _, ok := s.commentLikes[k]; ok {
		return domain.ErrAlreadyLiked
	}
	s.commentLikes[k] = l.CreatedAt
	return nil
}

func (s memLikes) UnlikeComment(_ context.Context, userID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]string{userID, commentID}
	if _, ok := s.commentLikes[k]; !ok {
		return domain.ErrLikeNotFound
	}
	delete(s.commentLikes, k)
	return nil
}

func (s memLikes) likers(m map[[2]string]time.Time, target string) []domain.UserSummary {
	out := []domain.UserSummary{}
	for k := range m {
		if k[1] == target {
			out = append(out, s.summary(k[0]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memLikes) PostLikers(_ context.Context, postID string) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likers(s.postLikes, postID), nil
}

func (s memLikes) CommentLikers(_ context.Context, commentID string) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likers(s.commentLikes, commentID), nil
}

// memFollows counts FollowingAmong calls so tests can assert batching.
type memFollows struct {
	*memDB
	amongCalls *int
}

func (s memFollows) Add(_ context.Context, _ *sql.Tx, f domain.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.FollowerID == f.FollowingID {
		return domain.ErrSelfFollow
	}
	if _, ok := s.users[f.FollowingID]; !ok {
		return domain.ErrUserNotFound
	}
	k := [2]string{f.FollowerID, f.FollowingID}
	if _, ok := s.follows[k]; ok {
		return domain.ErrAlreadyFollowing
	}
	s.follows[k] = f.CreatedAt
	return nil
}

func (s memFollows) Remove(_ context.Context, followerID, followingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]string{followerID, followingID}
	_, ok := s.follows[k]
	delete(s.follows, k)
	return ok, nil
}

func (s memFollows) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.follows[[2]string{followerID, followingID}]
	return ok, nil
}

func (s memFollows) edges(match func(k [2]string) (string, bool)) []domain.UserSummary {
	out := []domain.UserSummary{}
	for k := range s.follows {
		if id, ok := match(k); ok {
			out = append(out, s.summary(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memFollows) Followers(_ context.Context, userID string) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges(func(k [2]string) (string, bool) { return k[0], k[1] == userID }), nil
}

func (s memFollows) Following(_ context.Context, userID string) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges(func(k [2]string) (string, bool) { return k[1], k[0] == userID }), nil
}

func (s memFollows) FollowingAmong(_ context.Context, viewerID string, candidates []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.amongCalls != nil {
		*s.amongCalls++
	}
	out := map[string]bool{}
	for _, id := range candidates {
		if _, ok := s.follows[[2]string{viewerID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (s memFollows) FollowingIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for k := range s.follows {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

// noTx runs fn without a transaction; the memory stores ignore the handle.
type noTx struct{}

func (noTx) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return fn(ctx, nil)
}

type recordedEvent struct {
	Event, Key string
}

type memEvents struct{ events *[]recordedEvent }

func (r memEvents) Record(_ context.Context, _ *sql.Tx, event, key string, _ any) error {
	*r.events = append(*r.events, recordedEvent{event, key})
	return nil
}

type memRevoker struct {
	tokens map[string]time.Time
	err    error
}

func (r *memRevoker) Revoke(_ context.Context, token string, exp time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.tokens[token] = exp
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.tokens[token]
	return ok, nil
}

type memImages struct{ deleted []string }

func (m *memImages) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (db *memDB) commentsGet(id string) (*domain.Comment, error) {
	return memComments{db}.Get(context.Background(), id)
}
