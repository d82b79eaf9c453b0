package seed

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"postboard/internal/models"
	"postboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePosts struct {
	mu    sync.Mutex
	next  int
	posts map[string]*models.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[string]*models.Post{}}
}

func (f *fakePosts) GetByID(_ context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (f *fakePosts) ListAll(context.Context, string, bool) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (f *fakePosts) Save(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		f.next++
		p.ID = fmt.Sprintf("post-%d", f.next)
	}
	for i := range p.Comments {
		if p.Comments[i].ID == "" {
			f.next++
			p.Comments[i].ID = fmt.Sprintf("comment-%d", f.next)
		}
	}
	f.posts[p.ID] = p.Clone()
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) Ping(context.Context) error { return nil }

type fakeProfiles struct {
	byUser map[string]*models.Profile
}

func (f *fakeProfiles) FindByUser(_ context.Context, user string) (*models.Profile, error) {
	p, ok := f.byUser[user]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Save(_ context.Context, p *models.Profile) error {
	f.byUser[p.User] = p
	return nil
}

func TestSeeder_Run(t *testing.T) {
	posts := newFakePosts()
	profiles := &fakeProfiles{byUser: map[string]*models.Profile{}}

	s := NewSeeder(posts, profiles, Options{Users: 8, Posts: 12, MaxLikes: 5, MaxComments: 3, Seed: 42})
	res, err := s.Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 8, res.Profiles)
	assert.Len(t, profiles.byUser, 8)
	assert.Equal(t, 12, res.Posts)
	assert.Len(t, posts.posts, 12)

	likes, comments := 0, 0
	for _, p := range posts.posts {
		assert.GreaterOrEqual(t, len(p.Title), 10)
		assert.Contains(t, profiles.byUser, p.User)

		seen := map[string]bool{}
		for _, l := range p.Likes {
			assert.False(t, seen[l.User], "duplicate like on %s", p.ID)
			seen[l.User] = true
		}
		for _, c := range p.Comments {
			assert.NotEmpty(t, c.ID)
			assert.Contains(t, profiles.byUser, c.User)
		}
		likes += len(p.Likes)
		comments += len(p.Comments)
	}
	assert.Equal(t, res.Likes, likes)
	assert.Equal(t, res.Comments, comments)
}

func TestSeeder_NoUsers(t *testing.T) {
	posts := newFakePosts()
	profiles := &fakeProfiles{byUser: map[string]*models.Profile{}}

	res, err := NewSeeder(posts, profiles, Options{Posts: 5, Seed: 1}).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Empty(t, posts.posts)
}
