package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"postboard/internal/models"
	"postboard/internal/store"
)

// memStore is an in-memory store.PostStore that counts reads and writes.
type memStore struct {
	mu      sync.Mutex
	posts   map[string]*models.Post
	nextID  int
	gets    int
	saves   int
	deletes int

	listErr error
	getErr  error
	saveErr error
}

func newMemStore(posts ...*models.Post) *memStore {
	m := &memStore{posts: map[string]*models.Post{}}
	for _, p := range posts {
		m.posts[p.ID] = p.Clone()
	}
	return m
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *memStore) ListAll(_ context.Context, _ string, descending bool) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*models.Post
	for _, p := range m.posts {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if descending {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *memStore) Save(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if post.ID == "" {
		m.nextID++
		post.ID = fmt.Sprintf("post-%d", m.nextID)
	} else if _, ok := m.posts[post.ID]; !ok {
		return store.ErrNotFound
	}
	for i := range post.Comments {
		if post.Comments[i].ID == "" {
			m.nextID++
			post.Comments[i].ID = fmt.Sprintf("comment-%d", m.nextID)
		}
	}
	m.posts[post.ID] = post.Clone()
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) stored(id string) *models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts[id].Clone()
}

// profileStoreStub is a stub for store.ProfileStore.
type profileStoreStub struct {
	findByUserFn func(context.Context, string) (*models.Profile, error)
	calls        int
}

func (s *profileStoreStub) FindByUser(ctx context.Context, userID string) (*models.Profile, error) {
	s.calls++
	return s.findByUserFn(ctx, userID)
}

func (s *profileStoreStub) Save(context.Context, *models.Profile) error { return nil }

func noProfiles() *profileStoreStub {
	return &profileStoreStub{
		findByUserFn: func(context.Context, string) (*models.Profile, error) { return nil, store.ErrNotFound },
	}
}
