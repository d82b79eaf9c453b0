// Package store defines the persistence contracts the post service depends on.
package store

import (
	"context"
	"errors"

	"postboard/internal/models"
)

// ErrNotFound is returned when no document matches, including ids that are
// malformed for the backing store.
var ErrNotFound = errors.New("document not found")

// SortByDate is the only sort key posts are listed by.
const SortByDate = "date"

// PostStore is the document-level CRUD surface for posts. Save inserts when the
// post has no ID and replaces the whole document otherwise; it assigns missing
// post and comment ids in place.
type PostStore interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListAll(ctx context.Context, sortKey string, descending bool) ([]*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// ProfileStore looks profiles up by their owning user.
type ProfileStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}
