package repository

import (
	"context"
	"testing"

	"postboard/internal/models"
	"postboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_SaveAndFind(t *testing.T) {
	repo := NewProfileRepository(setupSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.FindByUser(ctx, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	profile := &models.Profile{
		User:   "u1",
		Handle: "gopher",
		Status: "Developer",
		Skills: []string{"go", "sql"},
		Social: models.Social{Twitter: "twitter.com/gopher"},
	}
	require.NoError(t, repo.Save(ctx, profile))
	require.NotEmpty(t, profile.ID)

	got, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
	assert.Equal(t, "twitter.com/gopher", got.Social.Twitter)
}

func TestProfileRepository_SaveUpsertsByUser(t *testing.T) {
	repo := NewProfileRepository(setupSQLiteDB(t))
	ctx := context.Background()

	first := &models.Profile{User: "u1", Handle: "gopher", Status: "Developer", Skills: []string{"go"}}
	require.NoError(t, repo.Save(ctx, first))

	second := &models.Profile{User: "u1", Handle: "gopher2", Status: "Lead", Skills: []string{"go", "k8s"}}
	require.NoError(t, repo.Save(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "gopher2", got.Handle)
	assert.Equal(t, "Lead", got.Status)
}
