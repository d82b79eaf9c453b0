package mongostore

import (
	"context"
	"testing"

	"postboard/internal/models"
	"postboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProfileStore_FindByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".profiles"
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "user", Value: "u1"},
			{Key: "handle", Value: "gopher"},
			{Key: "status", Value: "Developer"},
			{Key: "skills", Value: bson.A{"go", "mongo"}},
			{Key: "social", Value: bson.D{{Key: "twitter", Value: "twitter.com/gopher"}}},
		}))

		profile, err := NewProfileStore(mt.DB).FindByUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, oid.Hex(), profile.ID)
		assert.Equal(t, "gopher", profile.Handle)
		assert.Equal(t, []string{"go", "mongo"}, profile.Skills)
		assert.Equal(t, "twitter.com/gopher", profile.Social.Twitter)
	})

	mt.Run("missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".profiles"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewProfileStore(mt.DB).FindByUser(context.Background(), "nobody")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestProfileStore_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: oid}}}},
		))

		profile := &models.Profile{User: "u1", Handle: "gopher", Status: "Developer", Skills: []string{"go"}}
		require.NoError(t, NewProfileStore(mt.DB).Save(context.Background(), profile))
		assert.Equal(t, oid.Hex(), profile.ID)
		assert.False(t, profile.Date.IsZero())
	})
}
