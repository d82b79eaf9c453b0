package mongostore

import (
	"context"
	"errors"
	"time"

	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           string             `bson:"user"`
	Handle         string             `bson:"handle"`
	Company        string             `bson:"company,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Status         string             `bson:"status"`
	Skills         []string           `bson:"skills"`
	Bio            string             `bson:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty"`
	Social         models.Social      `bson:"social"`
	Date           time.Time          `bson:"date"`
}

// ProfileStore implements store.ProfileStore on a profiles collection.
type ProfileStore struct {
	coll *mongo.Collection
}

var _ store.ProfileStore = (*ProfileStore)(nil)

func NewProfileStore(db *mongo.Database) *ProfileStore {
	return &ProfileStore{coll: db.Collection(profilesCollection)}
}

func (s *ProfileStore) FindByUser(ctx context.Context, userID string) (*models.Profile, error) {
	defer observability.TrackQuery("mongo", "find_profile")()

	var doc profileDocument
	if err := s.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &models.Profile{
		ID:             doc.ID.Hex(),
		User:           doc.User,
		Handle:         doc.Handle,
		Company:        doc.Company,
		Website:        doc.Website,
		Location:       doc.Location,
		Status:         doc.Status,
		Skills:         doc.Skills,
		Bio:            doc.Bio,
		GithubUsername: doc.GithubUsername,
		Social:         doc.Social,
		Date:           doc.Date,
	}, nil
}

// Save upserts the profile keyed by its user.
func (s *ProfileStore) Save(ctx context.Context, profile *models.Profile) error {
	if profile.Date.IsZero() {
		profile.Date = time.Now().UTC()
	}
	doc := profileDocument{
		User:           profile.User,
		Handle:         profile.Handle,
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Status:         profile.Status,
		Skills:         profile.Skills,
		Bio:            profile.Bio,
		GithubUsername: profile.GithubUsername,
		Social:         profile.Social,
		Date:           profile.Date,
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"user": profile.User}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}
	return nil
}
