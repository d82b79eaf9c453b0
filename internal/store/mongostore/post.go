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
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type postDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Text     string             `bson:"text"`
	Name     string             `bson:"name,omitempty"`
	Avatar   string             `bson:"avatar,omitempty"`
	User     string             `bson:"user"`
	Likes    []likeDocument     `bson:"likes"`
	Comments []commentDocument  `bson:"comments"`
	Date     time.Time          `bson:"date"`
}

type likeDocument struct {
	User string `bson:"user"`
}

type commentDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Text   string             `bson:"text"`
	Name   string             `bson:"name,omitempty"`
	Avatar string             `bson:"avatar,omitempty"`
	User   string             `bson:"user"`
	Date   time.Time          `bson:"date"`
}

// PostStore implements store.PostStore on a posts collection.
type PostStore struct {
	coll *mongo.Collection
}

var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates a post store backed by db's posts collection.
func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{coll: db.Collection(postsCollection)}
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.TrackQuery("mongo", "get_by_id")()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc postDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *PostStore) ListAll(ctx context.Context, sortKey string, descending bool) ([]*models.Post, error) {
	defer observability.TrackQuery("mongo", "list_all")()

	direction := 1
	if descending {
		direction = -1
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortKey, Value: direction}}))
	if err != nil {
		return nil, err
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}

func (s *PostStore) Save(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("mongo", "save")()

	doc, err := fromModel(post)
	if err != nil {
		return err
	}

	if post.ID == "" {
		doc.ID = primitive.NewObjectID()
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			return err
		}
	} else {
		res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return store.ErrNotFound
		}
	}

	saved := doc.toModel()
	*post = *saved
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("mongo", "delete")()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PostStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// fromModel assigns ids and dates that are still missing.
func fromModel(p *models.Post) (*postDocument, error) {
	doc := &postDocument{
		Title:    p.Title,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		User:     p.User,
		Likes:    make([]likeDocument, 0, len(p.Likes)),
		Comments: make([]commentDocument, 0, len(p.Comments)),
		Date:     p.Date,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, store.ErrNotFound
		}
		doc.ID = oid
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now().UTC()
	}

	for _, l := range p.Likes {
		doc.Likes = append(doc.Likes, likeDocument{User: l.User})
	}
	for _, c := range p.Comments {
		cd := commentDocument{
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			User:   c.User,
			Date:   c.Date,
		}
		if c.ID == "" {
			cd.ID = primitive.NewObjectID()
		} else if oid, err := primitive.ObjectIDFromHex(c.ID); err == nil {
			cd.ID = oid
		} else {
			return nil, err
		}
		if cd.Date.IsZero() {
			cd.Date = time.Now().UTC()
		}
		doc.Comments = append(doc.Comments, cd)
	}
	return doc, nil
}

func (d *postDocument) toModel() *models.Post {
	p := &models.Post{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Text:     d.Text,
		Name:     d.Name,
		Avatar:   d.Avatar,
		User:     d.User,
		Likes:    make([]models.Like, 0, len(d.Likes)),
		Comments: make([]models.Comment, 0, len(d.Comments)),
		Date:     d.Date,
	}
	for _, l := range d.Likes {
		p.Likes = append(p.Likes, models.Like{User: l.User})
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, models.Comment{
			ID:     c.ID.Hex(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			User:   c.User,
			Date:   c.Date,
		})
	}
	return p
}
