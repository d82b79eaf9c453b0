// Package repository implements the post and profile stores on a relational
// database through GORM. A post is one row; its likes and comments are kept as
// JSON columns so each save still replaces the whole document.
package repository

import (
	"context"
	"errors"
	"time"

	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRow struct {
	ID       string `gorm:"primaryKey"`
	Title    string `gorm:"not null"`
	Text     string `gorm:"not null"`
	Name     string
	Avatar   string
	UserID   string           `gorm:"not null;index"`
	Likes    []models.Like    `gorm:"serializer:json"`
	Comments []models.Comment `gorm:"serializer:json"`
	Date     time.Time        `gorm:"column:date;not null"`
}

func (postRow) TableName() string { return "posts" }

// sortColumns maps store sort keys to columns.
var sortColumns = map[string]string{
	store.SortByDate: "date",
}

// postRepository implements store.PostStore
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) store.PostStore {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.TrackQuery("sql", "get_by_id")()

	if _, err := uuid.Parse(id); err != nil {
		return nil, store.ErrNotFound
	}

	var row postRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (r *postRepository) ListAll(ctx context.Context, sortKey string, descending bool) ([]*models.Post, error) {
	defer observability.TrackQuery("sql", "list_all")()

	column, ok := sortColumns[sortKey]
	if !ok {
		column = sortColumns[store.SortByDate]
	}

	var rows []postRow
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: descending}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toModel())
	}
	return posts, nil
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("sql", "save")()

	row := fromModel(post)
	db := r.db.WithContext(ctx)

	if post.ID == "" {
		row.ID = uuid.NewString()
		if err := db.Create(row).Error; err != nil {
			return err
		}
	} else {
		if _, err := uuid.Parse(post.ID); err != nil {
			return store.ErrNotFound
		}
		res := db.Model(&postRow{}).
			Where("id = ?", row.ID).
			Select("title", "text", "name", "avatar", "user_id", "likes", "comments", "date").
			Updates(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
	}

	*post = *row.toModel()
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("sql", "delete")()

	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *postRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// fromModel copies p into a row, filling missing comment ids and dates.
func fromModel(p *models.Post) *postRow {
	row := &postRow{
		ID:       p.ID,
		Title:    p.Title,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		UserID:   p.User,
		Likes:    append([]models.Like{}, p.Likes...),
		Comments: make([]models.Comment, 0, len(p.Comments)),
		Date:     p.Date,
	}
	now := time.Now().UTC()
	if row.Date.IsZero() {
		row.Date = now
	}
	for _, c := range p.Comments {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Date.IsZero() {
			c.Date = now
		}
		row.Comments = append(row.Comments, c)
	}
	return row
}

func (r *postRow) toModel() *models.Post {
	p := &models.Post{
		ID:       r.ID,
		Title:    r.Title,
		Text:     r.Text,
		Name:     r.Name,
		Avatar:   r.Avatar,
		User:     r.UserID,
		Likes:    r.Likes,
		Comments: r.Comments,
		Date:     r.Date,
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return p
}
