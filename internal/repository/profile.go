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

type profileRow struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"not null;uniqueIndex"`
	Handle         string `gorm:"not null"`
	Company        string
	Website        string
	Location       string
	Status         string   `gorm:"not null"`
	Skills         []string `gorm:"serializer:json"`
	Bio            string
	GithubUsername string
	Social         models.Social `gorm:"serializer:json"`
	Date           time.Time     `gorm:"column:date;not null"`
}

func (profileRow) TableName() string { return "profiles" }

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) store.ProfileStore {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUser(ctx context.Context, userID string) (*models.Profile, error) {
	defer observability.TrackQuery("sql", "find_profile")()

	var row profileRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &models.Profile{
		ID:             row.ID,
		User:           row.UserID,
		Handle:         row.Handle,
		Company:        row.Company,
		Website:        row.Website,
		Location:       row.Location,
		Status:         row.Status,
		Skills:         row.Skills,
		Bio:            row.Bio,
		GithubUsername: row.GithubUsername,
		Social:         row.Social,
		Date:           row.Date,
	}, nil
}

// Save upserts the profile keyed by its user.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Date.IsZero() {
		profile.Date = time.Now().UTC()
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	row := profileRow{
		ID:             profile.ID,
		UserID:         profile.User,
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
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"handle", "company", "website", "location", "status", "skills", "bio", "github_username", "social", "date"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	// An existing profile keeps its original id.
	var stored profileRow
	if err := db.Select("id").Where("user_id = ?", profile.User).First(&stored).Error; err != nil {
		return err
	}
	profile.ID = stored.ID
	return nil
}
