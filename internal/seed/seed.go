// Package seed fills a post store with demo profiles, posts, likes and
// comments. It is intended for development only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/service"
	"postboard/internal/store"
	"postboard/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls how much data a Seeder creates.
type Options struct {
	Users       int
	Posts       int
	MaxLikes    int
	MaxComments int
	Seed        int64
}

// DefaultOptions is what cmd/seed uses when no flags are given.
func DefaultOptions() Options {
	return Options{Users: 20, Posts: 60, MaxLikes: 10, MaxComments: 5}
}

// Result summarizes a seeding run.
type Result struct {
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

// Seeder writes generated content through the post service so every seeded
// post obeys the same rules as one created over HTTP.
type Seeder struct {
	profiles store.ProfileStore
	posts    *service.PostService
	faker    *gofakeit.Faker
	opts     Options
}

// NewSeeder creates a Seeder. A zero Seed picks a random one.
func NewSeeder(posts store.PostStore, profiles store.ProfileStore, opts Options) *Seeder {
	return &Seeder{
		profiles: profiles,
		posts:    service.NewPostService(posts, profiles),
		faker:    gofakeit.New(opts.Seed),
		opts:     opts,
	}
}

// Run creates profiles first, then posts authored by them, then reactions.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	users, err := s.seedProfiles(ctx)
	if err != nil {
		return res, err
	}
	res.Profiles = len(users)
	if len(users) == 0 {
		return res, nil
	}

	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		post, err := s.posts.CreatePost(ctx, author.User, s.postInput(author))
		if err != nil {
			return res, fmt.Errorf("create post %d: %w", i, err)
		}
		res.Posts++

		likes, err := s.seedLikes(ctx, post.ID, users)
		if err != nil {
			return res, err
		}
		res.Likes += likes

		comments, err := s.seedComments(ctx, post.ID, users)
		if err != nil {
			return res, err
		}
		res.Comments += comments
	}

	middleware.Logger.InfoContext(ctx, "seeding complete",
		slog.Int("profiles", res.Profiles),
		slog.Int("posts", res.Posts),
		slog.Int("likes", res.Likes),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}

func (s *Seeder) seedProfiles(ctx context.Context) ([]*models.Profile, error) {
	users := make([]*models.Profile, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		skills := []string{s.faker.ProgrammingLanguage(), s.faker.ProgrammingLanguage(), s.faker.HackerNoun()}
		profile := &models.Profile{
			User:     s.faker.UUID(),
			Handle:   fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), i),
			Company:  s.faker.Company(),
			Website:  s.faker.URL(),
			Location: s.faker.City(),
			Status:   s.faker.JobTitle(),
			Skills:   skills,
			Bio:      s.faker.HipsterSentence(12),
		}
		profile.Social.Twitter = "https://twitter.com/" + profile.Handle

		res := validation.ValidateProfile(validation.ProfilePayload{
			Handle:  profile.Handle,
			Status:  profile.Status,
			Skills:  strings.Join(skills, ","),
			Website: profile.Website,
			Twitter: profile.Social.Twitter,
		})
		if !res.IsValid {
			middleware.Logger.WarnContext(ctx, "skipping generated profile",
				slog.String("handle", profile.Handle),
				slog.Any("errors", res.Errors),
			)
			continue
		}

		if err := s.profiles.Save(ctx, profile); err != nil {
			return nil, fmt.Errorf("save profile %s: %w", profile.Handle, err)
		}
		users = append(users, profile)
	}
	return users, nil
}

func (s *Seeder) postInput(author *models.Profile) service.PostInput {
	title := s.faker.Sentence(s.faker.Number(4, 9))
	for len(title) < 10 {
		title += " " + s.faker.Word()
	}
	return service.PostInput{
		Title:  title,
		Text:   s.faker.Paragraph(1, 3, 12, "\n"),
		Name:   author.Handle,
		Avatar: fmt.Sprintf("https://picsum.photos/seed/%s/96/96", author.User),
	}
}

func (s *Seeder) seedLikes(ctx context.Context, postID string, users []*models.Profile) (int, error) {
	n := s.faker.Number(0, min(s.opts.MaxLikes, len(users)))
	picked := s.pick(users, n)
	for _, u := range picked {
		if _, err := s.posts.LikePost(ctx, u.User, postID); err != nil {
			return 0, fmt.Errorf("like post %s: %w", postID, err)
		}
	}
	return len(picked), nil
}

func (s *Seeder) seedComments(ctx context.Context, postID string, users []*models.Profile) (int, error) {
	n := s.faker.Number(0, s.opts.MaxComments)
	for i := 0; i < n; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		in := s.postInput(author)
		in.Text = s.faker.Sentence(s.faker.Number(3, 15))
		if _, err := s.posts.AddComment(ctx, author.User, postID, in); err != nil {
			return i, fmt.Errorf("comment on post %s: %w", postID, err)
		}
	}
	return n, nil
}

// pick returns n distinct users.
func (s *Seeder) pick(users []*models.Profile, n int) []*models.Profile {
	shuffled := make([]*models.Profile, len(users))
	copy(shuffled, users)
	s.faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}
