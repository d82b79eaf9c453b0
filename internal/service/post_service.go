// Package service holds the post business rules on top of the stores.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/store"
	"postboard/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const postNotFoundMessage = "Post not found"

// Response keys for a missing post.
const (
	keyNoPostFound  = "noPostFound"
	keyNoPostsFound = "noPostsFound"
	keyPostNotFound = "postNotFound"
)

// PostInput is the body of a create-post or add-comment request. Title is
// validated for comments too but is not stored on them.
type PostInput struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type PostService struct {
	posts    store.PostStore
	profiles store.ProfileStore
	now      func() time.Time
}

func NewPostService(posts store.PostStore, profiles store.ProfileStore) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) GetPost(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, end := s.begin(ctx, "get", attribute.String("post.id", id))
	defer func() { end(err) }()

	return s.load(ctx, id, keyNoPostFound)
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) (posts []*models.Post, err error) {
	ctx, end := s.begin(ctx, "list")
	defer func() { end(err) }()

	posts, err = s.posts.ListAll(ctx, store.SortByDate, true)
	if err != nil {
		return nil, models.NewQueryFailedError(keyNoPostsFound, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, userID string, in PostInput) (post *models.Post, err error) {
	ctx, end := s.begin(ctx, "create", attribute.String("user.id", userID))
	defer func() { end(err) }()

	if res := validation.ValidatePost(validation.PostPayload{Title: in.Title, Text: in.Text}); !res.IsValid {
		return nil, models.NewValidationError(res.Errors)
	}

	post = &models.Post{
		Title:    in.Title,
		Text:     in.Text,
		Name:     in.Name,
		Avatar:   in.Avatar,
		User:     userID,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     s.now(),
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes a post. Only its owner may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) (err error) {
	ctx, end := s.begin(ctx, "delete", attribute.String("post.id", postID))
	defer func() { end(err) }()

	if err := s.lookupProfile(ctx, userID); err != nil {
		return err
	}

	post, err := s.load(ctx, postID, keyNoPostFound)
	if err != nil {
		return err
	}
	if post.User != userID {
		return models.NewUnauthorizedError("User not authorized")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewNotFoundError(keyNoPostFound, postNotFoundMessage)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PostService) LikePost(ctx context.Context, userID, postID string) (post *models.Post, err error) {
	ctx, end := s.begin(ctx, "like", attribute.String("post.id", postID))
	defer func() { end(err) }()

	if err := s.lookupProfile(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, keyNoPostFound, func(p *models.Post) error {
		if p.LikeIndex(userID) >= 0 {
			return models.NewAlreadyLikedError()
		}
		p.Likes = append([]models.Like{{User: userID}}, p.Likes...)
		return nil
	})
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) (post *models.Post, err error) {
	ctx, end := s.begin(ctx, "unlike", attribute.String("post.id", postID))
	defer func() { end(err) }()

	if err := s.lookupProfile(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, keyNoPostFound, func(p *models.Post) error {
		i := p.LikeIndex(userID)
		if i < 0 {
			return models.NewNotLikedError()
		}
		p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
		return nil
	})
}

// AddComment prepends a comment authored by userID.
func (s *PostService) AddComment(ctx context.Context, userID, postID string, in PostInput) (post *models.Post, err error) {
	ctx, end := s.begin(ctx, "comment", attribute.String("post.id", postID))
	defer func() { end(err) }()

	if res := validation.ValidatePost(validation.PostPayload{Title: in.Title, Text: in.Text}); !res.IsValid {
		return nil, models.NewValidationError(res.Errors)
	}

	return s.mutate(ctx, postID, keyPostNotFound, func(p *models.Post) error {
		comment := models.Comment{
			Text:   in.Text,
			Name:   in.Name,
			Avatar: in.Avatar,
			User:   userID,
			Date:   s.now(),
		}
		p.Comments = append([]models.Comment{comment}, p.Comments...)
		return nil
	})
}

func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string) (err error) {
	ctx, end := s.begin(ctx, "uncomment", attribute.String("post.id", postID), attribute.String("comment.id", commentID))
	defer func() { end(err) }()

	_, err = s.mutate(ctx, postID, keyNoPostFound, func(p *models.Post) error {
		i := p.CommentIndex(commentID)
		if i < 0 {
			return models.NewCommentNotFoundError()
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	})
	return err
}

// mutate loads a post, applies fn and saves the result. fn errors abort
// without writing.
func (s *PostService) mutate(ctx context.Context, postID, notFoundKey string, fn func(*models.Post) error) (*models.Post, error) {
	post, err := s.load(ctx, postID, notFoundKey)
	if err != nil {
		return nil, err
	}
	if err := fn(post); err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.NewNotFoundError(notFoundKey, postNotFoundMessage)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) load(ctx context.Context, postID, notFoundKey string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.NewNotFoundError(notFoundKey, postNotFoundMessage)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// lookupProfile reads the caller's profile. The profile itself is not needed;
// only store failures matter.
func (s *PostService) lookupProfile(ctx context.Context, userID string) error {
	if s.profiles == nil {
		return nil
	}
	if _, err := s.profiles.FindByUser(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return models.NewInternalError(err)
	}
	return nil
}

// begin opens a span for operation and returns a func that closes it and
// records the outcome.
func (s *PostService) begin(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, endSpan := observability.StartOperation(ctx, operation, attrs...)
	return ctx, func(err error) {
		endSpan(err)
		observability.RecordOperation(operation, err)
		if models.IsCode(err, models.CodeInternal) {
			middleware.Logger.ErrorContext(ctx, "post operation failed",
				slog.String("operation", operation),
				slog.String("error", err.Error()),
			)
		}
	}
}
