package models

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Status(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewNotFoundError("noPostFound", "Post not found"), fiber.StatusNotFound},
		{NewQueryFailedError("noPostsFound", errors.New("boom")), fiber.StatusNotFound},
		{NewValidationError(map[string]string{"title": "x"}), fiber.StatusBadRequest},
		{NewAlreadyLikedError(), fiber.StatusBadRequest},
		{NewNotLikedError(), fiber.StatusBadRequest},
		{NewUnauthorizedError("User not authorized"), fiber.StatusUnauthorized},
		{NewCommentNotFoundError(), fiber.StatusUnauthorized},
		{NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
		})
	}
}

func TestAppError_Body(t *testing.T) {
	assert.Equal(t, fiber.Map{"alreadyLiked": "You haven't liked this post"}, NewNotLikedError().Body())
	assert.Equal(t, fiber.Map{"noComment": "Comment not found"}, NewCommentNotFoundError().Body())
	assert.Equal(t,
		fiber.Map{"title": "Title field is required", "text": "Text field is required"},
		NewValidationError(map[string]string{"title": "Title field is required", "text": "Text field is required"}).Body(),
	)
	assert.Equal(t, fiber.Map{"error": "oops"}, (&AppError{Code: CodeInternal, Message: "oops"}).Body())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("load: %w", NewInternalError(cause))

	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsCode(wrapped, CodeInternal))
	assert.False(t, IsCode(cause, CodeInternal))
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/app", func(c *fiber.Ctx) error { return RespondWithError(c, NewAlreadyLikedError()) })
	app.Get("/plain", func(c *fiber.Ctx) error { return RespondWithError(c, errors.New("secret detail")) })

	resp, err := app.Test(httptest.NewRequest("GET", "/app", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"alreadyLiked":"You have already liked this post"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(body))
}

func TestPost_Indexes(t *testing.T) {
	p := &Post{
		Likes:    []Like{{User: "a"}, {User: "b"}},
		Comments: []Comment{{ID: "c1"}, {ID: "c2"}},
	}
	assert.Equal(t, 1, p.LikeIndex("b"))
	assert.Equal(t, -1, p.LikeIndex("z"))
	assert.Equal(t, 0, p.CommentIndex("c1"))
	assert.Equal(t, -1, p.CommentIndex("nope"))
}

func TestPost_Clone(t *testing.T) {
	p := &Post{ID: "p", Likes: []Like{}, Comments: []Comment{{ID: "c1"}}}
	cp := p.Clone()

	cp.Comments[0].ID = "changed"
	cp.Likes = append(cp.Likes, Like{User: "x"})

	assert.Equal(t, "c1", p.Comments[0].ID)
	assert.NotNil(t, cp.Likes)
	assert.Empty(t, p.Likes)
	assert.NotNil(t, (&Post{Likes: []Like{}}).Clone().Likes)
	assert.Nil(t, (*Post)(nil).Clone())
}
