package server

import (
	"time"

	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.respondError(c, "list", err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, "get", err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	in, err := parseBody[service.PostInput](c)
	if err != nil {
		return s.respondError(c, "create", err)
	}

	post, err := s.postService.CreatePost(ctx, middleware.UserID(c), in)
	if err != nil {
		return s.respondError(c, "create", err)
	}

	s.publishEvent(ctx, notifications.EventPostCreated, post.ID, map[string]interface{}{
		"post_id":    post.ID,
		"author_id":  post.User,
		"created_at": post.Date.UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	if err := s.postService.DeletePost(ctx, middleware.UserID(c), postID); err != nil {
		return s.respondError(c, "delete", err)
	}

	s.publishEvent(ctx, notifications.EventPostDeleted, postID, map[string]interface{}{
		"post_id": postID,
	})

	return c.JSON(fiber.Map{"success": true})
}

// LikePost handles POST /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := middleware.UserID(c)

	post, err := s.postService.LikePost(ctx, userID, c.Params("id"))
	if err != nil {
		return s.respondError(c, "like", err)
	}

	s.publishReaction(c, post.ID, userID, "liked", len(post.Likes))
	return c.JSON(post)
}

// UnlikePost handles POST /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := middleware.UserID(c)

	post, err := s.postService.UnlikePost(ctx, userID, c.Params("id"))
	if err != nil {
		return s.respondError(c, "unlike", err)
	}

	s.publishReaction(c, post.ID, userID, "unliked", len(post.Likes))
	return c.JSON(post)
}

func (s *Server) publishReaction(c *fiber.Ctx, postID, userID, action string, likes int) {
	s.publishEvent(c.UserContext(), notifications.EventPostReactionUpdated, postID, map[string]interface{}{
		"post_id":     postID,
		"user_id":     userID,
		"action":      action,
		"likes_count": likes,
	})
}

// CreateComment handles POST /api/posts/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	in, err := parseBody[service.PostInput](c)
	if err != nil {
		return s.respondError(c, "comment", err)
	}

	post, err := s.postService.AddComment(ctx, middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return s.respondError(c, "comment", err)
	}

	payload := map[string]interface{}{"post_id": post.ID}
	if len(post.Comments) > 0 {
		payload["comment_id"] = post.Comments[0].ID
		payload["author_id"] = post.Comments[0].User
	}
	s.publishEvent(ctx, notifications.EventCommentCreated, post.ID, payload)

	return c.JSON(post)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:com_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")
	commentID := c.Params("com_id")

	if err := s.postService.DeleteComment(ctx, postID, commentID); err != nil {
		return s.respondError(c, "uncomment", err)
	}

	s.publishEvent(ctx, notifications.EventCommentDeleted, postID, map[string]interface{}{
		"post_id":    postID,
		"comment_id": commentID,
	})

	return c.JSON(fiber.Map{"success": true})
}
