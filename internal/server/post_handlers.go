package server

import (
	"errors"

	"inkstream/internal/models"
	"inkstream/internal/poststore"
	"inkstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondPostError maps service and store failures to HTTP responses. Storage
// I/O problems are deliberately opaque to the client.
func respondPostError(c *fiber.Ctx, id string, err error) error {
	if errors.Is(err, poststore.ErrNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("post", id))
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "CONFLICT":
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		}
	}

	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewStorageError(err))
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		PostText string `json:"post_text"`
		GenreID  uint   `json:"genre_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Text:     req.PostText,
		GenreID:  req.GenreID,
	})
	if err != nil {
		return respondPostError(c, "", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post": post,
	})
}

// GetFeed handles GET /api/posts. The result is scoped to the caller's genre
// selection and sorted newest-first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	feed, err := s.feedService.BuildFeed(c.Context(), userID)
	if err != nil {
		return respondPostError(c, "", err)
	}

	return c.JSON(fiber.Map{
		"posts": feed,
	})
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id := c.Params("id")

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondPostError(c, id, err)
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// VotePost handles POST /api/posts/:id/vote.
func (s *Server) VotePost(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		VoteType string `json:"vote_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.VotePost(c.Context(), id, req.VoteType)
	if err != nil {
		return respondPostError(c, id, err)
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// SharePost handles POST /api/posts/:id/share.
func (s *Server) SharePost(c *fiber.Ctx) error {
	id := c.Params("id")

	post, err := s.postService.SharePost(c.Context(), id)
	if err != nil {
		return respondPostError(c, id, err)
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}
