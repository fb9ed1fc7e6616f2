package server

import (
	"errors"

	"inkstream/internal/models"
	"inkstream/internal/repository"
	"inkstream/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// minGenreSelection is the smallest genre set a reader may subscribe to.
// Fewer than three genres produces a feed too thin to be useful.
const minGenreSelection = 3

// GetGenres handles GET /api/genres. Returns the full catalog ordered by name.
func (s *Server) GetGenres(c *fiber.Ctx) error {
	genres, err := s.genreRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"genres": genres,
	})
}

// AddGenre handles POST /api/genres. The creating user is automatically
// subscribed to the new genre.
func (s *Server) AddGenre(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateGenreName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.genreRepo.GetByName(c.Context(), req.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Genre already exists"))
	}

	genre := &models.Genre{Name: req.Name}
	if err := s.genreRepo.Create(c.Context(), genre); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.genreRepo.AddUserGenre(c.Context(), userID, genre.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"genre": genre,
	})
}

// GetMyGenres handles GET /api/genres/me.
func (s *Server) GetMyGenres(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	genres, err := s.genreRepo.UserGenres(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"genres": genres,
	})
}

// SetMyGenres handles PUT /api/genres/me. The submitted set replaces any
// previous selection in full.
func (s *Server) SetMyGenres(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		GenreIDs []uint `json:"genre_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if len(req.GenreIDs) < minGenreSelection {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least 3 genres must be selected"))
	}

	if err := s.genreRepo.SetUserGenres(c.Context(), userID, req.GenreIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownGenre) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("One or more genres do not exist"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	genres, err := s.genreRepo.UserGenres(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"genres": genres,
	})
}

// GenreStatus handles GET /api/genres/status. Clients use this to decide
// whether to show the genre onboarding screen.
func (s *Server) GenreStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("user", ""))
	}

	return c.JSON(fiber.Map{
		"has_selected_genres": user.HasSelectedGenres,
	})
}
