package api

import (
	"errors"
	"log"

	"github.com/example/movie-catalog/domain/account"
	domain "github.com/example/movie-catalog/domain/movie"
	"github.com/example/movie-catalog/modules/auth"
	"github.com/example/movie-catalog/modules/movie"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authPort  auth.AuthPort
	moviePort movie.MoviePort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, moviePort movie.MoviePort) *Handlers {
	return &Handlers{
		authPort:  authPort,
		moviePort: moviePort,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.authPort.Register(c.UserContext(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.authPort.Login(c.UserContext(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		TokenResponse: TokenResponse{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			ExpiresIn:    resp.ExpiresIn,
			TokenType:    resp.TokenType,
		},
		User: resp.User,
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token := req.RefreshToken
	if token == "" {
		token = req.Token
	}
	if token == "" {
		return badRequest(c, "Refresh token is required")
	}

	resp, err := h.authPort.Refresh(c.UserContext(), token)
	if err != nil {
		if !errors.Is(err, auth.ErrUnauthorized) {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Profile returns the current user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	user, err := h.authPort.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// ListUsers returns all accounts, optionally filtered by ?role=.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	role := account.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		return badRequest(c, "Unknown role")
	}

	users, err := h.authPort.ListUsers(c.UserContext(), role)
	if err != nil {
		return writeError(c, err)
	}
	if users == nil {
		users = []account.Profile{}
	}

	return c.JSON(UsersResponse{Users: users, Count: len(users)})
}

// GetUser returns an account by ID. Admin only.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	user, err := h.authPort.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// UpdateUser applies a partial update to an account. Admin only.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authPort.UpdateUser(c.UserContext(), c.Params("id"), auth.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}

	if claims, ok := ClaimsFromContext(c); ok {
		log.Printf("[api] User %s updated by %s", user.ID, claims.UserID)
	}
	return c.JSON(UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// DeleteUser removes an account. Admin only.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authPort.DeleteUser(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	if claims, ok := ClaimsFromContext(c); ok {
		log.Printf("[api] User %s deleted by %s", id, claims.UserID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovies returns the catalog.
func (h *Handlers) ListMovies(c *fiber.Ctx) error {
	movies, err := h.moviePort.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}

	return c.JSON(MoviesResponse{Movies: movies, Count: len(movies)})
}

// GetMovie returns a single movie.
func (h *Handlers) GetMovie(c *fiber.Ctx) error {
	m, err := h.moviePort.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// CreateMovie adds a movie to the catalog.
func (h *Handlers) CreateMovie(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Title == nil || req.Image == nil || req.PublishingYear == nil {
		return badRequest(c, "Title, image and publishing_year are required")
	}

	m, err := h.moviePort.Create(c.UserContext(), movie.CreateMovieRequest{
		Title:          *req.Title,
		Image:          *req.Image,
		PublishingYear: *req.PublishingYear,
	})
	if err != nil {
		return writeError(c, err)
	}

	if claims, ok := ClaimsFromContext(c); ok {
		log.Printf("[api] Movie %s created by %s", m.ID, claims.UserID)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// UpdateMovie applies a partial update to a movie.
func (h *Handlers) UpdateMovie(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	m, err := h.moviePort.Update(c.UserContext(), movie.UpdateMovieRequest{
		ID:             c.Params("id"),
		Title:          req.Title,
		Image:          req.Image,
		PublishingYear: req.PublishingYear,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// DeleteMovie removes a movie. Admin only.
func (h *Handlers) DeleteMovie(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.moviePort.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	if claims, ok := ClaimsFromContext(c); ok {
		log.Printf("[api] Movie %s deleted by %s", id, claims.UserID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// writeError maps domain errors to HTTP responses without exposing internals.
func writeError(c *fiber.Ctx, err error) error {
	status, code, message := fiber.StatusInternalServerError, "internal_error", "An internal error occurred"

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, code, message = fiber.StatusUnauthorized, "unauthorized", "Invalid email or password"
	case errors.Is(err, auth.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, "unauthorized", "Invalid or expired token"
	case errors.Is(err, auth.ErrForbidden):
		status, code, message = fiber.StatusForbidden, "forbidden", "You do not have permission to access this resource"
	case errors.Is(err, auth.ErrUserExists):
		status, code, message = fiber.StatusConflict, "conflict", "User with this email already exists"
	case errors.Is(err, auth.ErrUserNotFound):
		status, code, message = fiber.StatusNotFound, "not_found", "User not found"
	case errors.Is(err, auth.ErrInvalidEmail):
		status, code, message = fiber.StatusBadRequest, "bad_request", "Invalid email format"
	case errors.Is(err, auth.ErrWeakPassword):
		status, code, message = fiber.StatusBadRequest, "bad_request", "Password must be at least 8 characters"
	case errors.Is(err, auth.ErrPasswordTooLong):
		status, code, message = fiber.StatusBadRequest, "bad_request", "Password must be at most 72 characters"
	case errors.Is(err, auth.ErrInvalidRole):
		status, code, message = fiber.StatusBadRequest, "bad_request", "Unknown role"
	case errors.Is(err, movie.ErrMovieNotFound):
		status, code, message = fiber.StatusNotFound, "not_found", "Movie not found"
	case errors.Is(err, movie.ErrMovieExists):
		status, code, message = fiber.StatusConflict, "conflict", "A movie with this title already exists"
	case errors.Is(err, movie.ErrInvalidMovie):
		status, code, message = fiber.StatusBadRequest, "bad_request", "Title, image and a four-digit publishing year are required"
	default:
		log.Printf("[api] Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
