package api

import (
	"errors"
	"log"
	"strings"

	"github.com/example/movie-catalog/domain/account"
	"github.com/example/movie-catalog/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
	// AccountContextKey holds the freshly loaded account on role-gated routes.
	AccountContextKey = "account"
)

// RequireAuth creates a middleware that admits requests carrying a valid
// access token. When roles are given, the subject's account is loaded and
// its current role must be one of them.
func RequireAuth(authPort auth.AuthPort, roles ...account.Role) fiber.Handler {
	policy := account.AccessPolicy(roles)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			log.Printf("[api] Token rejected for %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)

		if !policy.RequiresRole() {
			return c.Next()
		}

		// Roles are not carried in the token, so they are read fresh.
		acc, err := authPort.GetUser(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid or expired token",
				})
			}
			log.Printf("[api] Role lookup failed for %s: %v", claims.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error:   "internal_error",
				Message: "An internal error occurred",
			})
		}

		if !policy.Allows(acc.Role) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "You do not have permission to access this resource",
			})
		}

		c.Locals(AccountContextKey, acc)
		return c.Next()
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(c *fiber.Ctx) (*account.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*account.Claims)
	return claims, ok && claims != nil
}
