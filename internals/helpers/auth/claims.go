package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolhub_backend/internals/constants"
)

var (
	ErrNoUserID = errors.New("missing or invalid user id in token")
	ErrNoRole   = errors.New("missing or invalid role in token")
)

// UserIDFromToken reads the caller's id stored by the auth middleware.
func UserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

// RoleFromToken reads the caller's role stored by the auth middleware.
func RoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("user_role").(string)
	if !ok || !constants.ValidRole(role) {
		return "", ErrNoRole
	}
	return role, nil
}

// Caller resolves the (userID, role) pair in one call.
func Caller(c *fiber.Ctx) (uuid.UUID, string, error) {
	id, err := UserIDFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := RoleFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, role, nil
}
