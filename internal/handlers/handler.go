package handlers

import (
	"errors"

	"github.com/andrewwoood/habitspark/internal/apperr"
	"github.com/andrewwoood/habitspark/internal/groups"
	"github.com/andrewwoood/habitspark/internal/habits"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler carries the explicitly constructed services; no package globals.
type Handler struct {
	db        *gorm.DB
	jwtSecret string
	habits    *habits.Store
	groups    *groups.Manager
}

func New(db *gorm.DB, jwtSecret string, habitStore *habits.Store, groupManager *groups.Manager) *Handler {
	return &Handler{db: db, jwtSecret: jwtSecret, habits: habitStore, groups: groupManager}
}

// fail translates the error taxonomy into HTTP statuses. The kind stays
// inspectable for clients via the status; the message carries the detail.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyMember), errors.Is(err, apperr.ErrDuplicateCode):
		status = fiber.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrCreatorCannotLeave):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrValidation):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
