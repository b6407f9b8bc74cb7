package handlers

import (
	"time"

	"github.com/andrewwoood/habitspark/internal/analytics"
	"github.com/andrewwoood/habitspark/internal/middleware"
	"github.com/andrewwoood/habitspark/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) GetHabits(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	habits, err := h.habits.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(habits)
}

func (h *Handler) GetHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	habit, err := h.habits.Get(userID, habitID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(habit)
}

func (h *Handler) CreateHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	habit, err := h.habits.Create(userID, req.Name, req.Frequency)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *Handler) UpdateHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	var req models.UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	habit, err := h.habits.Rename(userID, habitID, *req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(habit)
}

func (h *Handler) DeleteHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	if err := h.habits.Delete(userID, habitID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleCompletion flips one date in the habit's completed set and, through
// the completion listener, refreshes the day's stats for every group the
// user belongs to.
func (h *Handler) ToggleCompletion(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	var req models.ToggleCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	completed, err := h.habits.ToggleCompletion(userID, habitID, req.Date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"habitId":   habitID,
		"date":      req.Date,
		"completed": completed,
	})
}

func (h *Handler) GetHabitStreaks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	streaks, err := h.habits.Streaks(userID, habitID, time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(streaks)
}

func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	stats, err := h.habits.Statistics(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GetHeatmap renders the user's completion heatmap. The timeframe query
// parameter (1m, 3m, 6m) picks the caption window only.
func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	stats, err := h.habits.Statistics(userID)
	if err != nil {
		return fail(c, err)
	}
	tf := analytics.Timeframe(c.Query("timeframe", string(analytics.TimeframeQuarter)))
	return c.JSON(analytics.Bucketize(stats.DailyCompletions, tf, time.Now()))
}
