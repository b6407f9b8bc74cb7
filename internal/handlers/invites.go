package handlers

import (
	"github.com/andrewwoood/habitspark/internal/groups"
	"github.com/andrewwoood/habitspark/internal/middleware"
	"github.com/andrewwoood/habitspark/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateInvite issues an invite for a group (creator only).
func (h *Handler) CreateInvite(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var req models.CreateInviteRequest
	c.BodyParser(&req) // optional body

	invite, err := h.groups.CreateInvite(userID, groupID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invite)
}

func (h *Handler) GetInvites(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	invites, err := h.groups.ListInvites(userID, groupID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invites)
}

func (h *Handler) RevokeInvite(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}
	inviteID, err := uuid.Parse(c.Params("inviteId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invite ID",
		})
	}

	if err := h.groups.RevokeInvite(userID, groupID, inviteID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// JoinByInvite redeems an invite code against its group.
func (h *Handler) JoinByInvite(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	group, err := h.groups.JoinByInvite(userID, groupID, c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

// RedeemInviteLink accepts a full shared invite URL and joins via its
// embedded group id and code.
func (h *Handler) RedeemInviteLink(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req struct {
		Link string `json:"link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	groupID, code, err := groups.ParseInviteLink(req.Link)
	if err != nil {
		return fail(c, err)
	}

	group, err := h.groups.JoinByInvite(userID, groupID, code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}
