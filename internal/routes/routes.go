package routes

import (
	"github.com/andrewwoood/habitspark/internal/handlers"
	"github.com/andrewwoood/habitspark/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	protected := api.Group("/", middleware.Protected(jwtSecret))

	protected.Get("/me", h.GetMe)
	protected.Put("/me", h.UpdateProfile)
	protected.Get("/users/:id", h.GetUserProfile)
	protected.Post("/users/profiles", h.GetUserProfiles)

	habits := protected.Group("/habits")
	habits.Get("/", h.GetHabits)
	habits.Post("/", h.CreateHabit)
	habits.Get("/statistics", h.GetStatistics)
	habits.Get("/heatmap", h.GetHeatmap)
	habits.Get("/:id", h.GetHabit)
	habits.Put("/:id", h.UpdateHabit)
	habits.Delete("/:id", h.DeleteHabit)
	habits.Post("/:id/toggle", h.ToggleCompletion)
	habits.Get("/:id/streaks", h.GetHabitStreaks)

	groups := protected.Group("/groups")
	groups.Get("/", h.GetGroups)
	groups.Post("/", h.CreateGroup)
	groups.Post("/join", h.JoinGroup)
	groups.Delete("/:id", h.DeleteGroup)
	groups.Post("/:id/leave", h.LeaveGroup)
	groups.Get("/:id/members", h.GetGroupMembers)
	groups.Delete("/:id/members/:userId", h.KickMember)
	groups.Get("/:id/stats", h.GetGroupStats)
	groups.Get("/:id/activity", h.GetGroupActivity)

	// Group invites
	groups.Post("/:id/invites", h.CreateInvite)
	groups.Get("/:id/invites", h.GetInvites)
	groups.Delete("/:id/invites/:inviteId", h.RevokeInvite)
	groups.Post("/:id/invites/:code/join", h.JoinByInvite)

	// Join via a full shared invite link
	protected.Post("/invites/redeem", h.RedeemInviteLink)
}
