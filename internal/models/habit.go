package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name      string         `json:"name" gorm:"not null"`
	Frequency string         `json:"frequency" gorm:"not null;default:'daily'"` // daily, weekly
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Completions []HabitCompletion `json:"completions,omitempty" gorm:"foreignKey:HabitID"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// CompletedDates returns the habit's completion dates as a plain slice of
// YYYY-MM-DD strings. Membership, not order, is what matters.
func (h *Habit) CompletedDates() []string {
	dates := make([]string, 0, len(h.Completions))
	for _, c := range h.Completions {
		dates = append(dates, c.Date)
	}
	return dates
}

// HabitCompletion marks one habit as done on one calendar date. The unique
// index gives completedDates set semantics: a date is either present or not.
type HabitCompletion struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	HabitID   uuid.UUID `json:"habitId" gorm:"type:uuid;not null;uniqueIndex:idx_habit_date"`
	Date      string    `json:"date" gorm:"not null;uniqueIndex:idx_habit_date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}

func (hc *HabitCompletion) BeforeCreate(tx *gorm.DB) error {
	if hc.ID == uuid.Nil {
		hc.ID = uuid.New()
	}
	return nil
}

// Habit DTOs
type CreateHabitRequest struct {
	Name      string `json:"name" validate:"required"`
	Frequency string `json:"frequency"`
}

type UpdateHabitRequest struct {
	Name *string `json:"name"`
}

type ToggleCompletionRequest struct {
	Date string `json:"date" validate:"required"` // YYYY-MM-DD
}

type HabitWithDates struct {
	Habit
	CompletedDates []string `json:"completedDates"`
}

type StreakResponse struct {
	HabitID       uuid.UUID `json:"habitId"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
}
