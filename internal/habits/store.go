// Package habits owns the authoritative habit state: CRUD plus the
// completion toggle. Mutations are confirmed against the database before
// anything is reflected back to the caller, and a successful toggle is
// published to the completion listener so group statistics stay consistent.
package habits

import (
	"errors"
	"log/slog"
	"time"

	"github.com/andrewwoood/habitspark/internal/analytics"
	"github.com/andrewwoood/habitspark/internal/apperr"
	"github.com/andrewwoood/habitspark/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionListener receives the (user, date) of every confirmed completion
// toggle. It decouples the habit store from the group manager: the store
// publishes, the manager recomputes.
type CompletionListener interface {
	HabitCompletionChanged(userID uuid.UUID, date string) error
}

type Store struct {
	db       *gorm.DB
	listener CompletionListener
}

// NewStore builds a habit store over db. listener may be nil when no group
// statistics need recomputing (tests, single-user tooling).
func NewStore(db *gorm.DB, listener CompletionListener) *Store {
	return &Store{db: db, listener: listener}
}

func (s *Store) List(userID uuid.UUID) ([]models.HabitWithDates, error) {
	var habits []models.Habit
	if err := s.db.Where("user_id = ?", userID).
		Preload("Completions").
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	out := make([]models.HabitWithDates, len(habits))
	for i, h := range habits {
		out[i] = models.HabitWithDates{Habit: h, CompletedDates: h.CompletedDates()}
	}
	return out, nil
}

func (s *Store) Get(userID, habitID uuid.UUID) (*models.HabitWithDates, error) {
	habit, err := s.owned(s.db, userID, habitID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("habit_id = ?", habitID).Find(&habit.Completions).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &models.HabitWithDates{Habit: *habit, CompletedDates: habit.CompletedDates()}, nil
}

func (s *Store) Create(userID uuid.UUID, name, frequency string) (*models.Habit, error) {
	if name == "" {
		return nil, apperr.Validation("habit name is required")
	}
	if frequency == "" {
		frequency = "daily"
	}
	if frequency != "daily" && frequency != "weekly" {
		return nil, apperr.Validation("frequency must be daily or weekly")
	}

	habit := models.Habit{UserID: userID, Name: name, Frequency: frequency}
	if err := s.db.Create(&habit).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &habit, nil
}

func (s *Store) Rename(userID, habitID uuid.UUID, name string) (*models.Habit, error) {
	if name == "" {
		return nil, apperr.Validation("habit name is required")
	}
	habit, err := s.owned(s.db, userID, habitID)
	if err != nil {
		return nil, err
	}
	habit.Name = name
	if err := s.db.Save(habit).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return habit, nil
}

// Delete removes a habit and its completions. Owner-scoped: anyone else gets
// NotFound, and nothing is written.
func (s *Store) Delete(userID, habitID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		habit, err := s.owned(tx, userID, habitID)
		if err != nil {
			return err
		}
		if err := tx.Where("habit_id = ?", habitID).Delete(&models.HabitCompletion{}).Error; err != nil {
			return apperr.Persistence(err)
		}
		if err := tx.Delete(habit).Error; err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
	return err
}

// ToggleCompletion flips membership of date in the habit's completed set:
// present dates are removed, absent dates added. The write commits before
// the listener hears about it; a listener failure is logged, not surfaced,
// since the completion itself already succeeded.
func (s *Store) ToggleCompletion(userID, habitID uuid.UUID, date string) (completed bool, err error) {
	if _, ok := analytics.ParseDate(date); !ok {
		return false, apperr.Validation("date must be YYYY-MM-DD")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, habitID); err != nil {
			return err
		}

		var existing models.HabitCompletion
		lookupErr := tx.Where("habit_id = ? AND date = ?", habitID, date).First(&existing).Error
		switch {
		case lookupErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return apperr.Persistence(err)
			}
			completed = false
			return nil
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			completion := models.HabitCompletion{HabitID: habitID, Date: date}
			if err := tx.Create(&completion).Error; err != nil {
				return apperr.Persistence(err)
			}
			completed = true
			return nil
		default:
			return apperr.Persistence(lookupErr)
		}
	})
	if err != nil {
		return false, err
	}

	if s.listener != nil {
		if err := s.listener.HabitCompletionChanged(userID, date); err != nil {
			slog.Warn("group stats recompute failed",
				"user_id", userID, "date", date, "error", err)
		}
	}
	return completed, nil
}

// Statistics derives the user's completion statistics across all habits.
func (s *Store) Statistics(userID uuid.UUID) (analytics.Statistics, error) {
	habits, err := s.List(userID)
	if err != nil {
		return analytics.Statistics{}, err
	}

	var events []string
	for _, h := range habits {
		events = append(events, h.CompletedDates...)
	}
	return analytics.Calculate(events, len(habits)), nil
}

// Streaks computes current and longest streak for one habit, anchored at
// the caller's local day.
func (s *Store) Streaks(userID, habitID uuid.UUID, today time.Time) (models.StreakResponse, error) {
	h, err := s.Get(userID, habitID)
	if err != nil {
		return models.StreakResponse{}, err
	}
	return models.StreakResponse{
		HabitID:       habitID,
		CurrentStreak: analytics.CurrentStreak(h.CompletedDates, today),
		LongestStreak: analytics.LongestStreak(h.CompletedDates),
	}, nil
}

func (s *Store) owned(tx *gorm.DB, userID, habitID uuid.UUID) (*models.Habit, error) {
	var habit models.Habit
	if err := tx.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("habit")
		}
		return nil, apperr.Persistence(err)
	}
	return &habit, nil
}
