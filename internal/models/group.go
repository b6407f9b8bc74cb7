package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Code      string         `json:"code" gorm:"uniqueIndex;not null"` // 6 chars, A-Z0-9
	CreatedBy uuid.UUID      `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupMember is one row per (group, user). The unique index is what makes
// membership a set: a concurrent double-join loses on insert instead of
// appending a duplicate.
type GroupMember struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID  uuid.UUID `json:"groupId" gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	JoinedAt time.Time `json:"joinedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (gm *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if gm.ID == uuid.Nil {
		gm.ID = uuid.New()
	}
	if gm.JoinedAt.IsZero() {
		gm.JoinedAt = time.Now()
	}
	return nil
}

// GroupDailyStat is the derived per-day completion rate for a group. One row
// per (group, date), always replaced by key, never appended.
type GroupDailyStat struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID        uuid.UUID `json:"groupId" gorm:"type:uuid;not null;uniqueIndex:idx_group_date"`
	Date           string    `json:"date" gorm:"not null;uniqueIndex:idx_group_date"` // YYYY-MM-DD
	CompletionRate int       `json:"completionRate"`                                  // 0-100
	MemberCount    int       `json:"memberCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s *GroupDailyStat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Group DTOs
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

type JoinGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

type MemberInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	IsCreator   bool      `json:"isCreator"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type GroupSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	MemberCount int       `json:"memberCount"`
}
