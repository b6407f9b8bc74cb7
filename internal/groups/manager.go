// Package groups owns group membership, invite issuance and redemption, and
// the per-day group statistics derived from members' habits. All membership
// mutations run as single transactions so a concurrent double-join resolves
// inside the database instead of racing a client-side read-modify-write.
package groups

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/andrewwoood/habitspark/internal/apperr"
	"github.com/andrewwoood/habitspark/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 5
)

type Manager struct {
	db       *gorm.DB
	linkBase string
}

func NewManager(db *gorm.DB, linkBase string) *Manager {
	return &Manager{db: db, linkBase: linkBase}
}

// newGroupCode draws a 6-character uppercase alphanumeric code.
func newGroupCode() string {
	b := make([]byte, codeLength)
	rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// codeTaken checks the candidate against every group ever issued, including
// soft-deleted ones, which still occupy the unique index on code.
func codeTaken(tx *gorm.DB, code string) (bool, error) {
	var n int64
	if err := tx.Unscoped().Model(&models.Group{}).Where("code = ?", code).Count(&n).Error; err != nil {
		return false, apperr.Persistence(err)
	}
	return n > 0, nil
}

// Create makes a group with the caller as creator and sole member. The
// creator membership row is written in the same transaction, so the
// createdBy-is-a-member invariant holds from the first commit. Code
// collisions retry with a fresh code before surfacing DuplicateCode.
func (m *Manager) Create(userID uuid.UUID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		group := models.Group{Name: name, Code: newGroupCode(), CreatedBy: userID}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			taken, err := codeTaken(tx, group.Code)
			if err != nil {
				return err
			}
			if taken {
				return apperr.ErrDuplicateCode
			}
			if err := tx.Create(&group).Error; err != nil {
				return apperr.Persistence(err)
			}
			member := models.GroupMember{GroupID: group.ID, UserID: userID}
			if err := tx.Create(&member).Error; err != nil {
				return apperr.Persistence(err)
			}
			m.logActivity(tx, group.ID, userID, "group_created", nil)
			return nil
		})
		if err == nil {
			return &group, nil
		}
		lastErr = err
		if !errors.Is(err, apperr.ErrDuplicateCode) {
			return nil, err
		}
	}
	return nil, lastErr
}

// Join adds the caller to the group with the given code. The lookup is
// case-insensitive and whitespace-trimmed. Lookup, membership check, and
// append happen in one transaction; a second join of the same user signals
// AlreadyMember and leaves the member set unchanged.
func (m *Manager) Join(userID uuid.UUID, code string) (*models.Group, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.Validation("group code is required")
	}

	var group models.Group
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("group code " + code)
			}
			return apperr.Persistence(err)
		}
		return m.appendMember(tx, &group, userID)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// JoinByInvite validates an invite against the group's stored invites, then
// performs the same idempotent append as Join. Redemption by an existing
// member is a no-op AlreadyMember and does not consume a use.
func (m *Manager) JoinByInvite(userID, groupID uuid.UUID, inviteCode string) (*models.Group, error) {
	var group models.Group
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var invite models.GroupInvite
		if err := tx.Where("group_id = ? AND invite_code = ?", groupID, inviteCode).First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("invite")
			}
			return apperr.Persistence(err)
		}
		if !invite.IsValid() {
			return apperr.Validation("invite has expired or reached its usage limit")
		}
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("group")
			}
			return apperr.Persistence(err)
		}
		if err := m.appendMember(tx, &group, userID); err != nil {
			return err
		}
		if err := tx.Model(&invite).Update("used_count", invite.UsedCount+1).Error; err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// appendMember does the atomic check-then-append inside the caller's
// transaction. The (group, user) unique index backstops it under
// concurrency.
func (m *Manager) appendMember(tx *gorm.DB, group *models.Group, userID uuid.UUID) error {
	var existing models.GroupMember
	err := tx.Where("group_id = ? AND user_id = ?", group.ID, userID).First(&existing).Error
	if err == nil {
		return apperr.ErrAlreadyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Persistence(err)
	}
	member := models.GroupMember{GroupID: group.ID, UserID: userID}
	if err := tx.Create(&member).Error; err != nil {
		return apperr.Persistence(err)
	}
	m.logActivity(tx, group.ID, userID, "member_joined", nil)
	return nil
}

// Leave removes the caller from the group. The creator cannot leave, only
// delete, so the group is never left ownerless.
func (m *Manager) Leave(userID, groupID uuid.UUID) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		group, err := m.find(tx, groupID)
		if err != nil {
			return err
		}
		if group.CreatedBy == userID {
			return apperr.ErrCreatorCannotLeave
		}
		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{})
		if res.Error != nil {
			return apperr.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("membership")
		}
		m.logActivity(tx, groupID, userID, "member_left", nil)
		return nil
	})
}

// Kick removes a member. Creator-only, and the creator cannot kick
// themselves.
func (m *Manager) Kick(callerID, groupID, memberID uuid.UUID) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		group, err := m.find(tx, groupID)
		if err != nil {
			return err
		}
		if group.CreatedBy != callerID {
			return apperr.ErrUnauthorized
		}
		if memberID == group.CreatedBy {
			return apperr.ErrUnauthorized
		}
		res := tx.Where("group_id = ? AND user_id = ?", groupID, memberID).Delete(&models.GroupMember{})
		if res.Error != nil {
			return apperr.Persistence(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("member")
		}
		m.logActivity(tx, groupID, memberID, "member_kicked", map[string]interface{}{
			"removedBy": callerID.String(),
		})
		return nil
	})
}

// Delete removes the group and, transitively, its members, invites, daily
// stats, and activity. Creator-only.
func (m *Manager) Delete(callerID, groupID uuid.UUID) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		group, err := m.find(tx, groupID)
		if err != nil {
			return err
		}
		if group.CreatedBy != callerID {
			return apperr.ErrUnauthorized
		}
		for _, model := range []interface{}{
			&models.GroupMember{}, &models.GroupInvite{}, &models.GroupDailyStat{}, &models.Activity{},
		} {
			if err := tx.Where("group_id = ?", groupID).Delete(model).Error; err != nil {
				return apperr.Persistence(err)
			}
		}
		if err := tx.Delete(group).Error; err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
}

// Groups lists the groups the caller belongs to, with member counts.
func (m *Manager) Groups(userID uuid.UUID) ([]models.GroupSummary, error) {
	var memberships []models.GroupMember
	if err := m.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	summaries := make([]models.GroupSummary, 0, len(memberships))
	for _, ms := range memberships {
		var group models.Group
		if err := m.db.First(&group, ms.GroupID).Error; err != nil {
			continue
		}
		var count int64
		m.db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&count)
		summaries = append(summaries, models.GroupSummary{
			ID:          group.ID,
			Name:        group.Name,
			Code:        group.Code,
			CreatedBy:   group.CreatedBy,
			MemberCount: int(count),
		})
	}
	return summaries, nil
}

// Members lists a group's members with their public profiles. Member-scoped.
func (m *Manager) Members(callerID, groupID uuid.UUID) ([]models.MemberInfo, error) {
	group, err := m.find(m.db, groupID)
	if err != nil {
		return nil, err
	}
	if !m.isMember(groupID, callerID) {
		return nil, apperr.NotFound("group")
	}

	var members []models.GroupMember
	if err := m.db.Where("group_id = ?", groupID).Preload("User").Find(&members).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	result := make([]models.MemberInfo, 0, len(members))
	for _, gm := range members {
		result = append(result, models.MemberInfo{
			ID:          gm.UserID,
			Name:        gm.User.Name,
			DisplayName: gm.User.DisplayName,
			AvatarURL:   gm.User.AvatarURL,
			IsCreator:   gm.UserID == group.CreatedBy,
			JoinedAt:    gm.JoinedAt,
		})
	}
	return result, nil
}

// Profiles resolves public profiles for a set of user ids.
func (m *Manager) Profiles(userIDs []uuid.UUID) ([]models.UserProfile, error) {
	var users []models.User
	if err := m.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	profiles := make([]models.UserProfile, len(users))
	for i, u := range users {
		name := u.DisplayName
		if name == "" {
			name = u.Name
		}
		profiles[i] = models.UserProfile{ID: u.ID, DisplayName: name, AvatarURL: u.AvatarURL}
	}
	return profiles, nil
}

// CreateInvite issues a new invite capability for the group. Creator-only.
// Invites are multi-use until revoked, expired, or over their MaxUses cap.
func (m *Manager) CreateInvite(callerID, groupID uuid.UUID, req models.CreateInviteRequest) (*models.InviteResponse, error) {
	group, err := m.find(m.db, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != callerID {
		return nil, apperr.ErrUnauthorized
	}

	invite := models.GroupInvite{GroupID: groupID, InviterID: callerID, MaxUses: req.MaxUses}
	if req.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresIn) * time.Hour)
		invite.ExpiresAt = &exp
	}
	if err := m.db.Create(&invite).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	return &models.InviteResponse{
		GroupInvite: invite,
		Link:        BuildInviteLink(m.linkBase, groupID, invite.InviteCode),
	}, nil
}

// ListInvites returns the group's invites. Creator-only.
func (m *Manager) ListInvites(callerID, groupID uuid.UUID) ([]models.InviteResponse, error) {
	group, err := m.find(m.db, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != callerID {
		return nil, apperr.ErrUnauthorized
	}

	var invites []models.GroupInvite
	if err := m.db.Where("group_id = ?", groupID).Order("created_at DESC").Find(&invites).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	out := make([]models.InviteResponse, len(invites))
	for i, inv := range invites {
		out[i] = models.InviteResponse{
			GroupInvite: inv,
			Link:        BuildInviteLink(m.linkBase, groupID, inv.InviteCode),
		}
	}
	return out, nil
}

// RevokeInvite deletes an invite so it can no longer be redeemed.
// Creator-only.
func (m *Manager) RevokeInvite(callerID, groupID, inviteID uuid.UUID) error {
	group, err := m.find(m.db, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != callerID {
		return apperr.ErrUnauthorized
	}
	res := m.db.Where("id = ? AND group_id = ?", inviteID, groupID).Delete(&models.GroupInvite{})
	if res.Error != nil {
		return apperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("invite")
	}
	return nil
}

// UpdateStats recomputes the group's stat row for one date: the fraction of
// current members with at least one habit completion that day, upserted by
// (group, date) so recomputation replaces instead of appending.
func (m *Manager) UpdateStats(groupID uuid.UUID, date string) error {
	var memberIDs []uuid.UUID
	if err := m.db.Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &memberIDs).Error; err != nil {
		return apperr.Persistence(err)
	}
	if len(memberIDs) == 0 {
		return apperr.NotFound("group members")
	}

	var completed int64
	if err := m.db.Model(&models.HabitCompletion{}).
		Joins("JOIN habits ON habits.id = habit_completions.habit_id AND habits.deleted_at IS NULL").
		Where("habit_completions.date = ? AND habits.user_id IN ?", date, memberIDs).
		Distinct("habits.user_id").
		Count(&completed).Error; err != nil {
		return apperr.Persistence(err)
	}

	rate := int(math.Round(float64(completed) / float64(len(memberIDs)) * 100))
	stat := models.GroupDailyStat{
		GroupID:        groupID,
		Date:           date,
		CompletionRate: rate,
		MemberCount:    len(memberIDs),
	}
	err := m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completion_rate", "member_count", "updated_at"}),
	}).Create(&stat).Error
	if err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// HabitCompletionChanged is the habit store's completion listener: a toggle
// on date recomputes that day's stats for every group the user belongs to.
func (m *Manager) HabitCompletionChanged(userID uuid.UUID, date string) error {
	var groupIDs []uuid.UUID
	if err := m.db.Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error; err != nil {
		return apperr.Persistence(err)
	}

	var firstErr error
	for _, id := range groupIDs {
		if err := m.UpdateStats(id, date); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Stats reads back daily stat rows for display, inclusive on both bounds.
// Member-scoped.
func (m *Manager) Stats(callerID, groupID uuid.UUID, from, to string) ([]models.GroupDailyStat, error) {
	if _, err := m.find(m.db, groupID); err != nil {
		return nil, err
	}
	if !m.isMember(groupID, callerID) {
		return nil, apperr.NotFound("group")
	}

	q := m.db.Where("group_id = ?", groupID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var stats []models.GroupDailyStat
	if err := q.Order("date ASC").Find(&stats).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return stats, nil
}

// Activity returns the group's paginated activity feed. Member-scoped.
func (m *Manager) Activity(callerID, groupID uuid.UUID, page, limit int) ([]models.Activity, int64, error) {
	if _, err := m.find(m.db, groupID); err != nil {
		return nil, 0, err
	}
	if !m.isMember(groupID, callerID) {
		return nil, 0, apperr.NotFound("group")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var activities []models.Activity
	if err := m.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, 0, apperr.Persistence(err)
	}

	var total int64
	m.db.Model(&models.Activity{}).Where("group_id = ?", groupID).Count(&total)
	return activities, total, nil
}

func (m *Manager) find(tx *gorm.DB, groupID uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := tx.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group")
		}
		return nil, apperr.Persistence(err)
	}
	return &group, nil
}

func (m *Manager) isMember(groupID, userID uuid.UUID) bool {
	var gm models.GroupMember
	return m.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&gm).Error == nil
}

func (m *Manager) logActivity(tx *gorm.DB, groupID, userID uuid.UUID, actionType string, metadata map[string]interface{}) {
	activity := models.Activity{GroupID: groupID, UserID: userID, ActionType: actionType}
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			s := string(data)
			activity.Metadata = &s
		}
	}
	tx.Create(&activity)
}
