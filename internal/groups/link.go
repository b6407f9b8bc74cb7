package groups

import (
	"strings"

	"github.com/andrewwoood/habitspark/internal/apperr"
	"github.com/google/uuid"
)

// BuildInviteLink renders the shareable form of an invite:
// <base>/invite/<groupId>/<inviteCode>.
func BuildInviteLink(base string, groupID uuid.UUID, inviteCode string) string {
	return strings.TrimRight(base, "/") + "/invite/" + groupID.String() + "/" + inviteCode
}

// ParseInviteLink extracts the group id and invite code from a shared link
// by taking the last two path segments.
func ParseInviteLink(link string) (uuid.UUID, string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(link), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return uuid.Nil, "", apperr.Validation("not an invite link")
	}

	code := parts[len(parts)-1]
	groupID, err := uuid.Parse(parts[len(parts)-2])
	if err != nil || code == "" {
		return uuid.Nil, "", apperr.Validation("not an invite link")
	}
	return groupID, code, nil
}
