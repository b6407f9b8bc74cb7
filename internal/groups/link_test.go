package groups

import (
	"testing"

	"github.com/google/uuid"
)

func TestInviteLinkRoundTrip(t *testing.T) {
	groupID := uuid.New()
	link := BuildInviteLink("https://habitspark.app", groupID, "abc123def456")

	gotID, gotCode, err := ParseInviteLink(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gotID != groupID {
		t.Errorf("group id = %s, want %s", gotID, groupID)
	}
	if gotCode != "abc123def456" {
		t.Errorf("code = %q, want %q", gotCode, "abc123def456")
	}
}

func TestParseInviteLinkTolerance(t *testing.T) {
	groupID := uuid.New()

	// Trailing slash and surrounding whitespace are tolerated.
	link := "  https://habitspark.app/invite/" + groupID.String() + "/c0ffee/  "
	gotID, gotCode, err := ParseInviteLink(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gotID != groupID || gotCode != "c0ffee" {
		t.Errorf("got (%s, %q)", gotID, gotCode)
	}
}

func TestParseInviteLinkRejectsGarbage(t *testing.T) {
	for _, link := range []string{
		"",
		"https://habitspark.app/invite",
		"https://habitspark.app/invite/not-a-uuid/code",
	} {
		if _, _, err := ParseInviteLink(link); err == nil {
			t.Errorf("expected error for %q", link)
		}
	}
}

func TestNewGroupCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := newGroupCode()
		if len(code) != codeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codeLength)
		}
		for _, r := range code {
			if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				t.Fatalf("code %q contains %q outside A-Z0-9", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes do not vary")
	}
}
