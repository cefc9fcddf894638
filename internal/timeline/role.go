package timeline

import (
	"fmt"
	"sort"
	"strings"
)

// Role is the broadcast-wide classification of a speaker.
type Role string

const (
	RoleDJ        Role = "DJ"
	RoleGuest     Role = "GUEST"
	RoleAdSpeaker Role = "AD_SPEAKER"
	// RoleUnknown is reported for speakers absent from a RoleMap.
	RoleUnknown Role = "UNKNOWN"
)

// ParseRole maps a stored role string onto a Role.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleDJ:
		return RoleDJ, nil
	case RoleGuest:
		return RoleGuest, nil
	case RoleAdSpeaker:
		return RoleAdSpeaker, nil
	case RoleUnknown:
		return RoleUnknown, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// RoleMap is an immutable speaker -> role assignment for one broadcast.
// The zero value is an empty map.
type RoleMap struct {
	roles map[string]Role
}

// NewRoleMap copies assignments into a RoleMap.
func NewRoleMap(assignments map[string]Role) RoleMap {
	roles := make(map[string]Role, len(assignments))
	for speaker, role := range assignments {
		roles[speaker] = role
	}
	return RoleMap{roles: roles}
}

// Role returns the speaker's role, or RoleUnknown when the speaker was never
// assigned one.
func (m RoleMap) Role(speaker string) Role {
	if role, ok := m.roles[speaker]; ok {
		return role
	}
	return RoleUnknown
}

// Has reports whether the speaker has an assigned role.
func (m RoleMap) Has(speaker string) bool {
	_, ok := m.roles[speaker]
	return ok
}

// Len returns the number of assigned speakers.
func (m RoleMap) Len() int {
	return len(m.roles)
}

// DJ returns the speaker holding the DJ role.
func (m RoleMap) DJ() (string, bool) {
	for speaker, role := range m.roles {
		if role == RoleDJ {
			return speaker, true
		}
	}
	return "", false
}

// Speakers returns the assigned speakers sorted by id.
func (m RoleMap) Speakers() []string {
	out := make([]string, 0, len(m.roles))
	for speaker := range m.roles {
		out = append(out, speaker)
	}
	sort.Strings(out)
	return out
}
