package models

import "strings"

const (
	RoleVorstand = "vorstand"
	RoleAdmin    = "admin"
)

// PrivilegedRoles may manage events, form schemas and registrations.
var PrivilegedRoles = []string{RoleVorstand, RoleAdmin}

// Actor is the authenticated caller of a request. It lives for one request
// and is never persisted.
type Actor struct {
	ID       int64
	Username string
	Roles    []string
}

// HasAnyRole reports whether the actor carries at least one of the required
// roles. Role tags are compared case-insensitively.
func (a Actor) HasAnyRole(required ...string) bool {
	for _, have := range a.Roles {
		have = strings.ToLower(strings.TrimSpace(have))
		for _, want := range required {
			if have == strings.ToLower(want) {
				return true
			}
		}
	}
	return false
}

// RequirePrivileged returns a forbidden error naming the action when the
// actor is neither board member nor admin.
func (a Actor) RequirePrivileged(action string) error {
	if a.HasAnyRole(PrivilegedRoles...) {
		return nil
	}
	return Forbidden("only board members or admins may %s", action)
}
