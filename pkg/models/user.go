package models

import (
	"strconv"
	"time"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

// UserColumns is the on-disk column order of the user table.
var UserColumns = []string{"id", "username", "email", "password_hash", "is_admin", "is_suspended", "suspended_until"}

// User is one account row. Username and email are stored with their original
// casing; uniqueness is enforced case-insensitively by the service.
type User struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	IsAdmin        bool       `json:"is_admin"`
	IsSuspended    bool       `json:"is_suspended"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
}

// Suspended reports whether a suspension is currently active. A row can carry
// a stale is_suspended flag after the expiry passes; callers clear it lazily
// on read.
func (u *User) Suspended(now time.Time) bool {
	if !u.IsSuspended {
		return false
	}
	if u.SuspendedUntil != nil && !now.Before(*u.SuspendedUntil) {
		return false
	}
	return true
}

func (u *User) Record() csvstore.Record {
	until := ""
	if u.SuspendedUntil != nil {
		until = u.SuspendedUntil.Format(time.RFC3339)
	}
	return csvstore.Record{
		"id":              strconv.Itoa(u.ID),
		"username":        u.Username,
		"email":           u.Email,
		"password_hash":   u.PasswordHash,
		"is_admin":        formatBool(u.IsAdmin),
		"is_suspended":    formatBool(u.IsSuspended),
		"suspended_until": until,
	}
}

func UserFromRecord(r csvstore.Record) (*User, error) {
	id, err := strconv.Atoi(r["id"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad user id %q", r["id"])
	}
	u := &User{
		ID:           id,
		Username:     r["username"],
		Email:        r["email"],
		PasswordHash: r["password_hash"],
		IsAdmin:      parseBool(r["is_admin"]),
		IsSuspended:  parseBool(r["is_suspended"]),
	}
	if until := r["suspended_until"]; until != "" {
		ts, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return nil, errors.Wrapf(err, "bad suspended_until %q for user %d", until, id)
		}
		u.SuspendedUntil = &ts
	}
	return u, nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(s string) bool {
	switch s {
	case "true", "True", "1", "yes":
		return true
	}
	return false
}
