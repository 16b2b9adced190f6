package users

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

// Service handles user accounts: creation, lookup, updates, and suspension.
// Username and email are unique case-insensitively; the original casing is
// what gets stored.
type Service struct {
	store *csvstore.Store
	table csvstore.Table
}

func NewService(store *csvstore.Store, dataDir string) *Service {
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, "Users.csv"),
			Columns: models.UserColumns,
		},
	}
}

// norm is the comparison form of usernames and emails. Only comparisons use
// it; stored values keep their casing.
func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CreateUserOptions contains options for creating a user. The password arrives
// already hashed; this service never sees plaintext credentials.
type CreateUserOptions struct {
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// Create creates a new user. The uniqueness checks and the id allocation run
// inside one table-lock critical section, so two concurrent creates for the
// same username cannot both succeed.
func (s *Service) Create(_ context.Context, opts CreateUserOptions) (*models.User, error) {
	usernameNorm := norm(opts.Username)
	emailNorm := norm(opts.Email)

	var user *models.User
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		for _, r := range rows {
			if norm(r["username"]) == usernameNorm {
				return nil, errcodes.Conflict("Username is already taken.")
			}
			if norm(r["email"]) == emailNorm {
				return nil, errcodes.Conflict("Email is already taken.")
			}
		}
		user = &models.User{
			ID:           csvstore.NextID(rows, "id"),
			Username:     opts.Username,
			Email:        opts.Email,
			PasswordHash: opts.PasswordHash,
			IsAdmin:      opts.IsAdmin,
		}
		return append(rows, user.Record()), nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// Retrieve gets a user by ID, lazily clearing an expired suspension.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.User, error) {
	return s.lookup(ctx, func(u *models.User) bool { return u.ID == id })
}

// GetByUsername gets a user by case-insensitive username, lazily clearing an
// expired suspension.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	usernameNorm := norm(username)
	return s.lookup(ctx, func(u *models.User) bool { return norm(u.Username) == usernameNorm })
}

// lookup finds one user and enforces suspension expiry on the read path: when
// the suspension timestamp has passed, the flag and timestamp are cleared and
// persisted before the row is returned. There is no background sweep.
func (s *Service) lookup(_ context.Context, match func(*models.User) bool) (*models.User, error) {
	var found *models.User
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		for _, r := range rows {
			u, err := models.UserFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if !match(u) {
				continue
			}
			if u.IsSuspended && !u.Suspended(time.Now()) {
				u.IsSuspended = false
				u.SuspendedUntil = nil
				r["is_suspended"] = "false"
				r["suspended_until"] = ""
				found = u
				return rows, nil
			}
			found = u
			return nil, nil
		}
		return nil, errcodes.NotFound("User")
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return found, nil
}

// UpdateUserOptions contains the mutable fields of an update. Nil means leave
// unchanged.
type UpdateUserOptions struct {
	Username *string
	Email    *string
	IsAdmin  *bool
}

// Update mutates a user, re-validating username and email uniqueness against
// every other row.
func (s *Service) Update(_ context.Context, id int, opts UpdateUserOptions) (*models.User, error) {
	var updated *models.User
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		var target csvstore.Record
		for _, r := range rows {
			u, err := models.UserFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if u.ID == id {
				target = r
				break
			}
		}
		if target == nil {
			return nil, errcodes.NotFound("User")
		}

		if opts.Username != nil {
			newNorm := norm(*opts.Username)
			for _, other := range rows {
				if other["id"] != target["id"] && norm(other["username"]) == newNorm {
					return nil, errcodes.Conflict("Username is already taken.")
				}
			}
			target["username"] = *opts.Username
		}
		if opts.Email != nil {
			newNorm := norm(*opts.Email)
			for _, other := range rows {
				if other["id"] != target["id"] && norm(other["email"]) == newNorm {
					return nil, errcodes.Conflict("Email is already taken.")
				}
			}
			target["email"] = *opts.Email
		}
		if opts.IsAdmin != nil {
			if *opts.IsAdmin {
				target["is_admin"] = "true"
			} else {
				target["is_admin"] = "false"
			}
		}

		u, err := models.UserFromRecord(target)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		updated = u
		return rows, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

// Suspend marks a user suspended until now+duration. Only admins may suspend.
func (s *Service) Suspend(ctx context.Context, adminID, targetID int, duration time.Duration) (*models.User, error) {
	until := time.Now().Add(duration).Format(time.RFC3339)
	return s.setSuspension(ctx, adminID, targetID, "true", until)
}

// Unsuspend clears a user's suspension. Only admins may unsuspend.
func (s *Service) Unsuspend(ctx context.Context, adminID, targetID int) (*models.User, error) {
	return s.setSuspension(ctx, adminID, targetID, "false", "")
}

func (s *Service) setSuspension(_ context.Context, adminID, targetID int, suspended, until string) (*models.User, error) {
	var updated *models.User
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		if !isAdmin(rows, adminID) {
			return nil, errcodes.Forbidden("Changing suspensions without admin rights")
		}
		for _, r := range rows {
			u, err := models.UserFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if u.ID != targetID {
				continue
			}
			r["is_suspended"] = suspended
			r["suspended_until"] = until
			updated, err = models.UserFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			return rows, nil
		}
		return nil, errcodes.NotFound("User")
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

func isAdmin(rows []csvstore.Record, id int) bool {
	for _, r := range rows {
		u, err := models.UserFromRecord(r)
		if err != nil {
			continue
		}
		if u.ID == id {
			return u.IsAdmin
		}
	}
	return false
}

// List returns every user in on-disk order.
func (s *Service) List(_ context.Context) ([]*models.User, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]*models.User, 0, len(rows))
	for _, r := range rows {
		u, err := models.UserFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, u)
	}
	return out, nil
}
