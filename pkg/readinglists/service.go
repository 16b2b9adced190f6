package readinglists

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openshelf/openshelf/pkg/books"
	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

// MaxListsPerUser caps how many lists one owner can hold.
const MaxListsPerUser = 10

// Service handles curated reading lists. List names are unique per owner,
// case-insensitively; book references are weak ISBNs resolved against the
// catalog at read time.
type Service struct {
	store       *csvstore.Store
	table       csvstore.Table
	bookService *books.Service
}

func NewService(store *csvstore.Store, dataDir string, bookService *books.Service) *Service {
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, "ReadingLists.csv"),
			Columns: models.ReadingListColumns,
		},
		bookService: bookService,
	}
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Create makes a new private, empty list. Fails with QuotaExceeded when the
// owner already holds MaxListsPerUser lists, and with Conflict when the owner
// already has a list with the same name.
func (s *Service) Create(_ context.Context, ownerID int, name string) (*models.ReadingList, error) {
	owner := strconv.Itoa(ownerID)
	nameNorm := norm(name)

	var list *models.ReadingList
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		owned := 0
		for _, r := range rows {
			if r["UserID"] != owner {
				continue
			}
			owned++
			if norm(r["Name"]) == nameNorm {
				return nil, errcodes.Conflict("You already have a list with this name.")
			}
		}
		if owned >= MaxListsPerUser {
			return nil, errcodes.QuotaExceeded("You cannot have more than 10 reading lists.")
		}
		list = &models.ReadingList{
			ID:     csvstore.NextID(rows, "ListID"),
			UserID: ownerID,
			Name:   name,
		}
		return append(rows, list.Record()), nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

// Rename changes a list's name, re-checking per-owner uniqueness excluding the
// list itself. Returns false when the (list, owner) pair does not exist.
func (s *Service) Rename(_ context.Context, listID, ownerID int, newName string) (bool, error) {
	nameNorm := norm(newName)

	renamed := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		target := s.find(rows, listID, ownerID)
		if target == nil {
			return nil, nil
		}
		owner := target["UserID"]
		for _, r := range rows {
			if r["UserID"] == owner && r["ListID"] != target["ListID"] && norm(r["Name"]) == nameNorm {
				return nil, errcodes.Conflict("You already have a list with this name.")
			}
		}
		target["Name"] = newName
		renamed = true
		return rows, nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return renamed, nil
}

// VisibilityResult reports the flipped state after a toggle.
type VisibilityResult struct {
	ListID   int  `json:"list_id"`
	IsPublic bool `json:"is_public"`
}

// ToggleVisibility flips a list's public flag. Returns nil when the
// (list, owner) pair does not exist.
func (s *Service) ToggleVisibility(_ context.Context, listID, ownerID int) (*VisibilityResult, error) {
	var result *VisibilityResult
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		target := s.find(rows, listID, ownerID)
		if target == nil {
			return nil, nil
		}
		list, err := models.ReadingListFromRecord(target)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		list.IsPublic = !list.IsPublic
		if list.IsPublic {
			target["IsPublic"] = "true"
		} else {
			target["IsPublic"] = "false"
		}
		result = &VisibilityResult{ListID: list.ID, IsPublic: list.IsPublic}
		return rows, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

// AddBook appends an ISBN to the list. Re-adding an existing ISBN is a
// Conflict, not a no-op.
func (s *Service) AddBook(_ context.Context, listID, ownerID int, isbn string) (*models.ReadingList, error) {
	var updated *models.ReadingList
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		target := s.find(rows, listID, ownerID)
		if target == nil {
			return nil, errcodes.NotFound("Reading list")
		}
		list, err := models.ReadingListFromRecord(target)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if list.Contains(isbn) {
			return nil, errcodes.Conflict("This book is already in the list.")
		}
		list.ISBNs = append(list.ISBNs, isbn)
		target["ISBNs"] = strings.Join(list.ISBNs, "|")
		updated = list
		return rows, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

// RemoveBook drops an ISBN from the list. Removing an ISBN the list does not
// reference is NotFound.
func (s *Service) RemoveBook(_ context.Context, listID, ownerID int, isbn string) (*models.ReadingList, error) {
	var updated *models.ReadingList
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		target := s.find(rows, listID, ownerID)
		if target == nil {
			return nil, errcodes.NotFound("Reading list")
		}
		list, err := models.ReadingListFromRecord(target)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !list.Contains(isbn) {
			return nil, errcodes.NotFound("Book in this list")
		}
		kept := make([]string, 0, len(list.ISBNs)-1)
		for _, b := range list.ISBNs {
			if b != isbn {
				kept = append(kept, b)
			}
		}
		list.ISBNs = kept
		target["ISBNs"] = strings.Join(kept, "|")
		updated = list
		return rows, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

// Delete removes a list and re-sequences the surviving list ids across all
// owners. Returns false when the (list, owner) pair does not exist.
func (s *Service) Delete(_ context.Context, listID, ownerID int) (bool, error) {
	id := strconv.Itoa(listID)
	owner := strconv.Itoa(ownerID)

	deleted := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		out := make([]csvstore.Record, 0, len(rows))
		for _, r := range rows {
			if r["ListID"] == id && r["UserID"] == owner {
				deleted = true
				continue
			}
			out = append(out, r)
		}
		if !deleted {
			return nil, nil
		}
		csvstore.Resequence(out, "ListID")
		return out, nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return deleted, nil
}

// GetDetail returns a list with its book references resolved. An ownership
// mismatch is NotFound, not Forbidden; private lists are invisible to
// non-owners by omission.
func (s *Service) GetDetail(ctx context.Context, listID, ownerID int) (*models.ReadingListDetail, error) {
	id := strconv.Itoa(listID)
	owner := strconv.Itoa(ownerID)

	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, r := range rows {
		if r["ListID"] != id || r["UserID"] != owner {
			continue
		}
		list, err := models.ReadingListFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		entries, err := s.resolve(ctx, list.ISBNs)
		if err != nil {
			return nil, err
		}
		return &models.ReadingListDetail{
			ID:       list.ID,
			UserID:   list.UserID,
			Name:     list.Name,
			IsPublic: list.IsPublic,
			Books:    entries,
		}, nil
	}
	return nil, errcodes.NotFound("Reading list")
}

// resolve joins an ordered ISBN sequence against the book catalog. Missing
// books become placeholder entries; the join never fails and never drops an
// entry.
func (s *Service) resolve(ctx context.Context, isbns []string) ([]models.ReadingListEntry, error) {
	catalog, err := s.bookService.List(ctx)
	if err != nil {
		return nil, err
	}
	byISBN := make(map[string]*models.Book, len(catalog))
	for _, b := range catalog {
		byISBN[b.ISBN] = b
	}

	entries := make([]models.ReadingListEntry, 0, len(isbns))
	for _, isbn := range isbns {
		entry := models.ReadingListEntry{ISBN: isbn, Title: "Unknown Title", Author: "Unknown Author"}
		if b, ok := byISBN[isbn]; ok {
			entry.Title = b.Title
			entry.Author = b.Author
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetPublicForUser returns summaries of one owner's public lists.
func (s *Service) GetPublicForUser(_ context.Context, ownerID int) ([]models.ReadingListSummary, error) {
	owner := strconv.Itoa(ownerID)

	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]models.ReadingListSummary, 0)
	for _, r := range rows {
		if r["UserID"] != owner {
			continue
		}
		list, err := models.ReadingListFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !list.IsPublic {
			continue
		}
		out = append(out, models.ReadingListSummary{
			ID:         list.ID,
			Name:       list.Name,
			TotalBooks: len(list.ISBNs),
		})
	}
	return out, nil
}

// ListForOwner returns every list an owner holds, public or not.
func (s *Service) ListForOwner(_ context.Context, ownerID int) ([]*models.ReadingList, error) {
	owner := strconv.Itoa(ownerID)

	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]*models.ReadingList, 0)
	for _, r := range rows {
		if r["UserID"] != owner {
			continue
		}
		list, err := models.ReadingListFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, list)
	}
	return out, nil
}

// find locates the row for a (list, owner) pair, nil when absent.
func (s *Service) find(rows []csvstore.Record, listID, ownerID int) csvstore.Record {
	id := strconv.Itoa(listID)
	owner := strconv.Itoa(ownerID)
	for _, r := range rows {
		if r["ListID"] == id && r["UserID"] == owner {
			return r
		}
	}
	return nil
}
