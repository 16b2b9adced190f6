package books

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

// Service handles the book catalog: CRUD keyed by ISBN plus a linear search
// over title and author. The ISBN is an opaque key here; the boundary layer
// validates its shape before it reaches the service.
type Service struct {
	store *csvstore.Store
	table csvstore.Table
}

// NewService creates a book service over the catalog table. The BX dialect
// reads the imported semicolon/Latin-1 catalog file; plain is comma/UTF-8.
func NewService(store *csvstore.Store, dataDir string, dialect csvstore.Dialect) *Service {
	name := "Books.csv"
	if dialect.Latin1 {
		name = "BX_Books.csv"
	}
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, name),
			Columns: models.BookColumns,
			Dialect: dialect,
		},
	}
}

// CreateBookOptions contains options for adding a catalog entry.
type CreateBookOptions struct {
	ISBN      string
	Title     string
	Author    string
	Year      string
	Publisher string
	ImageS    string
	ImageM    string
	ImageL    string
}

// Create adds a book, failing with Conflict when the ISBN already exists. The
// check and the append run under one table lock.
func (s *Service) Create(_ context.Context, opts CreateBookOptions) (*models.Book, error) {
	book := &models.Book{
		ISBN:      opts.ISBN,
		Title:     opts.Title,
		Author:    opts.Author,
		Year:      opts.Year,
		Publisher: opts.Publisher,
		ImageS:    opts.ImageS,
		ImageM:    opts.ImageM,
		ImageL:    opts.ImageL,
	}

	_, _, err := s.store.Put(s.table, csvstore.PutOptions{
		Match:    func(r csvstore.Record) bool { return r["ISBN"] == opts.ISBN },
		Conflict: errcodes.Conflict("A book with this ISBN already exists."),
		Build:    func([]csvstore.Record) csvstore.Record { return book.Record() },
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// Retrieve gets one book by ISBN.
func (s *Service) Retrieve(_ context.Context, isbn string) (*models.Book, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, r := range rows {
		if r["ISBN"] == isbn {
			return models.BookFromRecord(r), nil
		}
	}
	return nil, errcodes.NotFound("Book")
}

// UpdateBookOptions contains the mutable fields of an update. Nil means leave
// unchanged.
type UpdateBookOptions struct {
	Title     *string
	Author    *string
	Year      *string
	Publisher *string
	ImageS    *string
	ImageM    *string
	ImageL    *string
}

// Update mutates a catalog entry in place.
func (s *Service) Update(_ context.Context, isbn string, opts UpdateBookOptions) (*models.Book, error) {
	var updated *models.Book
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		for _, r := range rows {
			if r["ISBN"] != isbn {
				continue
			}
			apply(r, "Title", opts.Title)
			apply(r, "Author", opts.Author)
			apply(r, "Year", opts.Year)
			apply(r, "Publisher", opts.Publisher)
			apply(r, "ImageS", opts.ImageS)
			apply(r, "ImageM", opts.ImageM)
			apply(r, "ImageL", opts.ImageL)
			updated = models.BookFromRecord(r)
			return rows, nil
		}
		return nil, errcodes.NotFound("Book")
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

func apply(r csvstore.Record, col string, v *string) {
	if v != nil {
		r[col] = *v
	}
}

// Delete removes a book. A missing ISBN is reported as false, not an error.
func (s *Service) Delete(_ context.Context, isbn string) (bool, error) {
	deleted := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		out := make([]csvstore.Record, 0, len(rows))
		for _, r := range rows {
			if r["ISBN"] == isbn {
				deleted = true
				continue
			}
			out = append(out, r)
		}
		if !deleted {
			return nil, nil
		}
		return out, nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return deleted, nil
}

// List returns every book in on-disk order.
func (s *Service) List(_ context.Context) ([]*models.Book, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]*models.Book, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.BookFromRecord(r))
	}
	return out, nil
}

// Search returns books whose title or author contains the query,
// case-insensitively. An empty query matches everything.
func (s *Service) Search(ctx context.Context, query string) ([]*models.Book, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return books, nil
	}
	out := make([]*models.Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out, nil
}
