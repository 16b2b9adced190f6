package requests

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

// Service handles acquisition requests and the derived total-requested counter
// table. The request table is the source of truth; the counter is a cache that
// is updated after each primary write and can be rebuilt from scratch. A crash
// between the two writes leaves the counter stale until the next rebuild.
type Service struct {
	store    *csvstore.Store
	table    csvstore.Table
	counters csvstore.Table
}

func NewService(store *csvstore.Store, dataDir string) *Service {
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, "Requests.csv"),
			Columns: models.RequestColumns,
		},
		counters: csvstore.Table{
			Path:    filepath.Join(dataDir, "TotalRequested.csv"),
			Columns: models.RequestCountColumns,
		},
	}
}

// CreateRequestOptions contains options for submitting a request.
type CreateRequestOptions struct {
	UserID    int
	BookTitle string
	Author    string
	ISBN      string
}

// Create submits a request, failing with Conflict when the user already has
// one for the same ISBN. The counter row for the ISBN is incremented after the
// request row is appended, created at 1 when absent.
func (s *Service) Create(ctx context.Context, opts CreateRequestOptions) (*models.Request, error) {
	userID := strconv.Itoa(opts.UserID)

	var request *models.Request
	_, _, err := s.store.Put(s.table, csvstore.PutOptions{
		Match: func(r csvstore.Record) bool {
			return r["UserID"] == userID && r["ISBN"] == opts.ISBN
		},
		Conflict: errcodes.Conflict("You have already requested this book."),
		Build: func(rows []csvstore.Record) csvstore.Record {
			request = &models.Request{
				ID:        csvstore.NextID(rows, "RequestID"),
				UserID:    opts.UserID,
				BookTitle: opts.BookTitle,
				Author:    opts.Author,
				ISBN:      opts.ISBN,
				Time:      time.Now().UTC().Truncate(time.Second),
			}
			return request.Record()
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := s.adjustCounter(ctx, opts.ISBN, 1); err != nil {
		return nil, err
	}
	return request, nil
}

// Delete removes a request and re-sequences the remaining ids to stay
// contiguous. Returns false when the id does not exist. On success the
// counter for the request's ISBN is decremented, removing the row at zero.
func (s *Service) Delete(ctx context.Context, requestID int) (bool, error) {
	id := strconv.Itoa(requestID)

	isbn := ""
	deleted := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		out := make([]csvstore.Record, 0, len(rows))
		for _, r := range rows {
			if r["RequestID"] == id {
				deleted = true
				isbn = r["ISBN"]
				continue
			}
			out = append(out, r)
		}
		if !deleted {
			return nil, nil
		}
		csvstore.Resequence(out, "RequestID")
		return out, nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	if !deleted {
		return false, nil
	}

	if err := s.adjustCounter(ctx, isbn, -1); err != nil {
		return false, err
	}
	return true, nil
}

// adjustCounter moves the counter row for an ISBN by delta, creating it on
// first increment and removing it when it reaches zero.
func (s *Service) adjustCounter(_ context.Context, isbn string, delta int) error {
	err := s.store.Update(s.counters, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		for i, r := range rows {
			if r["ISBN"] != isbn {
				continue
			}
			count, err := models.RequestCountFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			count.Total += delta
			if count.Total <= 0 {
				return append(rows[:i], rows[i+1:]...), nil
			}
			rows[i] = count.Record()
			return rows, nil
		}
		if delta <= 0 {
			// Nothing to decrement; the counter was already stale.
			return nil, nil
		}
		count := &models.RequestCount{ISBN: isbn, Total: delta}
		return append(rows, count.Record()), nil
	})
	return errors.WithStack(err)
}

// List returns every request in on-disk order.
func (s *Service) List(_ context.Context) ([]*models.Request, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]*models.Request, 0, len(rows))
	for _, r := range rows {
		req, err := models.RequestFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, req)
	}
	return out, nil
}

// ListForUser returns one user's requests in on-disk order.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.Request, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Request, 0)
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// TotalRequested returns the counter for an ISBN, zero when absent.
func (s *Service) TotalRequested(_ context.Context, isbn string) (int, error) {
	rows, err := s.store.ReadAll(s.counters)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	for _, r := range rows {
		if r["ISBN"] != isbn {
			continue
		}
		count, err := models.RequestCountFromRecord(r)
		if err != nil {
			return 0, errors.WithStack(err)
		}
		return count.Total, nil
	}
	return 0, nil
}

// RebuildCounters regenerates the whole counter table from the request table,
// discarding whatever the cache held before.
func (s *Service) RebuildCounters(ctx context.Context) error {
	requests, err := s.List(ctx)
	if err != nil {
		return err
	}

	totals := map[string]int{}
	order := make([]string, 0)
	for _, r := range requests {
		if _, seen := totals[r.ISBN]; !seen {
			order = append(order, r.ISBN)
		}
		totals[r.ISBN]++
	}

	rows := make([]csvstore.Record, 0, len(order))
	for _, isbn := range order {
		count := &models.RequestCount{ISBN: isbn, Total: totals[isbn]}
		rows = append(rows, count.Record())
	}
	return errors.WithStack(s.store.WriteAll(s.counters, rows))
}
