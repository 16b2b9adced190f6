package reviews

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

// Service handles written reviews. Each user gets at most one review per ISBN;
// the comment can be edited in place, and deletion re-sequences the remaining
// ids.
type Service struct {
	store *csvstore.Store
	table csvstore.Table
}

func NewService(store *csvstore.Store, dataDir string) *Service {
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, "Reviews.csv"),
			Columns: models.ReviewColumns,
		},
	}
}

// CreateReviewOptions contains options for submitting a review.
type CreateReviewOptions struct {
	UserID  int
	ISBN    string
	Comment string
}

// Create submits a review, failing with Conflict when the user already
// reviewed the ISBN.
func (s *Service) Create(_ context.Context, opts CreateReviewOptions) (*models.Review, error) {
	userID := strconv.Itoa(opts.UserID)

	var review *models.Review
	_, _, err := s.store.Put(s.table, csvstore.PutOptions{
		Match: func(r csvstore.Record) bool {
			return r["UserID"] == userID && r["ISBN"] == opts.ISBN
		},
		Conflict: errcodes.Conflict("You have already reviewed this book."),
		Build: func(rows []csvstore.Record) csvstore.Record {
			review = &models.Review{
				ID:      csvstore.NextID(rows, "ReviewID"),
				UserID:  opts.UserID,
				ISBN:    opts.ISBN,
				Comment: opts.Comment,
				Time:    time.Now().UTC().Truncate(time.Second),
			}
			return review.Record()
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return review, nil
}

// Edit replaces a review's comment in place.
func (s *Service) Edit(_ context.Context, reviewID int, comment string) (*models.Review, error) {
	id := strconv.Itoa(reviewID)

	var updated *models.Review
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		for _, r := range rows {
			if r["ReviewID"] != id {
				continue
			}
			r["Comment"] = comment
			review, err := models.ReviewFromRecord(r)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			updated = review
			return rows, nil
		}
		return nil, errcodes.NotFound("Review")
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return updated, nil
}

// Delete removes a review and re-sequences the remaining ids. Returns false
// when the id does not exist.
func (s *Service) Delete(_ context.Context, reviewID int) (bool, error) {
	id := strconv.Itoa(reviewID)

	deleted := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		out := make([]csvstore.Record, 0, len(rows))
		for _, r := range rows {
			if r["ReviewID"] == id {
				deleted = true
				continue
			}
			out = append(out, r)
		}
		if !deleted {
			return nil, nil
		}
		csvstore.Resequence(out, "ReviewID")
		return out, nil
	})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return deleted, nil
}

// ListByISBN returns every review for an ISBN in on-disk order.
func (s *Service) ListByISBN(_ context.Context, isbn string) ([]*models.Review, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out := make([]*models.Review, 0)
	for _, r := range rows {
		if r["ISBN"] != isbn {
			continue
		}
		review, err := models.ReviewFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = append(out, review)
	}
	return out, nil
}
