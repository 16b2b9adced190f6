package ratings

import (
	"context"
	"math"
	"path/filepath"
	"strconv"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

// Service handles numeric ratings, keyed by the compound (UserID, ISBN).
// Submitting twice for the same key overwrites the value rather than erroring.
type Service struct {
	store *csvstore.Store
	table csvstore.Table
}

func NewService(store *csvstore.Store, dataDir string) *Service {
	return &Service{
		store: store,
		table: csvstore.Table{
			Path:    filepath.Join(dataDir, "Ratings.csv"),
			Columns: models.RatingColumns,
		},
	}
}

// Upsert stores a rating, overwriting any previous value for the same
// (user, ISBN) pair.
func (s *Service) Upsert(_ context.Context, userID int, isbn string, value int) (*models.Rating, error) {
	uid := strconv.Itoa(userID)
	rating := &models.Rating{UserID: userID, ISBN: isbn, Rating: value}

	_, _, err := s.store.Put(s.table, csvstore.PutOptions{
		Match: func(r csvstore.Record) bool {
			return r["UserID"] == uid && r["ISBN"] == isbn
		},
		Overwrite: true,
		Apply: func(r csvstore.Record) {
			r["Rating"] = strconv.Itoa(value)
		},
		Build: func([]csvstore.Record) csvstore.Record { return rating.Record() },
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rating, nil
}

// Get returns one user's rating for an ISBN, nil when absent.
func (s *Service) Get(_ context.Context, userID int, isbn string) (*models.Rating, error) {
	uid := strconv.Itoa(userID)

	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, r := range rows {
		if r["UserID"] != uid || r["ISBN"] != isbn {
			continue
		}
		rating, err := models.RatingFromRecord(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return rating, nil
	}
	return nil, nil
}

// AverageResult is the aggregate over all ratings for one ISBN.
type AverageResult struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Average returns the mean rating for an ISBN, rounded to two decimal places.
// An unrated ISBN yields {0, 0}, not an error.
func (s *Service) Average(_ context.Context, isbn string) (AverageResult, error) {
	rows, err := s.store.ReadAll(s.table)
	if err != nil {
		return AverageResult{}, errors.WithStack(err)
	}

	sum := 0
	count := 0
	for _, r := range rows {
		if r["ISBN"] != isbn {
			continue
		}
		rating, err := models.RatingFromRecord(r)
		if err != nil {
			return AverageResult{}, errors.WithStack(err)
		}
		sum += rating.Rating
		count++
	}
	if count == 0 {
		return AverageResult{}, nil
	}
	avg := math.Round(float64(sum)/float64(count)*100) / 100
	return AverageResult{Average: avg, Count: count}, nil
}

// Delete removes one user's rating. Returns false when absent.
func (s *Service) Delete(_ context.Context, userID int, isbn string) (bool, error) {
	uid := strconv.Itoa(userID)

	deleted := false
	err := s.store.Update(s.table, func(rows []csvstore.Record) ([]csvstore.Record, error) {
		out := make([]csvstore.Record, 0, len(rows))
		for _, r := range rows {
			if r["UserID"] == uid && r["ISBN"] == isbn {
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
