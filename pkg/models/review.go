package models

import (
	"strconv"
	"time"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

// ReviewColumns is the on-disk column order of the review table.
var ReviewColumns = []string{"ReviewID", "UserID", "ISBN", "Comment", "Time"}

// Review is one written review. At most one review exists per (UserID, ISBN)
// pair; the comment is editable in place.
type Review struct {
	ID      int       `json:"review_id"`
	UserID  int       `json:"user_id"`
	ISBN    string    `json:"isbn"`
	Comment string    `json:"comment"`
	Time    time.Time `json:"time"`
}

func (r *Review) Record() csvstore.Record {
	return csvstore.Record{
		"ReviewID": strconv.Itoa(r.ID),
		"UserID":   strconv.Itoa(r.UserID),
		"ISBN":     r.ISBN,
		"Comment":  r.Comment,
		"Time":     r.Time.Format(time.RFC3339),
	}
}

func ReviewFromRecord(rec csvstore.Record) (*Review, error) {
	id, err := strconv.Atoi(rec["ReviewID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad review id %q", rec["ReviewID"])
	}
	userID, err := strconv.Atoi(rec["UserID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad user id %q on review %d", rec["UserID"], id)
	}
	ts, err := time.Parse(time.RFC3339, rec["Time"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad time %q on review %d", rec["Time"], id)
	}
	return &Review{
		ID:      id,
		UserID:  userID,
		ISBN:    rec["ISBN"],
		Comment: rec["Comment"],
		Time:    ts,
	}, nil
}
