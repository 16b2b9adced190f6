package models

import (
	"strconv"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

// RatingColumns is the on-disk column order of the rating table.
var RatingColumns = []string{"UserID", "ISBN", "Rating"}

// RatingMax bounds the rating value; 0 is the minimum.
const RatingMax = 10

// Rating is one score, keyed by the compound (UserID, ISBN). Submitting again
// for the same key overwrites the value.
type Rating struct {
	UserID int    `json:"user_id"`
	ISBN   string `json:"isbn"`
	Rating int    `json:"rating"`
}

func (r *Rating) Record() csvstore.Record {
	return csvstore.Record{
		"UserID": strconv.Itoa(r.UserID),
		"ISBN":   r.ISBN,
		"Rating": strconv.Itoa(r.Rating),
	}
}

func RatingFromRecord(rec csvstore.Record) (*Rating, error) {
	userID, err := strconv.Atoi(rec["UserID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad user id %q on rating", rec["UserID"])
	}
	value, err := strconv.Atoi(rec["Rating"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad rating %q for isbn %s", rec["Rating"], rec["ISBN"])
	}
	return &Rating{UserID: userID, ISBN: rec["ISBN"], Rating: value}, nil
}
