package models

import (
	"strconv"
	"time"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

// RequestColumns is the on-disk column order of the acquisition-request table.
var RequestColumns = []string{"RequestID", "UserID", "BookTitle", "Author", "ISBN", "Time"}

// RequestCountColumns is the on-disk column order of the derived
// total-requested counter table. The table is a rebuildable cache over the
// request table, never the source of truth.
var RequestCountColumns = []string{"ISBN", "TotalRequested"}

// Request is one acquisition request. At most one request exists per
// (UserID, ISBN) pair.
type Request struct {
	ID        int       `json:"request_id"`
	UserID    int       `json:"user_id"`
	BookTitle string    `json:"book_title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Time      time.Time `json:"time"`
}

func (r *Request) Record() csvstore.Record {
	return csvstore.Record{
		"RequestID": strconv.Itoa(r.ID),
		"UserID":    strconv.Itoa(r.UserID),
		"BookTitle": r.BookTitle,
		"Author":    r.Author,
		"ISBN":      r.ISBN,
		"Time":      r.Time.Format(time.RFC3339),
	}
}

func RequestFromRecord(rec csvstore.Record) (*Request, error) {
	id, err := strconv.Atoi(rec["RequestID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad request id %q", rec["RequestID"])
	}
	userID, err := strconv.Atoi(rec["UserID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad user id %q on request %d", rec["UserID"], id)
	}
	ts, err := time.Parse(time.RFC3339, rec["Time"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad time %q on request %d", rec["Time"], id)
	}
	return &Request{
		ID:        id,
		UserID:    userID,
		BookTitle: rec["BookTitle"],
		Author:    rec["Author"],
		ISBN:      rec["ISBN"],
		Time:      ts,
	}, nil
}

// RequestCount is one derived counter row: how many live requests exist for an
// ISBN. Rows are removed when the count reaches zero.
type RequestCount struct {
	ISBN  string `json:"isbn"`
	Total int    `json:"total_requested"`
}

func (c *RequestCount) Record() csvstore.Record {
	return csvstore.Record{
		"ISBN":           c.ISBN,
		"TotalRequested": strconv.Itoa(c.Total),
	}
}

func RequestCountFromRecord(rec csvstore.Record) (*RequestCount, error) {
	total, err := strconv.Atoi(rec["TotalRequested"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad total %q for isbn %s", rec["TotalRequested"], rec["ISBN"])
	}
	return &RequestCount{ISBN: rec["ISBN"], Total: total}, nil
}
