// Package csvstore is a small record store over delimited flat files. Each
// table is one file; every operation on a table serializes through a single
// in-process lock keyed by the cleaned file path. The store provides no
// read-modify-write atomicity across calls; flows that need to check existing
// rows before writing must go through Update or Put, which hold the table lock
// for the whole sequence.
package csvstore

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Record is a single row, keyed by column name. Values are always strings;
// typed models convert at this boundary.
type Record map[string]string

// Table identifies one flat file together with its column order and dialect.
type Table struct {
	Path    string
	Columns []string
	Dialect Dialect
}

// Store hands out per-path locks and performs all file access. One Store is
// shared by every service in the process.
type Store struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Store {
	return &Store{locks: map[string]*sync.Mutex{}}
}

// lock returns the mutex for the given path, creating it on first use. The
// registry itself is guarded so concurrent first access of the same table is
// safe.
func (s *Store) lock(path string) *sync.Mutex {
	key := filepath.Clean(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// ReadAll returns every row of the table in on-disk order. A missing file is
// an empty table, not an error. A structurally invalid file (wrong field
// count, undecodable bytes) fails the whole read with a CorruptError.
func (s *Store) ReadAll(t Table) ([]Record, error) {
	l := s.lock(t.Path)
	l.Lock()
	defer l.Unlock()
	return s.readLocked(t)
}

// WriteAll replaces the entire table content, header first.
func (s *Store) WriteAll(t Table, rows []Record) error {
	l := s.lock(t.Path)
	l.Lock()
	defer l.Unlock()
	return s.writeLocked(t, rows)
}

// Append adds a single row at the end, writing the header first if the file is
// being created.
func (s *Store) Append(t Table, row Record) error {
	l := s.lock(t.Path)
	l.Lock()
	defer l.Unlock()
	return s.appendLocked(t, row)
}

// Update reads the table, applies fn, and writes the result back, all under
// one lock acquisition. This is the primitive every check-then-write flow must
// use: uniqueness checks, id allocation, and counter updates are only correct
// when the decision and the write happen inside the same critical section.
//
// fn may return nil rows to skip the write (read-only outcome). Errors from fn
// propagate unchanged so callers can surface domain failures from inside the
// critical section.
func (s *Store) Update(t Table, fn func(rows []Record) ([]Record, error)) error {
	l := s.lock(t.Path)
	l.Lock()
	defer l.Unlock()

	rows, err := s.readLocked(t)
	if err != nil {
		return err
	}
	out, err := fn(rows)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return s.writeLocked(t, out)
}

func (s *Store) readLocked(t Table) ([]Record, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "open table %s", t.Path)
	}
	defer f.Close()

	r := csv.NewReader(t.Dialect.reader(f))
	r.Comma = t.Dialect.comma()

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &CorruptError{Path: t.Path, Err: err}
	}

	var rows []Record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CorruptError{Path: t.Path, Err: err}
		}
		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = fields[i]
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (s *Store) writeLocked(t Table, rows []Record) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", t.Path)
	}
	f, err := os.Create(t.Path)
	if err != nil {
		return errors.Wrapf(err, "create table %s", t.Path)
	}
	defer f.Close()

	ew := t.Dialect.writer(f)
	w := csv.NewWriter(ew)
	w.Comma = t.Dialect.comma()

	if err := w.Write(t.Columns); err != nil {
		return errors.Wrapf(err, "write header for %s", t.Path)
	}
	for _, rec := range rows {
		if err := w.Write(rec.fields(t.Columns)); err != nil {
			return errors.Wrapf(err, "write row for %s", t.Path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush table %s", t.Path)
	}
	return errors.Wrapf(flush(ew), "encode table %s", t.Path)
}

func (s *Store) appendLocked(t Table, row Record) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", t.Path)
	}
	_, statErr := os.Stat(t.Path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(t.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open table %s for append", t.Path)
	}
	defer f.Close()

	ew := t.Dialect.writer(f)
	w := csv.NewWriter(ew)
	w.Comma = t.Dialect.comma()

	if writeHeader {
		if err := w.Write(t.Columns); err != nil {
			return errors.Wrapf(err, "write header for %s", t.Path)
		}
	}
	if err := w.Write(row.fields(t.Columns)); err != nil {
		return errors.Wrapf(err, "append row to %s", t.Path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush table %s", t.Path)
	}
	return errors.Wrapf(flush(ew), "encode table %s", t.Path)
}

// fields projects the record onto the given column order. Missing columns
// become empty strings; unknown keys are dropped.
func (r Record) fields(columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = r[col]
	}
	return out
}

// Clone returns a shallow copy. Callers that hand rows back to Update after
// mutation should clone first if they also retain the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
