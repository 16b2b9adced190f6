package csvstore

// PutOptions parameterizes the find-or-create / find-and-overwrite operation
// shared by every table with a uniqueness constraint.
type PutOptions struct {
	// Match is the uniqueness predicate, evaluated against every existing row.
	Match func(Record) bool
	// Overwrite selects upsert semantics: when a row matches, Apply mutates it
	// in place and the table is rewritten. When false, a match fails the Put
	// with Conflict.
	Overwrite bool
	// Apply mutates the matched row. Only used when Overwrite is set.
	Apply func(Record)
	// Conflict is returned when a row matches and Overwrite is not set.
	Conflict error
	// Build constructs the new row when nothing matches. It sees all existing
	// rows so it can allocate an identifier with NextID.
	Build func(rows []Record) Record
}

// Put inserts or overwrites one row under a single lock acquisition, so the
// uniqueness check, id allocation, and write cannot interleave with another
// writer on the same table. Returns the stored row and whether it was newly
// created.
func (s *Store) Put(t Table, opts PutOptions) (Record, bool, error) {
	l := s.lock(t.Path)
	l.Lock()
	defer l.Unlock()

	rows, err := s.readLocked(t)
	if err != nil {
		return nil, false, err
	}

	for _, r := range rows {
		if !opts.Match(r) {
			continue
		}
		if !opts.Overwrite {
			return nil, false, opts.Conflict
		}
		opts.Apply(r)
		if err := s.writeLocked(t, rows); err != nil {
			return nil, false, err
		}
		return r, false, nil
	}

	row := opts.Build(rows)
	if err := s.appendLocked(t, row); err != nil {
		return nil, false, err
	}
	return row, true, nil
}
