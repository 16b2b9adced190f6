package csvstore

import "strconv"

// NextID computes the next integer identifier for a table: 1 when there are no
// rows, otherwise max(id)+1. Rows whose id field is not numeric are skipped.
// There is no persisted counter; the result is only valid while the caller
// holds the table lock for the subsequent insert, so call this from inside
// Update or Put.
func NextID(rows []Record, idColumn string) int {
	maxID := 0
	for _, r := range rows {
		id, err := strconv.Atoi(r[idColumn])
		if err != nil {
			continue
		}
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// Resequence renumbers rows to 1..N in place, preserving relative order. Used
// after deletions to keep identifiers contiguous; ids are therefore not stable
// across deletes.
func Resequence(rows []Record, idColumn string) {
	for i, r := range rows {
		r[idColumn] = strconv.Itoa(i + 1)
	}
}
