package csvstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T, dialect Dialect) Table {
	t.Helper()
	return Table{
		Path:    filepath.Join(t.TempDir(), "Things.csv"),
		Columns: []string{"ID", "Name"},
		Dialect: dialect,
	}
}

func TestReadAllMissingFile(t *testing.T) {
	t.Parallel()

	s := New()
	rows, err := s.ReadAll(testTable(t, Plain))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteAllReadAllRoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)

	in := []Record{
		{"ID": "1", "Name": "first"},
		{"ID": "2", "Name": "second, with comma"},
	}
	require.NoError(t, s.WriteAll(tbl, in))

	rows, err := s.ReadAll(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[0]["Name"])
	assert.Equal(t, "second, with comma", rows[1]["Name"])
}

func TestAppendCreatesHeaderOnce(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)

	require.NoError(t, s.Append(tbl, Record{"ID": "1", "Name": "a"}))
	require.NoError(t, s.Append(tbl, Record{"ID": "2", "Name": "b"}))

	data, err := os.ReadFile(tbl.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\n1,a\n2,b\n", string(data))
}

func TestBXDialectRoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, BX)

	in := []Record{{"ID": "0307245304", "Name": "Café; Crème"}}
	require.NoError(t, s.WriteAll(tbl, in))

	data, err := os.ReadFile(tbl.Path)
	require.NoError(t, err)
	// Latin-1 on disk: é is a single 0xE9 byte, fields are semicolon-delimited.
	assert.Contains(t, string(data), ";")
	assert.Contains(t, data, byte(0xE9))

	rows, err := s.ReadAll(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café; Crème", rows[0]["Name"])
}

func TestReadAllCorruptFile(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)
	require.NoError(t, os.WriteFile(tbl.Path, []byte("ID,Name\n1,a\n2,b,extra\n"), 0o644))

	_, err := s.ReadAll(tbl)
	require.Error(t, err)
	var corrupt *CorruptError
	assert.True(t, errors.As(err, &corrupt))
	assert.Equal(t, tbl.Path, corrupt.Path)
}

func TestUpdateSkipsWriteOnNilRows(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)
	require.NoError(t, s.WriteAll(tbl, []Record{{"ID": "1", "Name": "a"}}))

	before, err := os.Stat(tbl.Path)
	require.NoError(t, err)

	err = s.Update(tbl, func(rows []Record) ([]Record, error) {
		require.Len(t, rows, 1)
		return nil, nil
	})
	require.NoError(t, err)

	after, err := os.Stat(tbl.Path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestUpdatePropagatesCallbackError(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)
	sentinel := errors.New("nope")

	err := s.Update(tbl, func([]Record) ([]Record, error) {
		return nil, sentinel
	})
	assert.Equal(t, sentinel, err)
}

func TestPutConflictUnderConcurrency(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)
	conflict := errors.New("conflict")

	const n = 16
	var wg sync.WaitGroup
	created := make(chan bool, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, isNew, err := s.Put(tbl, PutOptions{
				Match:    func(r Record) bool { return r["Name"] == "dupe" },
				Conflict: conflict,
				Build: func(rows []Record) Record {
					return Record{"ID": "1", "Name": "dupe"}
				},
			})
			if err == nil {
				created <- isNew
			} else {
				assert.Equal(t, conflict, err)
			}
		}()
	}
	wg.Wait()
	close(created)

	assert.Len(t, created, 1)
	rows, err := s.ReadAll(tbl)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPutOverwrite(t *testing.T) {
	t.Parallel()

	s := New()
	tbl := testTable(t, Plain)
	require.NoError(t, s.WriteAll(tbl, []Record{{"ID": "1", "Name": "old"}}))

	row, isNew, err := s.Put(tbl, PutOptions{
		Match:     func(r Record) bool { return r["ID"] == "1" },
		Overwrite: true,
		Apply:     func(r Record) { r["Name"] = "new" },
		Build:     func(rows []Record) Record { return Record{"ID": "1", "Name": "new"} },
	})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, "new", row["Name"])

	rows, err := s.ReadAll(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0]["Name"])
}

func TestNextID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NextID(nil, "ID"))
	assert.Equal(t, 4, NextID([]Record{{"ID": "3"}, {"ID": "1"}}, "ID"))
	assert.Equal(t, 3, NextID([]Record{{"ID": "2"}, {"ID": "junk"}}, "ID"))
}

func TestResequence(t *testing.T) {
	t.Parallel()

	rows := []Record{{"ID": "1", "Name": "a"}, {"ID": "3", "Name": "c"}}
	Resequence(rows, "ID")
	assert.Equal(t, "1", rows[0]["ID"])
	assert.Equal(t, "2", rows[1]["ID"])
	assert.Equal(t, "c", rows[1]["Name"])
}
