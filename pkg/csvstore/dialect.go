package csvstore

import (
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Dialect selects the delimiter and byte encoding of one table. Dialects are
// chosen per table, not globally: the imported book catalog ships as
// semicolon-delimited Latin-1 while every other table is plain comma UTF-8.
type Dialect struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Latin1 transcodes the file from/to ISO 8859-1 instead of UTF-8.
	Latin1 bool
}

// Plain is the default dialect: comma-delimited UTF-8.
var Plain = Dialect{}

// BX is the dialect of the imported BX book catalog: semicolon-delimited,
// Latin-1 encoded.
var BX = Dialect{Comma: ';', Latin1: true}

func (d Dialect) comma() rune {
	if d.Comma == 0 {
		return ','
	}
	return d.Comma
}

func (d Dialect) reader(r io.Reader) io.Reader {
	if d.Latin1 {
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return r
}

func (d Dialect) writer(w io.Writer) io.Writer {
	if d.Latin1 {
		return transform.NewWriter(w, charmap.ISO8859_1.NewEncoder())
	}
	return w
}

// flush finalizes a transforming writer. Plain writers pass through untouched.
func flush(w io.Writer) error {
	if t, ok := w.(*transform.Writer); ok {
		return t.Close()
	}
	return nil
}
