package csvstore

import "fmt"

// CorruptError reports a structurally invalid table file: wrong field count or
// undecodable bytes. The whole read fails; partial tables are never returned.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("table %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
