// SPDX-License-Identifier: MIT

package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrHeader indicates a missing or malformed header row.
	ErrHeader = errors.New("tabular: bad header")

	// ErrRecord indicates a data row that cannot be parsed.
	ErrRecord = errors.New("tabular: bad record")

	// ErrFormat indicates an unknown annotation format name.
	ErrFormat = errors.New("tabular: unknown annotation format")
)

// recordErrorf attributes err to a 1-based input line.
func recordErrorf(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrRecord, line, fmt.Sprintf(format, args...))
}
