// Package encoding provides text decoding for model source files.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader returns a reader yielding UTF-8 text from r. A leading byte order
// mark selects UTF-8 or UTF-16 (either endianness) and is stripped. Input
// without a BOM is passed through as UTF-8.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
