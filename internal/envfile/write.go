// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"bytes"
	"io"
	"strings"
)

// Marshal renders f in KEY=VALUE form, one pair per line in file order.
// Values that would not survive a reload verbatim (surrounding whitespace, a
// leading '#' or a leading quote) are wrapped in double quotes.
func Marshal(f *File) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, f) //nolint:errcheck // bytes.Buffer writes cannot fail
	return buf.Bytes()
}

// Write renders f to w.
func Write(w io.Writer, f *File) error {
	for key, value := range f.All() {
		if _, err := io.WriteString(w, key+"="+quoteIfNeeded(value.raw)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func quoteIfNeeded(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.TrimSpace(raw) != raw || raw[0] == '#' || raw[0] == '"' || raw[0] == '\'' {
		return `"` + raw + `"`
	}
	return raw
}
