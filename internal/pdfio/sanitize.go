// Package pdfio is the PDF text supplier: it turns uploaded PDF bytes
// into the page texts and word boxes the extractors consume. It never
// interprets document semantics.
package pdfio

import (
	"bytes"
	"fmt"
)

const (
	pdfMagic     = "%PDF-"
	pdfEOFMarker = "%%EOF"

	// eofSearchWindow is how far from the end of the file the EOF marker
	// is looked for before the file is flagged as truncated.
	eofSearchWindow = 1024
)

// Sanitize hardens raw upload bytes before parsing: any bytes preceding
// the PDF magic header are trimmed, and a missing end-of-file marker is
// reported as a non-fatal "truncated" warning. A file without the magic
// header at all is rejected.
func Sanitize(data []byte) ([]byte, []string, error) {
	idx := bytes.Index(data, []byte(pdfMagic))
	if idx < 0 {
		return nil, nil, fmt.Errorf("missing %s header", pdfMagic)
	}

	var warnings []string
	if idx > 0 {
		data = data[idx:]
		warnings = append(warnings, fmt.Sprintf("trimmed %d bytes before header", idx))
	}

	tail := data
	if len(tail) > eofSearchWindow {
		tail = tail[len(tail)-eofSearchWindow:]
	}
	if !bytes.Contains(tail, []byte(pdfEOFMarker)) {
		warnings = append(warnings, "truncated: missing %%EOF marker")
	}

	return data, warnings, nil
}
