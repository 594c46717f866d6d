package pdfio

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/a3tai/syllabus-digest/internal/extract"
)

// Reader converts uploaded PDF bytes into extractable documents.
type Reader struct {
	maxFileSize int64
}

// NewReader creates a new PDF reader with the specified size constraint.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{maxFileSize: maxFileSize}
}

// Read parses one uploaded file into a Document: per-page plain text plus
// word boxes for layout-aware extraction. Unreadable pages contribute an
// empty page rather than failing the call; warnings carry non-fatal
// findings such as a trimmed or truncated file. The returned error is
// reserved for files that cannot be parsed at all.
func (r *Reader) Read(filename string, data []byte) (*extract.Document, []string, error) {
	if int64(len(data)) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}
	if r.maxFileSize > 0 && int64(len(data)) > r.maxFileSize {
		return nil, nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), r.maxFileSize)
	}

	data, warnings, err := Sanitize(data)
	if err != nil {
		return nil, warnings, fmt.Errorf("not a PDF: %w", err)
	}

	// Structural pre-check via pdfcpu. Relaxed validation failures are
	// non-fatal as long as the text parser can still read the file.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if _, err := api.ReadContext(bytes.NewReader(data), conf); err != nil {
		warnings = append(warnings, fmt.Sprintf("structure validation failed: %v", err))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc := &extract.Document{
		Course: CourseLabel(filename),
		Pages:  make([]extract.Page, 0, reader.NumPage()),
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		doc.Pages = append(doc.Pages, readPage(reader, pageNum))
	}

	return doc, warnings, nil
}

// readPage extracts one page's text and word boxes, recovering from
// panics inside the PDF library so a bad page yields an empty page.
func readPage(reader *pdf.Reader, pageNum int) (result extract.Page) {
	defer func() {
		if recover() != nil {
			result = extract.Page{}
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return extract.Page{}
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		text = ""
	}

	var words []extract.Word
	for _, fragment := range page.Content().Text {
		if strings.TrimSpace(fragment.S) == "" {
			continue
		}
		height := fragment.FontSize
		if height == 0 {
			height = 12.0
		}
		words = append(words, extract.Word{
			Text:   fragment.S,
			Left:   fragment.X,
			Right:  fragment.X + fragment.W,
			Top:    fragment.Y + height,
			Bottom: fragment.Y,
		})
	}

	return extract.Page{Text: text, Words: words}
}

// CourseLabel derives the course identifier from an uploaded filename by
// stripping its extension.
func CourseLabel(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
