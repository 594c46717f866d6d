package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/a3tai/syllabus-digest/internal/lexicon"
)

// Evaluation criteria are recovered with three independent strategies
// tried in fixed priority order; the first non-empty result wins and
// lower-priority results are never merged in.

const (
	// cellGap is the horizontal gap between words that starts a new table
	// cell in the positional strategy.
	cellGap = 20.0

	minTableRows = 2
)

var (
	percentCellRe = regexp.MustCompile(`^(\d{1,3})\s*%?$`)

	// label then percent: "Examen final ... 30%"
	labelPercentRe = regexp.MustCompile(`^(.*?\p{L}.*?)[\s.:\-]*(\d{1,3})\s*%`)
	// percent then label: "30% Examen final"
	percentLabelRe = regexp.MustCompile(`(\d{1,3})\s*%\s*[:\-]?\s*(.*\p{L}.*)$`)

	trailingSepRe = regexp.MustCompile(`[\s.:;,\-–—]+$`)

	headerWords = map[string]bool{
		"ponderacion": true,
		"porcentaje":  true,
		"peso":        true,
		"weighting":   true,
		"weight":      true,
		"%":           true,
	}
)

// cleanLabel collapses internal whitespace and strips trailing separator
// punctuation from a candidate label.
func cleanLabel(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	return trailingSepRe.ReplaceAllString(label, "")
}

// parsePercentCell reports whether a cell is a standalone percentage in
// [0,100], optionally suffixed with %.
func parsePercentCell(cell string) (int, bool) {
	m := percentCellRe.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	if n > 100 {
		return 0, false
	}
	return n, true
}

// dedupeItems applies the shared cleanup contract: generic labels are
// dropped and items deduplicate by (lowercased label, percentage) in
// first-seen order.
func dedupeItems(items []EvaluationItem) []EvaluationItem {
	type key struct {
		label string
		pct   int
	}
	seen := make(map[key]bool, len(items))
	out := make([]EvaluationItem, 0, len(items))
	for _, item := range items {
		item.Label = cleanLabel(item.Label)
		if item.Label == "" || lexicon.IsGenericLabel(item.Label) {
			continue
		}
		if item.Percentage < 0 || item.Percentage > 100 {
			continue
		}
		k := key{label: strings.ToLower(item.Label), pct: item.Percentage}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

// rowCells groups one positional row's words into cells: consecutive
// words separated by less than cellGap share a cell.
func rowCells(words []Word, indices []int) []string {
	sort.Slice(indices, func(a, b int) bool { return words[indices[a]].Left < words[indices[b]].Left })

	var cells []string
	var cell []string
	prevRight := 0.0
	for n, i := range indices {
		if n > 0 && words[i].Left-prevRight > cellGap {
			cells = append(cells, strings.TrimSpace(strings.Join(cell, " ")))
			cell = cell[:0]
		}
		cell = append(cell, words[i].Text)
		prevRight = words[i].Right
	}
	if len(cell) > 0 {
		cells = append(cells, strings.TrimSpace(strings.Join(cell, " ")))
	}
	return cells
}

// tableItems implements the table-positional strategy over word boxes:
// rows with exactly one percentage cell and at least one text cell yield
// an item whose label joins the text cells in column order.
func tableItems(doc *Document) []EvaluationItem {
	var items []EvaluationItem

	for _, page := range doc.Pages {
		if len(page.Words) == 0 {
			continue
		}

		rows := bucketRows(page.Words)
		if len(rows) < minTableRows {
			continue
		}

		for rowIdx, indices := range rows {
			cells := rowCells(page.Words, indices)

			// An optional header row names the weighting column; skip it.
			if rowIdx == 0 && isHeaderRow(cells) {
				continue
			}

			var label []string
			pct, pctCount := 0, 0
			for _, cell := range cells {
				if cell == "" {
					continue
				}
				if n, ok := parsePercentCell(cell); ok {
					pct = n
					pctCount++
					continue
				}
				label = append(label, cell)
			}
			if pctCount == 1 && len(label) > 0 {
				items = append(items, EvaluationItem{Label: strings.Join(label, " "), Percentage: pct})
			}
		}
	}

	return dedupeItems(items)
}

func isHeaderRow(cells []string) bool {
	for _, cell := range cells {
		if headerWords[lexicon.Normalize(cell)] || strings.Contains(cell, "%") {
			return true
		}
	}
	return false
}

// bucketRows groups a page's word indices into vertical-position rows,
// returned top to bottom.
func bucketRows(words []Word) [][]int {
	buckets := make(map[int][]int)
	for i, w := range words {
		key := rowBucket(w.CenterY())
		buckets[key] = append(buckets[key], i)
	}
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([][]int, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, buckets[k])
	}
	return rows
}

// lineHasHint reports whether a line mentions any evaluation hint word.
func lineHasHint(line string) bool {
	folded := lexicon.Normalize(line)
	for _, hint := range lexicon.EvaluationHints {
		if strings.Contains(folded, hint) {
			return true
		}
	}
	return false
}

// evaluationScope returns the grading section body when one exists, else
// the whole document text together with a flag requiring per-line hints.
func evaluationScope(doc *Document) (text string, requireHints bool) {
	if section := FindSection(doc.FullText(), lexicon.EvaluationHeadings); section != NotFound {
		return section, false
	}
	return doc.FullText(), true
}

// inlineItems implements the inline regex strategy: per line, label-then-
// percent is tried before percent-then-label and the first match wins.
func inlineItems(doc *Document) []EvaluationItem {
	text, requireHints := evaluationScope(doc)

	var items []EvaluationItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if requireHints && !lineHasHint(line) {
			continue
		}

		if m := labelPercentRe.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.Atoi(m[2]); err == nil && pct <= 100 {
				items = append(items, EvaluationItem{Label: m[1], Percentage: pct})
				continue
			}
		}
		if m := percentLabelRe.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.Atoi(m[1]); err == nil && pct <= 100 {
				items = append(items, EvaluationItem{Label: m[2], Percentage: pct})
			}
		}
	}

	return dedupeItems(items)
}

// blockItems implements the numeric-block fallback: consecutive non-empty
// lines accumulate as a pending label until a bare number line emits the
// pair. Lone weighting header words are skipped without joining.
func blockItems(doc *Document) []EvaluationItem {
	text, _ := evaluationScope(doc)

	var items []EvaluationItem
	var buffer []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			buffer = buffer[:0]
			continue
		}
		if headerWords[lexicon.Normalize(line)] {
			continue
		}
		if pct, ok := parsePercentCell(line); ok {
			if len(buffer) > 0 {
				items = append(items, EvaluationItem{Label: strings.Join(buffer, " "), Percentage: pct})
			}
			buffer = buffer[:0]
			continue
		}
		buffer = append(buffer, line)
	}

	return dedupeItems(items)
}

// ExtractEvaluation returns the evaluation items of the first strategy
// that produced any, alongside the strategy's name for diagnostics.
func ExtractEvaluation(doc *Document) (string, []EvaluationItem) {
	return firstNonEmpty(doc, []strategy[EvaluationItem]{
		{name: "table", run: tableItems},
		{name: "inline", run: inlineItems},
		{name: "block", run: blockItems},
	})
}
