package extract

// strategy is one self-contained extraction algorithm among several
// alternatives attempted for the same goal. Strategies are declared in
// priority order and results are never merged across strategies.
type strategy[T any] struct {
	name string
	run  func(doc *Document) []T
}

// firstNonEmpty runs strategies in declared order and returns the name
// and result of the first one producing a non-empty result.
func firstNonEmpty[T any](doc *Document, strategies []strategy[T]) (string, []T) {
	for _, s := range strategies {
		if result := s.run(doc); len(result) > 0 {
			return s.name, result
		}
	}
	return "", nil
}
