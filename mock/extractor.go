package mock

import "github.com/fwojciec/epidoc"

var _ epidoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of epidoc.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, full bool) (string, error)
}

func (e *Extractor) Extract(rawHTML string, full bool) (string, error) {
	return e.ExtractFn(rawHTML, full)
}
