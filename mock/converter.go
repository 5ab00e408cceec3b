package mock

import "github.com/fwojciec/epidoc"

var _ epidoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of epidoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
