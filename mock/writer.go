package mock

import (
	"context"

	"github.com/fwojciec/epidoc"
)

var _ epidoc.FragmentWriter = (*FragmentWriter)(nil)

// FragmentWriter is a mock implementation of epidoc.FragmentWriter.
type FragmentWriter struct {
	WriteFragmentFn func(ctx context.Context, f *epidoc.Fragment) error
}

func (w *FragmentWriter) WriteFragment(ctx context.Context, f *epidoc.Fragment) error {
	return w.WriteFragmentFn(ctx, f)
}
