package epidoc

import "context"

// Fragment is a converted inscription ready to be embedded in a page.
type Fragment struct {
	// Source is the path or name of the EpiDoc input.
	Source string `json:"source"`

	// Content is the rendered HTML (or Markdown) body fragment.
	Content string `json:"content"`

	// Extension is the file extension to store Content under, e.g. ".html".
	Extension string `json:"extension"`
}

// Validate returns an error if the fragment contains invalid fields.
func (f *Fragment) Validate() error {
	if f.Source == "" {
		return Errorf(EINVALID, "fragment source required")
	}
	if f.Extension == "" {
		return Errorf(EINVALID, "fragment extension required")
	}
	return nil
}

// FragmentWriter writes converted fragments to storage.
type FragmentWriter interface {
	WriteFragment(ctx context.Context, f *Fragment) error
}
