package epidoc

import (
	"maps"
	"slices"
	"strconv"
)

// RenderOptions maps stylesheet parameter names to values. The values are
// forwarded to the engine verbatim; invalid names surface as engine errors.
type RenderOptions map[string]string

// DefaultRenderOptions returns the parameters of the EpiDoc reference
// stylesheets for an interpretive edition in Panciera style.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		"edition-type":       "interpretive",
		"edn-structure":      "default",
		"leiden-style":       "panciera",
		"line-inc":           "5",
		"internal-app-style": "none",
		"external-app-style": "none",
		"topNav":             "default",
		"verse-lines":        "off",
	}
}

// Set sets a string option.
func (o RenderOptions) Set(name, value string) {
	o[name] = value
}

// SetBool sets a boolean option as "true" or "false".
func (o RenderOptions) SetBool(name string, value bool) {
	o[name] = strconv.FormatBool(value)
}

// Names returns the option names in sorted order.
func (o RenderOptions) Names() []string {
	return slices.Sorted(maps.Keys(o))
}

// Clone returns a copy of o. A nil receiver returns an empty map.
func (o RenderOptions) Clone() RenderOptions {
	c := make(RenderOptions, len(o))
	maps.Copy(c, o)
	return c
}
