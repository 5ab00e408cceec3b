package epidoc

// Converter converts an HTML fragment to another text format.
type Converter interface {
	// Convert transforms an HTML fragment (e.g., from an Extractor).
	Convert(html string) (string, error)
}
