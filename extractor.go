package epidoc

// Extractor turns raw transform output into the conversion result.
type Extractor interface {
	// Extract returns the inner content of the first body element of
	// rawHTML, trimmed. If full is true it returns rawHTML trimmed instead.
	// Returns EEMPTY for empty input and ENOBODY if no body element exists.
	Extract(rawHTML string, full bool) (string, error)
}
