package epidoc

import (
	"path/filepath"
	"time"
)

// Default locations, relative to Config.WorkingDir.
const (
	DefaultStylesheet = "xsl/start-edition.xsl"
	DefaultDTD        = "tei-epidoc.dtd"
	DefaultCSS        = "xsl/global.css"
)

// Config holds the settings of a conversion session. It is passed explicitly
// at construction; there is no process-wide default.
type Config struct {
	// WorkingDir is the directory stylesheet, DTD and CSS paths are resolved against.
	WorkingDir string

	// Stylesheet is the XSLT entry point, relative to WorkingDir.
	Stylesheet string

	// DTDPath is the EpiDoc document type definition, relative to WorkingDir.
	DTDPath string

	// CSSFile is the stylesheet companion CSS, relative to WorkingDir.
	CSSFile string

	// Options are bound as stylesheet parameters on every transform.
	Options RenderOptions

	// Properties are engine-specific settings bound on every transform.
	Properties map[string]string

	// Timeout bounds a single transform. Zero means no deadline.
	Timeout time.Duration

	// SkipIfUnavailable defers an unavailable engine error to Status
	// instead of failing construction.
	SkipIfUnavailable bool
}

// DefaultConfig returns a Config rooted at workingDir with the reference
// EpiDoc stylesheet layout and default render options.
func DefaultConfig(workingDir string) Config {
	return Config{
		WorkingDir: workingDir,
		Stylesheet: DefaultStylesheet,
		DTDPath:    DefaultDTD,
		CSSFile:    DefaultCSS,
		Options:    DefaultRenderOptions(),
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.Stylesheet == "" {
		return Errorf(EINVALID, "stylesheet path required")
	}
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must not be negative")
	}
	return nil
}

// StylesheetPath returns the stylesheet location joined to the working dir.
func (c *Config) StylesheetPath() string {
	return c.resolve(c.Stylesheet)
}

// DTDFile returns the DTD location joined to the working dir.
func (c *Config) DTDFile() string {
	return c.resolve(c.DTDPath)
}

// CSSPath returns the CSS location joined to the working dir.
func (c *Config) CSSPath() string {
	return c.resolve(c.CSSFile)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkingDir, p)
}
