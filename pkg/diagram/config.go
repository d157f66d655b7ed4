package diagram

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries every tunable of the preprocessor as one explicit,
// immutable value threaded through all components. Nothing here is
// global state; tests inject their own Config.
type Config struct {
	// OutputFormat is the image format requested for every diagram.
	OutputFormat OutputFormat
	// LanguagePrefix gates which fence tags are treated as diagrams.
	// Empty means only the bare "mermaid"/"plantuml" tags match.
	LanguagePrefix string
	// KrokiURL is the rendering service endpoint.
	KrokiURL string
	// KrokiTimeout bounds each render request. Zero means no timeout.
	KrokiTimeout time.Duration
	// FilenamePrefix is prepended to every cached artifact's filename.
	FilenamePrefix string
	// FilesPath is the directory holding cached artifacts.
	FilesPath string
}

// DefaultConfig returns the configuration used when the book defines no
// preprocessor table: PNG output to the public Kroki instance, artifacts
// in the system temp directory, no request timeout.
func DefaultConfig() Config {
	return Config{
		OutputFormat:   PNG,
		LanguagePrefix: "",
		KrokiURL:       "https://kroki.io",
		KrokiTimeout:   0,
		FilenamePrefix: "diagram-",
		FilesPath:      os.TempDir(),
	}
}

// ConfigFromTable applies a preprocessor configuration table (the
// decoded [preprocessor.diagrams] section of book.toml, arriving either
// as JSON via the mdbook protocol or as TOML in standalone mode) on top
// of the defaults. Keys with unexpected types are ignored, matching
// mdbook's own lenient table handling; an invalid output_format value is
// the one fatal case, caught before any document is touched.
func ConfigFromTable(table map[string]any) (Config, error) {
	cfg := DefaultConfig()
	if table == nil {
		return cfg, nil
	}

	if v, ok := table["output_format"].(string); ok {
		format, err := ParseOutputFormat(v)
		if err != nil {
			return Config{}, err
		}
		cfg.OutputFormat = format
	}
	if v, ok := table["language_prefix"].(string); ok {
		cfg.LanguagePrefix = v
	}
	if v, ok := table["kroki_url"].(string); ok {
		cfg.KrokiURL = v
	}
	if secs, ok := floatValue(table["kroki_timeout_secs"]); ok {
		cfg.KrokiTimeout = time.Duration(secs * float64(time.Second))
	}
	if v, ok := table["filename_prefix"].(string); ok {
		cfg.FilenamePrefix = v
	}
	if v, ok := table["files_path"].(string); ok && v != "" {
		cfg.FilesPath = v
	}
	return cfg, nil
}

// LoadTOML reads the [preprocessor.diagrams] table from a book.toml
// file. A file without that table yields the defaults.
func LoadTOML(path string) (Config, error) {
	var doc struct {
		Preprocessor map[string]map[string]any `toml:"preprocessor"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ConfigFromTable(doc.Preprocessor["diagrams"])
}

// floatValue accepts the numeric types JSON (float64) and TOML (int64,
// float64) decoding produce.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
