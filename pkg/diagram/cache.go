package diagram

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores rendered diagram artifacts as files, named by a digest of
// their inputs. Entries are never evicted; stale artifacts persist until
// the directory is cleared externally (see the cache subcommand).
//
// Concurrent writers racing on the same key are not guarded. This is
// safe because the rendered content is deterministic per key, so racing
// writers converge on identical bytes.
type Cache struct {
	dir    string
	prefix string
}

// NewCache creates a Cache rooted at dir, creating the directory if it
// does not exist. The directory is resolved to an absolute path so that
// emitted image references remain valid regardless of the renderer's
// working directory.
func NewCache(dir, prefix string) (*Cache, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", abs, err)
	}
	return &Cache{dir: abs, prefix: prefix}, nil
}

// Dir returns the absolute path of the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Key computes the digest identifying a rendered artifact: lowercase hex
// SHA-256 over the raw diagram source, then the format tag, then the
// kind tag. Byte-identical inputs are required for a hit; no
// normalization is applied.
func Key(source string, format OutputFormat, kind Kind) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte(format.String()))
	h.Write([]byte(kind.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// Path returns the artifact path for the given inputs, whether or not an
// entry exists there.
func (c *Cache) Path(source string, format OutputFormat, kind Kind) string {
	filename := c.prefix + Key(source, format, kind) + "." + format.Ext()
	return filepath.Join(c.dir, filename)
}

// Lookup returns the cached artifact for the given inputs. A missing or
// unreadable file is a miss, not an error; whatever bytes are found at
// the expected path are trusted to be a valid render.
func (c *Cache) Lookup(source string, format OutputFormat, kind Kind) (string, []byte, bool) {
	path := c.Path(source, format, kind)
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, false
	}
	return path, data, true
}

// Store writes an artifact to its computed path, overwriting any
// existing entry. Write failures are hard errors for the enclosing run.
func (c *Cache) Store(source string, format OutputFormat, kind Kind, data []byte) (string, error) {
	path := c.Path(source, format, kind)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write rendered diagram to %s: %w", path, err)
	}
	return path, nil
}
