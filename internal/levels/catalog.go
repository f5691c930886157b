package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_levels.yaml
var defaultLevelsYAML []byte

// Catalog load failures. A missing or unreadable catalog and a catalog whose
// top-level structure is broken are fatal at startup. Running past the last
// level is not a failure of the content and is reported separately so callers
// can map it to game completion. A broken level body wraps ErrMalformedLevel.
var (
	ErrCatalogNotFound  = errors.New("levels: catalog not found")
	ErrCatalogMalformed = errors.New("levels: malformed catalog")
	ErrLevelOutOfRange  = errors.New("levels: level index out of range")
	ErrMalformedLevel   = errors.New("levels: malformed level")
)

// LevelError describes a level body that could not be turned into a Definition.
type LevelError struct {
	Index int    // Zero-based level index in the catalog
	Field string // Offending field path, e.g. "obstacles[2].radius"
	Err   error  // Underlying cause
}

func (e *LevelError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("levels: level %d: %s: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("levels: level %d: %v", e.Index, e.Err)
}

// Unwrap exposes both ErrMalformedLevel and the underlying cause.
func (e *LevelError) Unwrap() []error {
	return []error{ErrMalformedLevel, e.Err}
}

// Source is the read side of a level catalog, as consumed by the game.
type Source interface {
	// Count returns the number of levels in the catalog.
	Count() int
	// Load returns the level at index, ErrLevelOutOfRange past the end, or a
	// *LevelError when the level body is malformed.
	Load(index int) (Definition, error)
}

// Catalog is an ordered list of level bodies. Levels are decoded on demand,
// so one broken level does not prevent playing the ones before it.
type Catalog struct {
	Path   string // Source file, empty for in-memory catalogs
	levels []*yaml.Node
}

// Parse reads a catalog document with a top-level "levels" sequence.
// Both YAML and JSON documents are accepted.
func Parse(data []byte) (*Catalog, error) {
	var root struct {
		Levels yaml.Node `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogMalformed, err)
	}

	switch root.Levels.Kind {
	case 0:
		return nil, fmt.Errorf("%w: missing \"levels\" list", ErrCatalogMalformed)
	case yaml.SequenceNode:
	default:
		return nil, fmt.Errorf("%w: \"levels\" must be a list", ErrCatalogMalformed)
	}

	return &Catalog{levels: root.Levels.Content}, nil
}

// Open reads and parses the catalog file at path. A leading ~ is expanded to
// the user's home directory.
func Open(path string) (*Catalog, error) {
	resolved, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogNotFound, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, resolved)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCatalogNotFound, resolved, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	c.Path = resolved
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultLevelsYAML)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded catalog is broken: %v", err))
	}
	return c
}

// Resolve opens path, or the embedded catalog when path is empty.
func Resolve(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Open(path)
}

// Count returns the number of levels in the catalog.
func (c *Catalog) Count() int {
	return len(c.levels)
}

// Load decodes the level at index.
func (c *Catalog) Load(index int) (Definition, error) {
	if index < 0 || index >= len(c.levels) {
		return Definition{}, fmt.Errorf("%w: %d (catalog has %d levels)", ErrLevelOutOfRange, index, len(c.levels))
	}

	def, err := decodeLevel(c.levels[index])
	if err != nil {
		le := &LevelError{Index: index, Err: err}
		var fe *fieldError
		if errors.As(err, &fe) {
			le.Field = fe.field
			le.Err = errors.New(fe.msg)
		}
		return Definition{}, le
	}
	if def.Name == "" {
		def.Name = fmt.Sprintf("Level %d", index+1)
	}
	return def, nil
}

// Validate decodes every level and reports all malformed ones.
func (c *Catalog) Validate() error {
	var errs []error
	for i := range c.levels {
		if _, err := c.Load(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Names returns the display name of every level. Malformed levels are listed
// with their default name.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.levels))
	for i := range c.levels {
		def, err := c.Load(i)
		if err != nil {
			names[i] = fmt.Sprintf("Level %d", i+1)
			continue
		}
		names[i] = def.Name
	}
	return names
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
