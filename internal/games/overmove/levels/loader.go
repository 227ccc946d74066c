// Package levels provides level loading functionality for OverMove.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete, validated level.
type Level struct {
	ID           string
	Name         string
	Def          *core.Level
	GoalStart    core.Pos
	HazardStarts []core.Pos
	Hints        []formats.Hint
	Metadata     map[string]string
	FilePath     string
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the level pack compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embed pattern guarantees the directory
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. A malformed
// level file fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(name))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", name, err)
		}

		level, err := build(data, name, filepath.Join(l.Root, filepath.FromSlash(name)))
		if err != nil {
			return err
		}

		if prev, ok := seen[level.ID]; ok {
			return fmt.Errorf("duplicate level id %q in %s and %s", level.ID, prev, level.FilePath)
		}
		seen[level.ID] = level.FilePath

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file from disk.
func (l *Loader) LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", filePath, err)
	}
	level, err := build(data, filepath.Base(filePath), filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: %w", err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// build parses, validates and names a level. Files without an id are
// identified by their base name.
func build(data []byte, name, filePath string) (Level, error) {
	ext := strings.ToLower(path.Ext(name))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", filePath, err)
	}

	def, err := parsed.Definition()
	if err != nil {
		return Level{}, fmt.Errorf("invalid level %s: %w", filePath, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	title := parsed.Name
	if title == "" {
		title = id
	}

	return Level{
		ID:           id,
		Name:         title,
		Def:          def,
		GoalStart:    parsed.GoalStart,
		HazardStarts: parsed.HazardStarts,
		Hints:        parsed.Hints,
		Metadata:     parsed.Metadata,
		FilePath:     filePath,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".json":
		return formats.ParseJSON(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
