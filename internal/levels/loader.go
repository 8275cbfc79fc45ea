// Package levels provides level pack loading for Decompose.
// This package depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/decompose/internal/levels/formats"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var builtinFS embed.FS

// Pack is a loaded level pack.
type Pack struct {
	formats.Pack
	Catalog  *puzzle.Catalog
	FilePath string // Empty for built-in packs
}

func init() {
	entries, err := fs.ReadDir(builtinFS, "packs")
	if err != nil {
		panic(fmt.Sprintf("levels: reading embedded packs: %v", err))
	}

	for _, e := range entries {
		name := "packs/" + e.Name()
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("levels: reading %s: %v", name, err))
		}

		id, title := peekHeader(data, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		registry.Register(id, title, func() (*puzzle.Catalog, error) {
			c, _, err := formats.ParseYAML(data)
			return c, err
		})
	}
}

// peekHeader reads a pack's id and name without building its catalog, so
// registration stays cheap. Falls back to the file name.
func peekHeader(data []byte, fallback string) (id, title string) {
	var head struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil || head.ID == "" {
		return fallback, head.Name
	}
	return head.ID, head.Name
}

// LoadFile loads a single pack file.
func LoadFile(p string) (Pack, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(filepath.Ext(p))
	c, meta, err := parseByExtension(data, ext)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if meta.ID == "" {
		meta.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}

	return Pack{Pack: meta, Catalog: c, FilePath: p}, nil
}

// RegisterFile loads a pack file and adds it to the registry.
// Returns the pack ID it was registered under.
func RegisterFile(p string) (string, error) {
	pack, err := LoadFile(p)
	if err != nil {
		return "", err
	}
	c := pack.Catalog
	if err := registry.Add(pack.ID, pack.Name, func() (*puzzle.Catalog, error) { return c, nil }); err != nil {
		return "", err
	}
	return pack.ID, nil
}

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Files that fail to parse are returned in skipped rather than aborting the scan.
// Packs are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() (packs []Pack, skipped map[string]error, err error) {
	skipped = make(map[string]error)

	err = filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		pack, err := LoadFile(p)
		if err != nil {
			skipped[p] = err
			return nil
		}

		packs = append(packs, pack)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})

	return packs, skipped, nil
}

// RegisterAll loads every pack under Root and adds it to the registry. A
// missing directory is not an error. Packs whose ID is already taken are
// reported in skipped.
func (l *Loader) RegisterAll() (ids []string, skipped map[string]error, err error) {
	if _, statErr := os.Stat(l.Root); errors.Is(statErr, fs.ErrNotExist) {
		return nil, map[string]error{}, nil
	}

	packs, skipped, err := l.LoadAll()
	if err != nil {
		return nil, nil, err
	}

	for _, p := range packs {
		c := p.Catalog
		if err := registry.Add(p.ID, p.Name, func() (*puzzle.Catalog, error) { return c, nil }); err != nil {
			skipped[p.FilePath] = err
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids, skipped, nil
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
func parseByExtension(data []byte, ext string) (*puzzle.Catalog, formats.Pack, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, formats.Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
