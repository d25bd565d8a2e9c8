// Package fonts resolves logical font names to renderable font faces.
//
// The manager searches a list of font directories (the first one is also the
// download target), falls back to system fonts via go-findfont, and finally
// to the embedded Go Regular face so rendering always has a usable font.
// Variations ("Bold", "Italic", ...) are resolved to sibling font files
// named <Base>-<Variation>.ttf, the convention used by Google Fonts releases.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/holgern/piltext/pkg/cache"
	"github.com/holgern/piltext/pkg/errors"
)

// DefaultSize is the font size used when neither the config nor the entry
// specifies one and fit-to-box sizing is not requested.
const DefaultSize = 15.0

// fontExtensions are the file types the manager recognizes.
var fontExtensions = map[string]bool{".ttf": true, ".otf": true}

// Manager loads, caches and downloads fonts.
// It is safe for concurrent use.
type Manager struct {
	dirs        []string
	defaultName string
	cache       cache.Cache

	mu    sync.Mutex
	fonts map[string]*truetype.Font // parsed fonts by file path ("" = embedded)
	faces map[faceKey]font.Face
}

type faceKey struct {
	path string
	size float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithDirs sets the font search directories. The first directory is the
// download target and the only one affected by DeleteAll.
func WithDirs(dirs ...string) Option {
	return func(m *Manager) {
		if len(dirs) > 0 {
			m.dirs = dirs
		}
	}
}

// WithDefaultFont sets the font used when a draw instruction names none.
func WithDefaultFont(name string) Option {
	return func(m *Manager) { m.defaultName = name }
}

// WithCache sets the byte cache used for font downloads.
func WithCache(c cache.Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// NewManager creates a font manager.
// Without options it manages ~/.piltext/fonts, has no default font name
// (the embedded Go Regular face is used), and downloads are uncached.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cache: cache.NewNullCache(),
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if dir, err := DefaultDir(); err == nil {
		m.dirs = []string{dir}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultDir returns the default managed font directory (~/.piltext/fonts).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".piltext", "fonts"), nil
}

// Dirs returns the font search directories.
func (m *Manager) Dirs() []string { return m.dirs }

// List returns the fonts found in the manager's directories and, when
// includeSystem is set, the system fonts discovered by go-findfont.
// With fullPath the absolute file paths are returned instead of base names.
func (m *Manager) List(fullPath, includeSystem bool) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !fontExtensions[strings.ToLower(filepath.Ext(path))] {
			return
		}
		entry := path
		if !fullPath {
			entry = filepath.Base(path)
		}
		if !seen[entry] {
			seen[entry] = true
			out = append(out, entry)
		}
	}

	for _, dir := range m.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				add(filepath.Join(dir, e.Name()))
			}
		}
	}

	if includeSystem {
		for _, path := range findfont.List() {
			add(path)
		}
	}

	sort.Strings(out)
	return out
}

// Resolve maps a logical font name and optional variation to a font file
// path. An empty path means the embedded default face.
//
// Resolution order:
//  1. <Base>-<Variation> in the manager's directories (when a variation is given)
//  2. <Base> in the manager's directories
//  3. the same two names via system font discovery
//  4. the manager's default font name, same procedure
//  5. the embedded face (only when no name was requested at all)
func (m *Manager) Resolve(name, variation string) (string, error) {
	if name == "" {
		name = m.defaultName
	}
	if name == "" {
		return "", nil // embedded default
	}

	for _, candidate := range candidateNames(name, variation) {
		if path, ok := m.findInDirs(candidate); ok {
			return path, nil
		}
	}
	for _, candidate := range candidateNames(name, variation) {
		if path, err := findfont.Find(candidate); err == nil {
			return path, nil
		}
	}

	return "", errors.New(errors.ErrCodeFontNotFound, "font %q (variation %q) not found in %v or system directories", name, variation, m.dirs)
}

// candidateNames expands a logical name into the file names to try,
// most specific first.
func candidateNames(name, variation string) []string {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".ttf"), ".otf")

	var names []string
	if variation != "" {
		names = append(names, base+"-"+variation+".ttf", base+"-"+variation+".otf")
	}
	names = append(names, base+".ttf", base+".otf")
	if name != base+".ttf" && name != base+".otf" && filepath.Ext(name) != "" {
		names = append(names, name)
	}
	return names
}

func (m *Manager) findInDirs(fileName string) (string, bool) {
	for _, dir := range m.dirs {
		path := filepath.Join(dir, fileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Face returns a renderable face for the given logical font at size.
// Parsed fonts and built faces are cached per manager.
func (m *Manager) Face(name, variation string, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}

	path, err := m.Resolve(name, variation)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{path: path, size: size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}

	f, ok := m.fonts[path]
	if !ok {
		data := goregular.TTF
		if path != "" {
			data, err = os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read font file %s", path)
			}
		}
		f, err = truetype.Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "cannot parse font %s", displayName(path))
		}
		m.fonts[path] = f
	}

	face := truetype.NewFace(f, &truetype.Options{Size: size})
	m.faces[key] = face
	return face, nil
}

// Variations lists the variations available for a font, derived from
// sibling files following the <Base>-<Variation> naming convention.
func (m *Manager) Variations(name string) ([]string, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidFont, "font name cannot be empty")
	}
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".ttf"), ".otf")
	base = strings.SplitN(base, "-", 2)[0]

	if _, err := m.Resolve(base, ""); err != nil {
		// Base file may be absent while variations exist; only fail when
		// nothing matches below either.
		if len(m.siblingVariations(base)) == 0 {
			return nil, err
		}
	}

	return m.siblingVariations(base), nil
}

func (m *Manager) siblingVariations(base string) []string {
	var out []string
	seen := make(map[string]bool)
	prefix := base + "-"

	for _, path := range m.List(true, true) {
		file := filepath.Base(path)
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		v := strings.TrimPrefix(file, prefix)
		v = strings.TrimSuffix(strings.TrimSuffix(v, ".ttf"), ".otf")
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// DeleteAll removes every font file from the managed (first) directory and
// returns the deleted file names. Other search directories are untouched.
func (m *Manager) DeleteAll() ([]string, error) {
	if len(m.dirs) == 0 {
		return nil, nil
	}
	dir := m.dirs[0]

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, e := range entries {
		if e.IsDir() || !fontExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return deleted, err
		}
		deleted = append(deleted, e.Name())
	}

	m.mu.Lock()
	m.fonts = make(map[string]*truetype.Font)
	m.faces = make(map[faceKey]font.Face)
	m.mu.Unlock()

	return deleted, nil
}

func displayName(path string) string {
	if path == "" {
		return "embedded default"
	}
	return filepath.Base(path)
}
