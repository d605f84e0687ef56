package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/headroom/internal/item"
)

// Decoder parses a catalog file into entries.
type Decoder interface {
	Decode(r io.Reader) ([]Entry, error)
	// Extensions lists the file extensions handled, with the leading dot.
	Extensions() []string
}

// Registry maps file extensions to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder for each of its extensions. Panics on duplicate
// extension.
func (r *Registry) Register(d Decoder) {
	for _, ext := range d.Extensions() {
		key := strings.ToLower(ext)
		if _, ok := r.decoders[key]; ok {
			panic("duplicate catalog extension: " + key)
		}
		r.decoders[key] = d
	}
}

// ForPath returns the decoder for path's extension, or nil.
func (r *Registry) ForPath(path string) Decoder {
	return r.decoders[strings.ToLower(filepath.Ext(path))]
}

// DefaultRegistry returns a registry with the YAML and TOML decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(YAMLDecoder{})
	r.Register(TOMLDecoder{})
	return r
}

// YAMLDecoder reads catalog.yaml files.
type YAMLDecoder struct{}

func (YAMLDecoder) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAMLDecoder) Decode(r io.Reader) ([]Entry, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing yaml catalog: %w", err)
	}
	return f.Items, nil
}

// TOMLDecoder reads catalog.toml files with one [[items]] table per entry.
type TOMLDecoder struct{}

func (TOMLDecoder) Extensions() []string { return []string{".toml"} }

func (TOMLDecoder) Decode(r io.Reader) ([]Entry, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("parsing toml catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing toml catalog: unknown key %q", undecoded[0].String())
	}
	return f.Items, nil
}

// ReadEntries decodes the catalog at path using the default registry.
func ReadEntries(path string) ([]Entry, error) {
	dec := DefaultRegistry().ForPath(path)
	if dec == nil {
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	entries, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

// Load reads, validates and builds the catalog at path.
func Load(path string) ([]item.Item, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	items, err := Build(entries)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return items, nil
}

// Save writes entries to path as YAML.
func Save(path string, entries []Entry) error {
	data, err := yaml.Marshal(File{Items: entries})
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
