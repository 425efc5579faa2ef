package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// DictionaryVersion identifies the revision of the embedded template library.
const DictionaryVersion = "r1"

//go:embed assets/chunks/*.glsl assets/templates/*.glsl
var assets embed.FS

// Template is the raw text of one built-in program before pre-processing.
type Template struct {
	Vertex   string
	Fragment string
}

// dictionary is the implementation of the Dictionary interface.
type dictionary struct {
	version   string
	chunks    map[string]string
	templates map[string]Template
}

// Dictionary is the read-only table of named chunks and built-in templates that include directives and
// template ids resolve against. Implementations must be safe for concurrent reads.
type Dictionary interface {
	// Chunk retrieves the source of a named chunk.
	//
	// Parameters:
	//   - name: the chunk name used in include directives
	//
	// Returns:
	//   - string: the chunk source
	//   - bool: false if no chunk has that name
	Chunk(name string) (string, bool)

	// Template retrieves the raw stage sources of a built-in template.
	//
	// Parameters:
	//   - id: the template id
	//
	// Returns:
	//   - string: the vertex source
	//   - string: the fragment source
	//   - bool: false if no template has that id
	Template(id string) (vertex, fragment string, ok bool)

	// Chunks returns the names of every chunk.
	Chunks() []string

	// Templates returns the ids of every template.
	Templates() []string

	// Version returns the dictionary revision.
	Version() string
}

var _ Dictionary = &dictionary{}

// NewDictionary creates a Dictionary over caller-supplied tables. The maps are copied.
//
// Parameters:
//   - version: the revision label
//   - chunks: chunk sources keyed by name
//   - templates: templates keyed by id
//
// Returns:
//   - Dictionary: a new Dictionary instance
func NewDictionary(version string, chunks map[string]string, templates map[string]Template) Dictionary {
	d := &dictionary{
		version:   version,
		chunks:    make(map[string]string, len(chunks)),
		templates: make(map[string]Template, len(templates)),
	}
	for k, v := range chunks {
		d.chunks[k] = v
	}
	for k, v := range templates {
		d.templates[k] = v
	}
	return d
}

var (
	defaultOnce sync.Once
	defaultDict Dictionary
)

// DefaultDictionary returns the embedded template library. Chunks live in assets/chunks/<name>.glsl and
// templates in assets/templates/<id>_vert.glsl and <id>_frag.glsl.
//
// Returns:
//   - Dictionary: the shared embedded dictionary
func DefaultDictionary() Dictionary {
	defaultOnce.Do(func() {
		d, err := loadDictionary(assets)
		if err != nil {
			panic(fmt.Sprintf("shader: embedded dictionary is invalid: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}

// loadDictionary reads every chunk and template from fsys.
func loadDictionary(fsys fs.FS) (Dictionary, error) {
	chunks := make(map[string]string)
	chunkFiles, err := fs.Glob(fsys, "assets/chunks/*.glsl")
	if err != nil {
		return nil, err
	}
	for _, file := range chunkFiles {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read chunk %s: %w", file, err)
		}
		chunks[strings.TrimSuffix(path.Base(file), ".glsl")] = string(data)
	}

	templates := make(map[string]Template)
	templateFiles, err := fs.Glob(fsys, "assets/templates/*.glsl")
	if err != nil {
		return nil, err
	}
	for _, file := range templateFiles {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), ".glsl")
		switch {
		case strings.HasSuffix(name, "_vert"):
			id := strings.TrimSuffix(name, "_vert")
			t := templates[id]
			t.Vertex = string(data)
			templates[id] = t
		case strings.HasSuffix(name, "_frag"):
			id := strings.TrimSuffix(name, "_frag")
			t := templates[id]
			t.Fragment = string(data)
			templates[id] = t
		default:
			return nil, fmt.Errorf("template %s has no _vert or _frag suffix", file)
		}
	}
	for id, t := range templates {
		if t.Vertex == "" || t.Fragment == "" {
			return nil, fmt.Errorf("template %s is missing a stage", id)
		}
	}
	return &dictionary{version: DictionaryVersion, chunks: chunks, templates: templates}, nil
}

func (d *dictionary) Chunk(name string) (string, bool) {
	s, ok := d.chunks[name]
	return s, ok
}

func (d *dictionary) Template(id string) (string, string, bool) {
	t, ok := d.templates[id]
	return t.Vertex, t.Fragment, ok
}

func (d *dictionary) Chunks() []string {
	out := make([]string, 0, len(d.chunks))
	for k := range d.chunks {
		out = append(out, k)
	}
	return out
}

func (d *dictionary) Templates() []string {
	out := make([]string, 0, len(d.templates))
	for k := range d.templates {
		out = append(out, k)
	}
	return out
}

func (d *dictionary) Version() string {
	return d.version
}
