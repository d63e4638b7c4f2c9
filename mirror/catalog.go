package mirror

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Catalog is an in-memory Host keyed by qualified class name.
type Catalog struct {
	classes map[string]*ClassDescription
}

func NewCatalog() *Catalog {
	return &Catalog{classes: make(map[string]*ClassDescription)}
}

// Register adds or replaces a class description.
func (c *Catalog) Register(desc *ClassDescription) {
	c.classes[desc.Name] = desc
}

func (c *Catalog) LookupClass(name string) (*ClassDescription, error) {
	if desc, ok := c.classes[name]; ok {
		return desc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns all registered class names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	return names
}

// LoadFile reads one JSON class description from a file into the catalog
// and returns it.
func (c *Catalog) LoadFile(path string) (*ClassDescription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class description: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}

// Load reads one JSON class description from a reader into the catalog.
func (c *Catalog) Load(r io.Reader) (*ClassDescription, error) {
	var desc ClassDescription
	dec := json.NewDecoder(r)
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode class description: %w", err)
	}
	if desc.Name == "" {
		return nil, fmt.Errorf("class description has no name")
	}
	c.Register(&desc)
	return &desc, nil
}

// OpenCatalog is a Catalog that synthesizes an empty description for any
// name it does not know. It stands in for a host whose full classpath is
// not available, such as the CLI parsing a signature in isolation.
type OpenCatalog struct {
	*Catalog
}

func NewOpenCatalog() *OpenCatalog {
	return &OpenCatalog{Catalog: NewCatalog()}
}

func (c *OpenCatalog) LookupClass(name string) (*ClassDescription, error) {
	if desc, err := c.Catalog.LookupClass(name); err == nil {
		return desc, nil
	}
	desc := &ClassDescription{Name: name, SuperName: "java.lang.Object"}
	c.Register(desc)
	return desc, nil
}
