// Package skills loads the static list of skills shown in the bubble strip.
package skills

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/bubble"
)

//go:embed skills.yaml
var defaultYAML []byte

//go:embed skills.schema.json
var schemaJSON string

var ErrEmpty = errors.New("skills: catalog is empty")

var schema = jsonschema.MustCompileString("skills.schema.json", schemaJSON)

type Entry struct {
	Name  string `yaml:"name" json:"name"`
	Glyph string `yaml:"glyph" json:"glyph"`
}

type Catalog struct {
	Entries []Entry `yaml:"skills" json:"skills"`
}

// Skills returns the catalog in display order. Position in the list is the
// token id.
func (c Catalog) Skills() []bubble.Skill {
	out := make([]bubble.Skill, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = bubble.Skill{Label: e.Name, Glyph: e.Glyph}
	}
	return out
}

func (c Catalog) Len() int { return len(c.Entries) }

// Default returns the embedded catalog.
func Default() Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded skills.yaml: %v", err))
	}
	return c
}

// Load reads a catalog file, falling back to the embedded one when path is
// blank.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	c, err := Parse(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(raw []byte) (Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Catalog{}, fmt.Errorf("skills.yaml: %w", err)
	}
	if doc == nil {
		return Catalog{}, ErrEmpty
	}
	if err := validate(doc); err != nil {
		return Catalog{}, err
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("skills.yaml: %w", err)
	}
	if len(c.Entries) == 0 {
		return Catalog{}, ErrEmpty
	}
	return c, nil
}

// validate runs the YAML document through the JSON schema. The schema
// library wants encoding/json shaped values, hence the round trip.
func validate(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("skills.yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("skills.yaml: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("skills.yaml: %w", err)
	}
	return nil
}
