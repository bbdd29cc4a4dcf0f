// Package manifest loads the YAML file describing which apps to check.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/hmallinger/storecheck/internal/store"
)

//go:embed schema.json
var schemaJSON string

var manifestSchema = compileSchema()

// App is one manifest entry. Region selects the App Store country or the
// Play Store locale depending on the platform.
type App struct {
	Name     string         `yaml:"name"`
	Platform store.Platform `yaml:"platform"`
	ID       string         `yaml:"id"`
	Version  string         `yaml:"version"`
	Region   string         `yaml:"region"`
}

// Manifest holds the apps to check in file order.
type Manifest struct {
	Apps []App `yaml:"apps"`
}

// Load reads the manifest at path, validates it against the embedded
// schema and decodes it. Validation runs first so schema errors name the
// offending field instead of surfacing as decode failures.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// validate checks the raw YAML document against the manifest schema. The
// document is round-tripped through JSON so the validator only sees JSON
// types.
func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode manifest for validation: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode manifest for validation: %w", err)
	}
	return manifestSchema.Validate(inst)
}

func compileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("manifest: embedded schema is not valid JSON: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		panic(fmt.Sprintf("manifest: embedded schema rejected: %v", err))
	}
	return c.MustCompile("schema.json")
}
