package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const schemaURL = "https://go.trai.ch/pkgmerge/pkgmerge.schema.json"

//go:embed pkgmerge.schema.json
var schemaSource []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// toDocument converts raw YAML into the generic JSON value the schema validates.
func toDocument(content []byte) (any, error) {
	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, err
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, err
	}
	return document, nil
}

// validateDocument checks a converted document against the embedded config schema.
// An empty document is accepted so the caller can report the missing merges itself.
func validateDocument(document any) error {
	if document == nil {
		return nil
	}

	sch, err := loadSchema()
	if err != nil {
		return err
	}
	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if schemaErr = compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); schemaErr != nil {
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
