package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Stored records are validated against a JSON Schema before decoding so
// that structurally broken records (wrong types, missing fields) are
// skipped individually instead of failing the whole load.

//go:embed todo.schema.json
var todoSchemaSource string

//go:embed list.schema.json
var listSchemaSource string

var (
	todoSchema = jsonschema.MustCompileString("todo.schema.json", todoSchemaSource)
	listSchema = jsonschema.MustCompileString("list.schema.json", listSchemaSource)
)

func validateRecord(schema *jsonschema.Schema, raw json.RawMessage) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
