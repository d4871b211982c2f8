package knowledge

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// The knowledge file must be a JSON object whose values are all strings.
// Any other top-level shape is malformed content.
const fileSchema = `{
	"type": "object",
	"additionalProperties": {"type": "string"}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// validateShape checks raw file content against the knowledge file schema.
// It returns an error for invalid JSON as well as for valid JSON of the
// wrong shape, with the schema violations listed.
func validateShape(data []byte) error {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(fileSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("compile knowledge schema: %w", schemaErr)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("knowledge file must be an object of strings:\n- %s", strings.Join(errs, "\n- "))
}
