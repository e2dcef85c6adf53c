package messaging

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	//go:embed schemas/request.schema.json
	requestSchemaJSON string

	//go:embed schemas/owner.schema.json
	ownerSchemaJSON string
)

// payloadSchemas holds the compiled schemas for every inbound payload.
type payloadSchemas struct {
	request *jsonschema.Schema
	owner   *jsonschema.Schema
}

func compileSchemas() (*payloadSchemas, error) {
	request, err := jsonschema.CompileString("request.schema.json", requestSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compiling request schema: %w", err)
	}
	owner, err := jsonschema.CompileString("owner.schema.json", ownerSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compiling owner schema: %w", err)
	}
	return &payloadSchemas{request: request, owner: owner}, nil
}

// decodeValidated checks data against schema and then decodes it into out.
func decodeValidated(schema *jsonschema.Schema, data []byte, out any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}
