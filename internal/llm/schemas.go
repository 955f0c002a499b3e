package llm

import "github.com/invopop/jsonschema"

type Schema struct {
	Name        string
	Description string
	Schema      interface{}
}

func GenerateSchema[T any](name, description string) Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	schema.Title = name
	schema.Description = description
	return Schema{
		Schema:      schema,
		Name:        name,
		Description: description,
	}
}
