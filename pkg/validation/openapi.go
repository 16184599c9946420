package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI derives a validator from the JSON request body schema of the
// named operation inside an OpenAPI 3 document. Schema violations are mapped
// to field-keyed messages using the error's JSON pointer; violations without
// a usable pointer land under the "_form" key so messages are never lost.
func FromOpenAPI(ctx context.Context, doc []byte, operationID string) (Func, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(doc) == 0 {
		return nil, errors.New("validation: openapi document is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return nil, errors.New("validation: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return nil, fmt.Errorf("validation: load openapi document: %w", err)
	}

	schema, err := requestSchemaFor(spec, operationID)
	if err != nil {
		return nil, err
	}

	return func(data map[string]any) Result {
		payload := make(map[string]any, len(data))
		for key, value := range data {
			payload[key] = value
		}
		err := schema.VisitJSON(payload, openapi3.MultiErrors())
		if err == nil {
			return Result{Valid: true}
		}
		fieldErrors := make(map[string][]string)
		collectSchemaErrors(err, fieldErrors)
		if len(fieldErrors) == 0 {
			fieldErrors["_form"] = []string{err.Error()}
		}
		return Result{Valid: false, FieldErrors: fieldErrors}
	}, nil
}

func requestSchemaFor(spec *openapi3.T, operationID string) (*openapi3.Schema, error) {
	if spec.Paths == nil {
		return nil, errors.New("validation: openapi document has no paths")
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Post, item.Put, item.Patch, item.Get, item.Delete,
		} {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			return schemaFromRequestBody(operation.RequestBody, operationID)
		}
	}
	return nil, fmt.Errorf("validation: operation %q not found", operationID)
}

func schemaFromRequestBody(ref *openapi3.RequestBodyRef, operationID string) (*openapi3.Schema, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("validation: operation %q has no request body", operationID)
	}
	media, ok := ref.Value.Content["application/json"]
	if !ok || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("validation: operation %q has no json request schema", operationID)
	}
	return media.Schema.Value, nil
}

func collectSchemaErrors(err error, dest map[string][]string) {
	if err == nil {
		return
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			collectSchemaErrors(item, dest)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := fieldFromPointer(schemaErr.JSONPointer())
		message := strings.TrimSpace(schemaErr.Reason)
		if message == "" {
			message = schemaErr.Error()
		}
		if field == "" {
			field = "_form"
		}
		dest[field] = append(dest[field], message)
		return
	}

	dest["_form"] = append(dest["_form"], err.Error())
}

func fieldFromPointer(pointer []string) string {
	for _, segment := range pointer {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
