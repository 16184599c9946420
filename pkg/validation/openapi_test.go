package validation_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-formsubmit/pkg/validation"
)

const contactSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "contact", "version": "1.0.0"},
  "paths": {
    "/contact": {
      "post": {
        "operationId": "submitContact",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "email", "message"],
                "properties": {
                  "name": {"type": "string", "minLength": 1},
                  "email": {"type": "string", "minLength": 3},
                  "message": {"type": "string", "minLength": 1},
                  "phone": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "ok"}
        }
      }
    }
  }
}`

func TestFromOpenAPIAcceptsValidPayload(t *testing.T) {
	validate, err := validation.FromOpenAPI(context.Background(), []byte(contactSpec), "submitContact")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	result := validate(map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "hello",
	})
	if !result.Valid {
		t.Fatalf("expected valid result, got %v", result.FieldErrors)
	}
}

func TestFromOpenAPIFlagsMissingFields(t *testing.T) {
	validate, err := validation.FromOpenAPI(context.Background(), []byte(contactSpec), "submitContact")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	result := validate(map[string]any{"name": "Ada"})
	if result.Valid {
		t.Fatal("expected invalid result for missing required fields")
	}
	if len(result.FieldErrors) == 0 {
		t.Fatal("expected field errors to be reported")
	}
}

func TestFromOpenAPIUnknownOperation(t *testing.T) {
	if _, err := validation.FromOpenAPI(context.Background(), []byte(contactSpec), "missingOp"); err == nil {
		t.Fatal("expected error for unknown operation id")
	}
}

func TestFromOpenAPIEmptyDocument(t *testing.T) {
	if _, err := validation.FromOpenAPI(context.Background(), nil, "submitContact"); err == nil {
		t.Fatal("expected error for empty document")
	}
}
