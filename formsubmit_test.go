package formsubmit_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	formsubmit "github.com/goliatone/go-formsubmit"
	"github.com/goliatone/go-formsubmit/pkg/submission"
	"github.com/goliatone/go-formsubmit/pkg/transport"
)

func TestFacadeSubmitRoundTrip(t *testing.T) {
	client, err := formsubmit.New("https://api.example.com/contact",
		submission.WithValidator(formsubmit.ContactValidator()),
		submission.WithTransport(transport.Func(func(ctx context.Context, req transport.Request) (*transport.Response, error) {
			header := make(http.Header)
			header.Set("Content-Type", "application/json")
			return &transport.Response{StatusCode: http.StatusOK, Header: header, Body: []byte(`{"ok":true}`)}, nil
		})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := client.Submit(context.Background(), map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "hello",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", result.StatusCode)
	}
}

func TestFacadeRendering(t *testing.T) {
	sub := formsubmit.Submission{Name: "Ada", Email: "ada@example.com", Message: "hello"}

	html, err := formsubmit.RenderHTML(sub)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "Ada") {
		t.Fatal("rendered HTML missing submission data")
	}

	text := formsubmit.RenderText(sub)
	if !strings.Contains(text, "Name: Ada") {
		t.Fatal("rendered text missing submission data")
	}
}
