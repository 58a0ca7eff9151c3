package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/export"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
		wantDetail  string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "transport failure",
			err:         &catalog.NetworkError{Op: "list", Err: errors.New("dial tcp: no such host")},
			wantCode:    "NET001",
			wantMessage: "Unable to reach the product catalog",
		},
		{
			name:        "server error keeps payload",
			err:         &catalog.NetworkError{Op: "update", StatusCode: 500, Body: []byte("boom")},
			wantCode:    "NET002",
			wantMessage: "The product catalog failed to answer",
			wantDetail:  "boom",
		},
		{
			name: "rejected create keeps payload verbatim",
			err: fmt.Errorf("create product: %w", &catalog.NetworkError{
				Op:         "create",
				StatusCode: 400,
				Body:       []byte(`{"message":["price must be a positive number"]}`),
			}),
			wantCode:    "NET003",
			wantMessage: "The product catalog rejected the request",
			wantDetail:  `{"message":["price must be a positive number"]}`,
		},
		{
			name:        "client timeout",
			err:         &catalog.NetworkError{Op: "list", Err: context.DeadlineExceeded},
			wantCode:    "NET004",
			wantMessage: "The product catalog took too long to answer",
		},
		{
			name:        "validation error",
			err:         &ValidationError{Fields: []FieldError{{Field: "title", Tag: "required"}}},
			wantCode:    "VAL001",
			wantMessage: "Some fields are invalid",
		},
		{
			name:        "empty export",
			err:         export.ErrEmptyExport,
			wantCode:    "EXP001",
			wantMessage: "There is no data to export",
		},
		{
			name:        "wrapped unsortable column",
			err:         fmt.Errorf("sort: %w", view.ErrUnsortableColumn),
			wantCode:    "VIEW001",
			wantMessage: "This column cannot be sorted",
		},
		{
			name:        "invalid page size",
			err:         view.ErrInvalidPageSize,
			wantCode:    "VIEW002",
			wantMessage: "Invalid page size",
		},
		{
			name:        "product not found",
			err:         fmt.Errorf("update product 9: %w", ErrProductNotFound),
			wantCode:    "PRD001",
			wantMessage: "Product not found in the current list",
		},
		{
			name:        "catalog busy",
			err:         ErrCatalogBusy,
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "rate limit text",
			err:         errors.New("Rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "request cancelled",
			err:         context.Canceled,
			wantCode:    "REQ001",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError().Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.Detail != tt.wantDetail {
				t.Errorf("MapError().Detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}

func TestMapError_ValidationActionListsFields(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "title", Tag: "required"},
		{Field: "price", Tag: "price"},
	}}

	got := MapError(err)
	want := "title is required; price must be a non-negative number"
	if got.Action != want {
		t.Errorf("Action = %q, want %q", got.Action, want)
	}
}

func TestMapError_AllHaveActions(t *testing.T) {
	for _, s := range sentinelMessages {
		if s.msg.Action == "" {
			t.Errorf("sentinel %q has no action", s.msg.Code)
		}
	}
	for _, p := range errorPatterns {
		if p.msg.Action == "" {
			t.Errorf("pattern %q has no action", p.pattern)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"network", &catalog.NetworkError{Op: "list", StatusCode: 503}, http.StatusBadGateway},
		{"validation", &ValidationError{}, http.StatusUnprocessableEntity},
		{"not found", ErrProductNotFound, http.StatusNotFound},
		{"session", ErrSessionExpired, http.StatusGone},
		{"busy", ErrCatalogBusy, http.StatusServiceUnavailable},
		{"empty export", export.ErrEmptyExport, http.StatusBadRequest},
		{"page size", view.ErrInvalidPageSize, http.StatusBadRequest},
		{"unknown action", ErrUnknownAction, http.StatusBadRequest},
		{"other", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
