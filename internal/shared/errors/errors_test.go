package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetType(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"NotFound", NotFoundf("system %d not found", 4), ErrorTypeNotFound},
		{"Validation", Validation("bad"), ErrorTypeValidation},
		{"Wrapped validation", fmt.Errorf("outer: %w", WrapValidation("bad", cause)), ErrorTypeValidation},
		{"Unauthorized", Unauthorized("no token"), ErrorTypeUnauthorized},
		{"External", WrapExternal("redis", cause), ErrorTypeExternal},
		{"Plain error", cause, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetType(tt.err); got != tt.want {
				t.Errorf("GetType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapInternal("failed to save galaxy", cause)

	if !Is(err, cause) {
		t.Errorf("Expected wrapped cause to be found")
	}
	if got, want := err.Error(), "failed to save galaxy: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
