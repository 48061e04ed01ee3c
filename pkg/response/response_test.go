package response_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/courtkeeper/courtside/internal/repository"
	"github.com/courtkeeper/courtside/internal/service"
	"github.com/courtkeeper/courtside/pkg/response"
)

// fakeInvalid replicates aggregated validation error semantics.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid input", &fakeInvalid{fe: []service.FieldError{{Field: "name", Message: "must not be empty"}}}, http.StatusBadRequest, "invalid_input"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if payload.Error != tc.wantError {
				t.Fatalf("error = %q, want %q", payload.Error, tc.wantError)
			}
		})
	}
}

func TestMapError_FieldErrorsPropagate(t *testing.T) {
	err := &fakeInvalid{fe: []service.FieldError{{Field: "number", Message: "taken"}}}
	_, payload := response.MapError(err)
	if len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "number" {
		t.Fatalf("field errors not propagated: %+v", payload.FieldErrors)
	}
}

// Internal detail must never leak into the unauthorized payload.
func TestMapError_UnauthorizedIsOpaque(t *testing.T) {
	_, payload := response.MapError(service.ErrUnauthorized)
	if payload.Message != "incorrect password" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}
