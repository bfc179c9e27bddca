package api_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/momentics/localbuf/api"
)

func TestStructuredErrorSentinelMatch(t *testing.T) {
	err := api.NewError(api.ErrCodeResourceExhausted, "growth exceeds hard limit").
		WithContext("capacity", 16384)
	if !errors.Is(err, api.ErrResourceExhausted) {
		t.Error("structured exhaustion error did not match ErrResourceExhausted")
	}
	if errors.Is(err, api.ErrInvalidArgument) {
		t.Error("structured exhaustion error matched the wrong sentinel")
	}
	if !strings.Contains(err.Error(), "capacity") {
		t.Errorf("error text %q lost the context", err.Error())
	}
}

func TestStructuredErrorWithoutContext(t *testing.T) {
	err := api.NewError(api.ErrCodeInvalidArgument, "bad size")
	if err.Error() != "bad size" {
		t.Errorf("error text = %q, want bare message", err.Error())
	}
	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Error("structured argument error did not match ErrInvalidArgument")
	}
}
