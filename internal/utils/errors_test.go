package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapInternalError("Error processing the PDF", cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "Error processing the PDF: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewBadRequestError("Invalid request body"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Invalid request body", appErr.Message)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"info":    "INFO",
		"bogus":   "INFO",
		"":        "INFO",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in).String(), in)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
