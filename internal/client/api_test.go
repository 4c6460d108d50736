package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-to-json/internal/models"
)

func TestAPIClientConvert(t *testing.T) {
	var got models.ConvertRequest
	var path, contentType string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"json":"{\"a\":1}"}`))
	}))
	defer ts.Close()

	out, err := NewAPIClient(ts.URL+"/", time.Second).Convert(context.Background(), "JVBERi0=")
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`, out)
	assert.Equal(t, "/api/convert", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "JVBERi0=", got.File)
}

func TestAPIClientEndpointError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Error processing the PDF"}`))
	}))
	defer ts.Close()

	_, err := NewAPIClient(ts.URL, time.Second).Convert(context.Background(), "x")

	var endpointErr *EndpointError
	require.True(t, errors.As(err, &endpointErr))
	assert.Equal(t, http.StatusInternalServerError, endpointErr.StatusCode)
	assert.Equal(t, "Error processing the PDF", endpointErr.Message)
}

func TestAPIClientMethodNotAllowed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"message":"Only POST requests allowed"}`))
	}))
	defer ts.Close()

	_, err := NewAPIClient(ts.URL, time.Second).Convert(context.Background(), "x")

	var endpointErr *EndpointError
	require.True(t, errors.As(err, &endpointErr))
	assert.Empty(t, endpointErr.Message)
}

func TestAPIClientUndecodableResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer ts.Close()

	_, err := NewAPIClient(ts.URL, time.Second).Convert(context.Background(), "x")
	require.Error(t, err)

	var endpointErr *EndpointError
	assert.False(t, errors.As(err, &endpointErr))
}
