package light

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingelabs/tinge/internal/colour"
)

func TestHTTPActuatorApply(t *testing.T) {
	var received stateCommand
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		path = r.URL.Path

		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	actuator := NewHTTPActuator(server.URL)
	actuator.Brightness = 80

	red := colour.RGB{R: 255, G: 0, B: 0}
	applied, err := actuator.Apply(context.Background(), "light.sofa", red, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, red, applied)
	assert.Equal(t, "/lights/light.sofa/state", path)
	assert.Equal(t, red, received.Color)
	assert.InDelta(t, 2.0, received.Transition, 0.001)
	assert.Equal(t, 80, received.Brightness)
	assert.InDelta(t, 0.0, received.Hue, 0.5)
	assert.InDelta(t, 100.0, received.Saturation, 0.5)
}

func TestHTTPActuatorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind FailureKind
	}{
		{name: "not found", status: http.StatusNotFound, wantKind: FailureNotFound},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantKind: FailureUnavailable},
		{name: "unsupported mode", status: http.StatusUnprocessableEntity, wantKind: FailureUnsupportedColorMode},
		{name: "server error", status: http.StatusInternalServerError, wantKind: FailureCallFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			actuator := NewHTTPActuator(server.URL)
			_, err := actuator.Apply(context.Background(), "light.sofa", colour.RGB{R: 1}, time.Second)

			failure := AsFailure(err)
			require.NotNil(t, failure)
			assert.Equal(t, tt.wantKind, failure.Kind)
		})
	}
}

func TestHTTPActuatorBridgeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"error","error":"bulb rebooting"}`))
	}))
	defer server.Close()

	actuator := NewHTTPActuator(server.URL)
	_, err := actuator.Apply(context.Background(), "light.sofa", colour.RGB{R: 1}, time.Second)

	failure := AsFailure(err)
	require.NotNil(t, failure)
	assert.Equal(t, FailureCallFailed, failure.Kind)
	assert.Contains(t, failure.Message, "bulb rebooting")
}

func TestHTTPActuatorUnreachable(t *testing.T) {
	actuator := NewHTTPActuator("http://127.0.0.1:1")
	_, err := actuator.Apply(context.Background(), "light.sofa", colour.RGB{R: 1}, time.Second)

	failure := AsFailure(err)
	require.NotNil(t, failure)
	assert.Equal(t, FailureUnavailable, failure.Kind)
}

func TestHTTPActuatorSupport(t *testing.T) {
	lookups := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lookups++
		switch r.URL.Path {
		case "/lights/light.rgb":
			_, _ = w.Write([]byte(`{"color_mode":"rgb"}`))
		case "/lights/light.white":
			_, _ = w.Write([]byte(`{"color_mode":"brightness"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	actuator := NewHTTPActuator(server.URL)

	assert.Equal(t, SupportsRGB, actuator.Support("light.rgb"))
	assert.Equal(t, Unsupported, actuator.Support("light.white"))

	// Capability is cached: a second lookup issues no request.
	before := lookups
	assert.Equal(t, SupportsRGB, actuator.Support("light.rgb"))
	assert.Equal(t, before, lookups)
}
