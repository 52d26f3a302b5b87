package light

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tingelabs/tinge/internal/colour"
)

// DefaultHTTPTimeout is the default HTTP client timeout.
const DefaultHTTPTimeout = 5 * time.Second

// HTTPActuator drives lights through a JSON-over-HTTP bridge. Each apply is
// a POST to {base}/lights/{target}/state; capability is a GET to
// {base}/lights/{target}, fetched once per target and cached.
type HTTPActuator struct {
	BaseURL    string
	HTTPClient *http.Client

	// Brightness (1-100) rides along with every state change when set.
	Brightness int

	mu           sync.Mutex
	capabilities map[string]ColorSupport
}

// NewHTTPActuator creates an HTTPActuator for the given bridge base URL.
func NewHTTPActuator(baseURL string) *HTTPActuator {
	return &HTTPActuator{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
		capabilities: make(map[string]ColorSupport),
	}
}

// stateCommand is the JSON body of a state change.
type stateCommand struct {
	Color      colour.RGB `json:"color"`
	Hue        float64    `json:"hue"`
	Saturation float64    `json:"saturation"`
	Transition float64    `json:"transition_seconds"`
	Brightness int        `json:"brightness,omitempty"`
}

// stateResponse is the JSON reply of a state change.
type stateResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// lightInfo is the JSON reply of a capability lookup.
type lightInfo struct {
	ColorMode string `json:"color_mode"`
}

// Support reports the cached colour capability of a target, fetching it from
// the bridge on first use. Lookup failures are optimistic: the subsequent
// Apply will surface the real error.
func (a *HTTPActuator) Support(targetID string) ColorSupport {
	a.mu.Lock()
	if support, ok := a.capabilities[targetID]; ok {
		a.mu.Unlock()
		return support
	}
	a.mu.Unlock()

	support := a.fetchSupport(targetID)

	a.mu.Lock()
	a.capabilities[targetID] = support
	a.mu.Unlock()
	return support
}

func (a *HTTPActuator) fetchSupport(targetID string) ColorSupport {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/lights/%s", a.BaseURL, targetID), nil)
	if err != nil {
		return SupportsRGB
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return SupportsRGB
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SupportsRGB
	}

	var info lightInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return SupportsRGB
	}
	if info.ColorMode != "" && info.ColorMode != "rgb" {
		return Unsupported
	}
	return SupportsRGB
}

// Apply posts a state change for the target and maps the reply onto the
// failure taxonomy.
func (a *HTTPActuator) Apply(ctx context.Context, targetID string, c colour.RGB, transition time.Duration) (colour.RGB, error) {
	hue, saturation := c.HS()
	command := stateCommand{
		Color:      c,
		Hue:        hue,
		Saturation: saturation,
		Transition: transition.Seconds(),
		Brightness: a.Brightness,
	}

	body, err := json.Marshal(command)
	if err != nil {
		return colour.RGB{}, NewFailure(FailureCallFailed, "failed to encode state command: %v", err)
	}

	url := fmt.Sprintf("%s/lights/%s/state", a.BaseURL, targetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return colour.RGB{}, NewFailure(FailureCallFailed, "failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return colour.RGB{}, NewFailure(FailureTimeout, "state change timed out for %q", targetID)
		}
		return colour.RGB{}, NewFailure(FailureUnavailable, "bridge unreachable: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to body decode.
	case http.StatusNotFound:
		return colour.RGB{}, NewFailure(FailureNotFound, "target %q does not exist", targetID)
	case http.StatusServiceUnavailable:
		return colour.RGB{}, NewFailure(FailureUnavailable, "target %q is unavailable", targetID)
	case http.StatusUnprocessableEntity:
		return colour.RGB{}, NewFailure(FailureUnsupportedColorMode, "target %q rejected the colour mode", targetID)
	default:
		return colour.RGB{}, NewFailure(FailureCallFailed, "unexpected status %d for %q", resp.StatusCode, targetID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return colour.RGB{}, NewFailure(FailureCallFailed, "failed to read response: %v", err)
	}

	var reply stateResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		return colour.RGB{}, NewFailure(FailureCallFailed, "invalid response: %v", err)
	}
	if reply.Status != "ok" {
		return colour.RGB{}, NewFailure(FailureCallFailed, "bridge error: %s", reply.Error)
	}

	return c, nil
}
