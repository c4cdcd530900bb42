package streams

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/smazurov/streamroles/internal/logging"
)

// Client is an HTTP client for a camera's stream enumeration API.
// It implements Lister against the camera endpoint
// GET {base}/api/streams, which returns a JSON array of Descriptor.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new camera API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logging.GetLogger("camera"),
	}
}

// ListStreamOptions queries the camera for its currently offered stream
// variants. A nil slice is never returned together with a nil error.
func (c *Client) ListStreamOptions(ctx context.Context) ([]Descriptor, error) {
	url := c.baseURL + "/api/streams"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewError(ErrCodeCameraUnreachable, "failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Camera stream query failed", "url", url, "error", err)
		return nil, NewError(ErrCodeCameraUnreachable, "camera query failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Camera returned unexpected status", "url", url, "status", resp.StatusCode)
		return nil, NewError(ErrCodeCameraStatus, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var list []Descriptor
	if decodeErr := json.NewDecoder(resp.Body).Decode(&list); decodeErr != nil {
		return nil, NewError(ErrCodeBadPayload, "failed to decode stream list", decodeErr)
	}

	if list == nil {
		list = []Descriptor{}
	}

	c.logger.Debug("Fetched stream options", "count", len(list))
	return list, nil
}
