package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// permanentStatus reports whether an HTTP status indicates a credential
// failure that retrying cannot fix.
func permanentStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func successStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// apiError extracts a readable message from a platform error response.
// Platforms wrap errors differently; fall back to the raw body.
func apiError(body []byte, status string) string {
	var parsed struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Detail != "":
			return parsed.Detail
		case parsed.Title != "":
			return parsed.Title
		}
	}
	if len(body) > 0 {
		return fmt.Sprintf("%s: %s", status, bytes.TrimSpace(body))
	}
	return status
}

func unmarshalResult(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sendJSON issues a request with an optional JSON payload and returns the
// response status code and body. Transport failures return an error;
// non-success statuses do not.
func sendJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, data, nil
}
