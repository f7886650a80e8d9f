package social

import (
	"context"
	"fmt"
	"net/http"

	"github.com/megaphone-app/megaphone/pkg/secrets"
)

// TwitterAdapter publishes through the Twitter v2 API using an OAuth 2.0
// user access token.
type TwitterAdapter struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewTwitterAdapter creates a Twitter adapter from account credentials.
// Requires the access_token credential.
func NewTwitterAdapter(cfg Config, creds secrets.Credentials) *TwitterAdapter {
	return &TwitterAdapter{
		client:  &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: cfg.TwitterBaseURL,
		token:   creds["access_token"],
	}
}

func (a *TwitterAdapter) Platform() Platform {
	return PlatformTwitter
}

func (a *TwitterAdapter) Post(ctx context.Context, text string) PostResult {
	if a.token == "" {
		return postFailure("missing access_token credential", true)
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodPost, a.baseURL+"/2/tweets", a.headers(), map[string]string{
		"text": text,
	})
	if err != nil {
		return postFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return postFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return postFailure(err.Error(), false)
	}
	if parsed.Data.ID == "" {
		return postFailure("no tweet id in response", false)
	}

	return PostResult{
		Success: true,
		PostID:  parsed.Data.ID,
		URL:     fmt.Sprintf("https://twitter.com/i/web/status/%s", parsed.Data.ID),
	}
}

func (a *TwitterAdapter) Delete(ctx context.Context, postID string) DeleteResult {
	if a.token == "" {
		return deleteFailure("missing access_token credential", true)
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodDelete, a.baseURL+"/2/tweets/"+postID, a.headers(), nil)
	if err != nil {
		return deleteFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return deleteFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	return DeleteResult{Success: true}
}

func (a *TwitterAdapter) Verify(ctx context.Context) VerifyResult {
	if a.token == "" {
		return verifyFailure("missing access_token credential", true)
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodGet, a.baseURL+"/2/users/me", a.headers(), nil)
	if err != nil {
		return verifyFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return verifyFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	var parsed struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return verifyFailure(err.Error(), false)
	}

	return VerifyResult{Success: true, Handle: parsed.Data.Username}
}

func (a *TwitterAdapter) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.token}
}
