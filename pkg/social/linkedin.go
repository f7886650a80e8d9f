package social

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/megaphone-app/megaphone/pkg/secrets"
)

const restliVersion = "2.0.0"

// LinkedInAdapter publishes through the LinkedIn UGC posts API using an
// OAuth 2.0 member access token.
type LinkedInAdapter struct {
	client   *http.Client
	baseURL  string
	token    string
	personID string
}

// NewLinkedInAdapter creates a LinkedIn adapter from account credentials.
// Requires the access_token and person_id credentials.
func NewLinkedInAdapter(cfg Config, creds secrets.Credentials) *LinkedInAdapter {
	return &LinkedInAdapter{
		client:   &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:  cfg.LinkedInBaseURL,
		token:    creds["access_token"],
		personID: creds["person_id"],
	}
}

func (a *LinkedInAdapter) Platform() Platform {
	return PlatformLinkedIn
}

func (a *LinkedInAdapter) Post(ctx context.Context, text string) PostResult {
	if a.token == "" {
		return postFailure("missing access_token credential", true)
	}
	if a.personID == "" {
		return postFailure("missing person_id credential", true)
	}

	payload := map[string]any{
		"author":         "urn:li:person:" + a.personID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]string{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodPost, a.baseURL+"/v2/ugcPosts", a.headers(), payload)
	if err != nil {
		return postFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return postFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return postFailure(err.Error(), false)
	}
	if parsed.ID == "" {
		return postFailure("no post id in response", false)
	}

	return PostResult{
		Success: true,
		PostID:  parsed.ID,
		URL:     fmt.Sprintf("https://www.linkedin.com/feed/update/%s", parsed.ID),
	}
}

func (a *LinkedInAdapter) Delete(ctx context.Context, postID string) DeleteResult {
	if a.token == "" {
		return deleteFailure("missing access_token credential", true)
	}

	endpoint := a.baseURL + "/v2/ugcPosts/" + url.PathEscape(postID)
	status, body, err := sendJSON(ctx, a.client, http.MethodDelete, endpoint, a.headers(), nil)
	if err != nil {
		return deleteFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return deleteFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	return DeleteResult{Success: true}
}

func (a *LinkedInAdapter) Verify(ctx context.Context) VerifyResult {
	if a.token == "" {
		return verifyFailure("missing access_token credential", true)
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodGet, a.baseURL+"/v2/me", a.headers(), nil)
	if err != nil {
		return verifyFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return verifyFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	var parsed struct {
		ID        string `json:"id"`
		FirstName string `json:"localizedFirstName"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return verifyFailure(err.Error(), false)
	}

	return VerifyResult{Success: true, Handle: parsed.ID}
}

func (a *LinkedInAdapter) headers() map[string]string {
	return map[string]string{
		"Authorization":             "Bearer " + a.token,
		"X-Restli-Protocol-Version": restliVersion,
	}
}
