package social

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/megaphone-app/megaphone/pkg/secrets"
)

const blueskyCollection = "app.bsky.feed.post"

// BlueskyAdapter publishes through the AT Protocol XRPC API. A session is
// created lazily from the handle and app password and reused for the life
// of the adapter.
type BlueskyAdapter struct {
	client     *http.Client
	baseURL    string
	identifier string
	password   string
	accessJWT  string
}

// NewBlueskyAdapter creates a Bluesky adapter from account credentials.
// Requires the identifier and password credentials.
func NewBlueskyAdapter(cfg Config, creds secrets.Credentials) *BlueskyAdapter {
	return &BlueskyAdapter{
		client:     &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:    cfg.BlueskyBaseURL,
		identifier: creds["identifier"],
		password:   creds["password"],
	}
}

func (a *BlueskyAdapter) Platform() Platform {
	return PlatformBluesky
}

func (a *BlueskyAdapter) Post(ctx context.Context, text string) PostResult {
	if err, permanent := a.ensureSession(ctx); err != "" {
		return postFailure(err, permanent)
	}

	record := map[string]any{
		"$type":     blueskyCollection,
		"text":      text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
		"langs":     []string{"en"},
	}
	payload := map[string]any{
		"repo":       a.identifier,
		"collection": blueskyCollection,
		"record":     record,
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodPost, a.xrpc("com.atproto.repo.createRecord"), a.headers(), payload)
	if err != nil {
		return postFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return postFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	var parsed struct {
		URI string `json:"uri"`
		CID string `json:"cid"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return postFailure(err.Error(), false)
	}

	// The record key is the final segment of the AT URI. It is stored as
	// the post id so deletion can address the record directly.
	rkey := parsed.URI[strings.LastIndex(parsed.URI, "/")+1:]
	if rkey == "" {
		return postFailure("no record uri in response", false)
	}

	return PostResult{
		Success: true,
		PostID:  rkey,
		URL:     fmt.Sprintf("https://bsky.app/profile/%s/post/%s", a.identifier, rkey),
	}
}

func (a *BlueskyAdapter) Delete(ctx context.Context, postID string) DeleteResult {
	if err, permanent := a.ensureSession(ctx); err != "" {
		return deleteFailure(err, permanent)
	}

	payload := map[string]any{
		"repo":       a.identifier,
		"collection": blueskyCollection,
		"rkey":       postID,
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodPost, a.xrpc("com.atproto.repo.deleteRecord"), a.headers(), payload)
	if err != nil {
		return deleteFailure(err.Error(), false)
	}
	if !successStatus(status) {
		return deleteFailure(apiError(body, http.StatusText(status)), permanentStatus(status))
	}

	return DeleteResult{Success: true}
}

func (a *BlueskyAdapter) Verify(ctx context.Context) VerifyResult {
	handle, errMsg, permanent := a.login(ctx)
	if errMsg != "" {
		return verifyFailure(errMsg, permanent)
	}
	return VerifyResult{Success: true, Handle: handle}
}

func (a *BlueskyAdapter) ensureSession(ctx context.Context) (string, bool) {
	if a.accessJWT != "" {
		return "", false
	}
	_, errMsg, permanent := a.login(ctx)
	return errMsg, permanent
}

func (a *BlueskyAdapter) login(ctx context.Context) (handle, errMsg string, permanent bool) {
	if a.identifier == "" || a.password == "" {
		return "", "missing identifier or password credential", true
	}

	payload := map[string]string{
		"identifier": a.identifier,
		"password":   a.password,
	}

	status, body, err := sendJSON(ctx, a.client, http.MethodPost, a.xrpc("com.atproto.server.createSession"), nil, payload)
	if err != nil {
		return "", err.Error(), false
	}
	if !successStatus(status) {
		return "", apiError(body, http.StatusText(status)), permanentStatus(status)
	}

	var parsed struct {
		AccessJWT string `json:"accessJwt"`
		Handle    string `json:"handle"`
	}
	if err := unmarshalResult(body, &parsed); err != nil {
		return "", err.Error(), false
	}
	if parsed.AccessJWT == "" {
		return "", "no access token in session response", false
	}

	a.accessJWT = parsed.AccessJWT
	return parsed.Handle, "", false
}

func (a *BlueskyAdapter) xrpc(method string) string {
	return a.baseURL + "/xrpc/" + method
}

func (a *BlueskyAdapter) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.accessJWT}
}
