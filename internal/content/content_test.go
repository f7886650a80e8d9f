package content_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/content"
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/social"
)

func TestParseStatus(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		tests := []struct {
			input string
			want  content.Status
		}{
			{"draft", content.StatusDraft},
			{"scheduled", content.StatusScheduled},
			{"published", content.StatusPublished},
			{"failed", content.StatusFailed},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				got, err := content.ParseStatus(tt.input)
				if err != nil {
					t.Fatalf("ParseStatus(%q) error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("unknown status returns error", func(t *testing.T) {
		_, err := content.ParseStatus("archived")
		if !errors.Is(err, content.ErrInvalidStatus) {
			t.Errorf("ParseStatus(archived) error = %v, want ErrInvalidStatus", err)
		}
	})
}

func TestStatusUnmarshalJSON(t *testing.T) {
	t.Run("valid status", func(t *testing.T) {
		var s content.Status
		if err := json.Unmarshal([]byte(`"published"`), &s); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if s != content.StatusPublished {
			t.Errorf("status = %q, want published", s)
		}
	})

	t.Run("invalid status returns error", func(t *testing.T) {
		var s content.Status
		err := json.Unmarshal([]byte(`"archived"`), &s)
		if !errors.Is(err, content.ErrInvalidStatus) {
			t.Errorf("Unmarshal(archived) error = %v, want ErrInvalidStatus", err)
		}
	})
}

func TestMetadataKeys(t *testing.T) {
	tests := []struct {
		platform social.Platform
		postID   string
		postURL  string
	}{
		{social.PlatformTwitter, "twitter:post_id", "twitter:url"},
		{social.PlatformLinkedIn, "linkedin:post_id", "linkedin:url"},
		{social.PlatformBluesky, "bluesky:post_id", "bluesky:url"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			if got := content.PostIDKey(tt.platform); got != tt.postID {
				t.Errorf("PostIDKey = %q, want %q", got, tt.postID)
			}
			if got := content.PostURLKey(tt.platform); got != tt.postURL {
				t.Errorf("PostURLKey = %q, want %q", got, tt.postURL)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", content.ErrNotFound, http.StatusNotFound},
		{"not published", content.ErrNotPublished, http.StatusNotFound},
		{"account not found", accounts.ErrNotFound, http.StatusNotFound},
		{"duplicate", content.ErrDuplicate, http.StatusConflict},
		{"not publishable", content.ErrNotPublishable, http.StatusConflict},
		{"not failed", content.ErrNotFailed, http.StatusConflict},
		{"account inactive", content.ErrAccountInactive, http.StatusConflict},
		{"invalid status", content.ErrInvalidStatus, http.StatusBadRequest},
		{"no user", content.ErrNoUser, http.StatusBadRequest},
		{"invalid tone", generation.ErrInvalidTone, http.StatusBadRequest},
		{"remote delete", content.ErrRemoteDelete, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := content.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
