package generation_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/megaphone-app/megaphone/internal/generation"
)

func TestNormalize(t *testing.T) {
	const sourceURL = "https://example.com/post"

	t.Run("appends source url", func(t *testing.T) {
		got := generation.Normalize("Check out our latest release", sourceURL, 280)
		want := "Check out our latest release\n\n" + sourceURL
		if got.Body != want {
			t.Errorf("Body = %q, want %q", got.Body, want)
		}
	})

	t.Run("does not duplicate present url", func(t *testing.T) {
		body := "Check out our latest release " + sourceURL
		got := generation.Normalize(body, sourceURL, 280)
		if strings.Count(got.Body, sourceURL) != 1 {
			t.Errorf("Body = %q, url should appear exactly once", got.Body)
		}
	})

	t.Run("strips tweet labels", func(t *testing.T) {
		got := generation.Normalize("Tweet 1: Big news today", sourceURL, 280)
		if strings.Contains(got.Body, "Tweet 1:") {
			t.Errorf("Body = %q, label should be stripped", got.Body)
		}
		if !strings.HasPrefix(got.Body, "Big news today") {
			t.Errorf("Body = %q, want prefix %q", got.Body, "Big news today")
		}
	})

	t.Run("extracts hashtags", func(t *testing.T) {
		got := generation.Normalize("Shipping fast with #golang and #postgres", sourceURL, 280)
		want := []string{"#golang", "#postgres"}
		if len(got.Hashtags) != len(want) {
			t.Fatalf("Hashtags = %v, want %v", got.Hashtags, want)
		}
		for i, tag := range want {
			if got.Hashtags[i] != tag {
				t.Errorf("Hashtags[%d] = %q, want %q", i, got.Hashtags[i], tag)
			}
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		body := strings.Repeat("a", 300)
		got := generation.Normalize(body, sourceURL, 280)
		if n := utf8.RuneCountInString(got.Body); n > 280 {
			t.Errorf("Body length = %d runes, want <= 280", n)
		}
		if !strings.HasSuffix(got.Body, sourceURL) {
			t.Errorf("Body = %q, url should survive truncation", got.Body)
		}
		if !strings.Contains(got.Body, "…") {
			t.Errorf("Body = %q, want ellipsis marker", got.Body)
		}
	})

	t.Run("truncation preserves hashtags", func(t *testing.T) {
		body := strings.Repeat("a", 300) + " #go #dev"
		got := generation.Normalize(body, sourceURL, 280)
		if n := utf8.RuneCountInString(got.Body); n > 280 {
			t.Errorf("Body length = %d runes, want <= 280", n)
		}
		if !strings.Contains(got.Body, "#go #dev") {
			t.Errorf("Body = %q, hashtags should survive truncation", got.Body)
		}
		if !strings.HasSuffix(got.Body, sourceURL) {
			t.Errorf("Body = %q, url should survive truncation", got.Body)
		}
	})

	t.Run("truncation restores severed inline url", func(t *testing.T) {
		body := strings.Repeat("a", 300) + " " + sourceURL
		got := generation.Normalize(body, sourceURL, 280)
		if n := utf8.RuneCountInString(got.Body); n > 280 {
			t.Errorf("Body length = %d runes, want <= 280", n)
		}
		if !strings.HasSuffix(got.Body, "\n\n"+sourceURL) {
			t.Errorf("Body = %q, severed url should be restored as suffix", got.Body)
		}

		again := generation.Normalize(got.Body, sourceURL, 280)
		if again.Body != got.Body {
			t.Errorf("second pass changed body:\nfirst:  %q\nsecond: %q", got.Body, again.Body)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		body := strings.Repeat("word ", 80) + "#release"
		first := generation.Normalize(body, sourceURL, 280)
		second := generation.Normalize(first.Body, sourceURL, 280)
		if second.Body != first.Body {
			t.Errorf("second pass changed body:\nfirst:  %q\nsecond: %q", first.Body, second.Body)
		}
	})

	t.Run("zero limit disables truncation", func(t *testing.T) {
		body := strings.Repeat("a", 5000)
		got := generation.Normalize(body, sourceURL, 0)
		if !strings.HasPrefix(got.Body, body) {
			t.Error("body should be untouched when limit is zero")
		}
	})
}

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "plain text without tags", nil},
		{"single", "launch day #golang", []string{"#golang"}},
		{"multiple in order", "#first middle #second end", []string{"#first", "#second"}},
		{"bare hash ignored", "watch the # symbol", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generation.ExtractHashtags(tt.body)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractHashtags(%q) = %v, want %v", tt.body, got, tt.want)
			}
			for i, tag := range tt.want {
				if got[i] != tag {
					t.Errorf("ExtractHashtags(%q)[%d] = %q, want %q", tt.body, i, got[i], tag)
				}
			}
		})
	}
}
