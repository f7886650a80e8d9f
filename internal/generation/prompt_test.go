package generation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/megaphone-app/megaphone/internal/generation"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("embeds tone instruction and content", func(t *testing.T) {
		prompt, err := generation.BuildPrompt(
			generation.ToneProfessional,
			"Release Notes",
			"We shipped a new version.",
			"https://example.com/notes",
		)
		if err != nil {
			t.Fatalf("BuildPrompt error: %v", err)
		}

		for _, want := range []string{
			generation.ToneProfessional.Instruction(),
			"Content Title: Release Notes",
			"Content: We shipped a new version.",
			"URL: https://example.com/notes",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("caps embedded body length", func(t *testing.T) {
		body := strings.Repeat("x", 5000)
		prompt, err := generation.BuildPrompt(generation.ToneCasual, "Title", body, "https://example.com")
		if err != nil {
			t.Fatalf("BuildPrompt error: %v", err)
		}
		if strings.Contains(prompt, strings.Repeat("x", 1001)) {
			t.Error("prompt embeds more than the body cap")
		}
		if !strings.Contains(prompt, strings.Repeat("x", 1000)) {
			t.Error("prompt should embed the capped body")
		}
	})

	t.Run("unknown tone returns error", func(t *testing.T) {
		_, err := generation.BuildPrompt("sarcastic", "Title", "Body", "https://example.com")
		if !errors.Is(err, generation.ErrInvalidTone) {
			t.Errorf("BuildPrompt error = %v, want ErrInvalidTone", err)
		}
	})
}
