package generation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/megaphone-app/megaphone/internal/generation"
)

func TestTones(t *testing.T) {
	want := []generation.Tone{
		generation.ToneProfessional,
		generation.ToneCasual,
		generation.ToneHumorous,
		generation.ToneInformative,
	}

	got := generation.Tones()
	if len(got) != len(want) {
		t.Fatalf("Tones() returned %d tones, want %d", len(got), len(want))
	}
	for i, tone := range want {
		if got[i] != tone {
			t.Errorf("Tones()[%d] = %q, want %q", i, got[i], tone)
		}
	}
}

func TestParseTone(t *testing.T) {
	t.Run("valid tones", func(t *testing.T) {
		tests := []struct {
			input string
			want  generation.Tone
		}{
			{"professional", generation.ToneProfessional},
			{"casual", generation.ToneCasual},
			{"humorous", generation.ToneHumorous},
			{"informative", generation.ToneInformative},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				got, err := generation.ParseTone(tt.input)
				if err != nil {
					t.Fatalf("ParseTone(%q) error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseTone(%q) = %q, want %q", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("unknown tone returns error", func(t *testing.T) {
		_, err := generation.ParseTone("sarcastic")
		if !errors.Is(err, generation.ErrInvalidTone) {
			t.Errorf("ParseTone(sarcastic) error = %v, want ErrInvalidTone", err)
		}
	})

	t.Run("empty string returns error", func(t *testing.T) {
		_, err := generation.ParseTone("")
		if !errors.Is(err, generation.ErrInvalidTone) {
			t.Errorf("ParseTone('') error = %v, want ErrInvalidTone", err)
		}
	})
}

func TestToneUnmarshalJSON(t *testing.T) {
	t.Run("valid tone", func(t *testing.T) {
		var tone generation.Tone
		if err := json.Unmarshal([]byte(`"casual"`), &tone); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if tone != generation.ToneCasual {
			t.Errorf("tone = %q, want casual", tone)
		}
	})

	t.Run("invalid tone returns error", func(t *testing.T) {
		var tone generation.Tone
		err := json.Unmarshal([]byte(`"banana"`), &tone)
		if !errors.Is(err, generation.ErrInvalidTone) {
			t.Errorf("Unmarshal(banana) error = %v, want ErrInvalidTone", err)
		}
	})

	t.Run("non-string returns error", func(t *testing.T) {
		var tone generation.Tone
		if err := json.Unmarshal([]byte(`42`), &tone); err == nil {
			t.Error("Unmarshal(42) should return error")
		}
	})

	t.Run("struct with tone field", func(t *testing.T) {
		type payload struct {
			Tone generation.Tone `json:"tone"`
		}

		var p payload
		if err := json.Unmarshal([]byte(`{"tone":"humorous"}`), &p); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if p.Tone != generation.ToneHumorous {
			t.Errorf("Tone = %q, want humorous", p.Tone)
		}
	})
}

func TestInstruction(t *testing.T) {
	for _, tone := range generation.Tones() {
		t.Run(string(tone), func(t *testing.T) {
			if tone.Instruction() == "" {
				t.Errorf("Instruction(%q) returned empty string", tone)
			}
		})
	}
}
