package generation

import (
	"encoding/json"
	"slices"
)

// Tone selects the voice used when generating post variations.
type Tone string

// Valid generation tones.
const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneHumorous     Tone = "humorous"
	ToneInformative  Tone = "informative"
)

var tones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneHumorous,
	ToneInformative,
}

// Tones returns the list of valid generation tones.
func Tones() []Tone {
	return tones
}

// UnmarshalJSON validates that the decoded string is a known tone value.
func (t *Tone) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Tone(raw)
	if !slices.Contains(tones, v) {
		return ErrInvalidTone
	}
	*t = v
	return nil
}

// ParseTone validates a string as a known generation tone.
// Returns ErrInvalidTone if the value is not recognized.
func ParseTone(s string) (Tone, error) {
	v := Tone(s)
	if !slices.Contains(tones, v) {
		return "", ErrInvalidTone
	}
	return v, nil
}

// Instruction returns the prompt instruction block for the tone.
func (t Tone) Instruction() string {
	return toneInstructions[t]
}

var toneInstructions = map[Tone]string{
	ToneProfessional: `Use a formal, business-like tone. Focus on:
- Professional language and industry terminology
- Clear value propositions
- Data-driven insights
- Professional hashtags
- Business-appropriate calls to action`,
	ToneCasual: `Use a friendly, conversational tone. Focus on:
- Relaxed, everyday language
- Relatable examples
- Emoji usage 😊
- Engaging questions
- Casual hashtags
- Friendly calls to action`,
	ToneHumorous: `Use a fun, witty tone. Focus on:
- Clever wordplay and puns
- Pop culture references
- Emojis and GIFs
- Light-hearted observations
- Fun hashtags
- Entertaining calls to action`,
	ToneInformative: `Use an educational, factual tone. Focus on:
- Clear explanations
- Key statistics and facts
- Step-by-step information
- Educational hashtags
- Learning-focused calls to action`,
}
