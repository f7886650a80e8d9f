package generation

import (
	"fmt"
	"unicode/utf8"
)

// systemMessage frames every completion request.
const systemMessage = "You are a social media expert who creates engaging content."

// promptBodyLimit caps how much of the source body is embedded in the
// prompt for context.
const promptBodyLimit = 1000

// BuildPrompt assembles the generation prompt for a source page in the
// given tone. Returns ErrInvalidTone for unrecognized tones.
func BuildPrompt(tone Tone, title, body, url string) (string, error) {
	instruction, ok := toneInstructions[tone]
	if !ok {
		return "", ErrInvalidTone
	}

	if utf8.RuneCountInString(body) > promptBodyLimit {
		body = string([]rune(body)[:promptBodyLimit])
	}

	prompt := fmt.Sprintf(`Generate engaging social media posts from this content using the following tone:

%s

Each post should:
- Be under 280 characters
- Include relevant hashtags
- Include a call to action when appropriate
- Link back to the original content

Content Title: %s
Content: %s
URL: %s`, instruction, title, body, url)

	return prompt, nil
}
