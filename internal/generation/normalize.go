package generation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// tweetLabel matches "Tweet N:" boilerplate that models sometimes prefix
// onto variations.
var tweetLabel = regexp.MustCompile(`(?m)^\s*Tweet \d+:\s*`)

// NormalizedPost is a platform-ready post body with its extracted hashtags.
type NormalizedPost struct {
	Body     string
	Hashtags []string
}

// Normalize prepares a generated variation for a platform: strips numbering
// labels, extracts hashtag tokens, appends the source URL on its own
// paragraph when absent, and enforces the platform character limit by
// truncating with an ellipsis. Truncation reserves room for the hashtag
// string and the URL paragraph so both survive the cut; an inline URL
// severed by the cut is restored as the trailing paragraph. Normalizing an
// already-normalized body leaves it unchanged.
func Normalize(body, sourceURL string, limit int) NormalizedPost {
	body = strings.TrimSpace(tweetLabel.ReplaceAllString(body, ""))
	hashtags := ExtractHashtags(body)

	suffix := ""
	if sourceURL != "" && !strings.Contains(body, sourceURL) {
		suffix = "\n\n" + sourceURL
	}

	out := body
	if limit > 0 && utf8.RuneCountInString(body)+utf8.RuneCountInString(suffix) > limit {
		out = truncate(body, hashtags, limit-utf8.RuneCountInString(suffix))
		if suffix == "" && !strings.Contains(out, sourceURL) {
			// The inline URL fell to the cut; restore it as the suffix.
			suffix = "\n\n" + sourceURL
			out = truncate(body, hashtags, limit-utf8.RuneCountInString(suffix))
		}
	}

	return NormalizedPost{Body: out + suffix, Hashtags: hashtags}
}

// ExtractHashtags returns the #-prefixed tokens of the body in order.
func ExtractHashtags(body string) []string {
	var hashtags []string
	for _, word := range strings.Fields(body) {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			hashtags = append(hashtags, word)
		}
	}
	return hashtags
}

// truncate cuts the body to fit the limit, reserving room for the hashtag
// string so tags survive the cut.
func truncate(body string, hashtags []string, limit int) string {
	runes := []rune(body)

	if len(hashtags) == 0 {
		keep := max(limit-1, 0)
		return strings.TrimSpace(string(runes[:keep])) + "…"
	}

	tags := strings.Join(hashtags, " ")
	keep := limit - utf8.RuneCountInString(tags) - 2
	if keep < 0 {
		keep = 0
	}
	return strings.TrimSpace(string(runes[:keep])) + "… " + tags
}
