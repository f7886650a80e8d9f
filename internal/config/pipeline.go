package config

import (
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

var generationEnv = &generation.Env{
	Prefix:     "MEGAPHONE_GENERATION",
	Variations: "MEGAPHONE_GENERATION_VARIATIONS",
}

var secretsEnv = &secrets.Env{
	Passphrase: "MEGAPHONE_SECRETS_PASSPHRASE",
	Salt:       "MEGAPHONE_SECRETS_SALT",
}

var socialEnv = &social.Env{
	TwitterBaseURL:  "MEGAPHONE_SOCIAL_TWITTER_BASE_URL",
	LinkedInBaseURL: "MEGAPHONE_SOCIAL_LINKEDIN_BASE_URL",
	BlueskyBaseURL:  "MEGAPHONE_SOCIAL_BLUESKY_BASE_URL",
	Timeout:         "MEGAPHONE_SOCIAL_TIMEOUT",
}
