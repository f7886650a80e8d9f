package content

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/internal/sources"
)

func (r *repo) Generate(ctx context.Context, userID uuid.UUID, cmd GenerateCommand) ([]GenerateResult, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}
	if _, err := generation.ParseTone(string(cmd.Tone)); err != nil {
		return nil, err
	}

	source, err := r.sources.Find(ctx, cmd.SourceID)
	if err != nil {
		return nil, err
	}

	accts, err := r.accounts.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	// One generation run per account; failures stay inside that account's
	// results so the rest of the fan-out proceeds.
	perAccount := make([][]GenerateResult, len(accts))
	group, gctx := errgroup.WithContext(ctx)
	for i, account := range accts {
		group.Go(func() error {
			perAccount[i] = r.generateForAccount(gctx, userID, source, account, cmd.Tone)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]GenerateResult, 0)
	for _, rs := range perAccount {
		results = append(results, rs...)
	}

	r.logger.Info("generation fan-out complete",
		"source_id", source.ID,
		"user_id", userID,
		"accounts", len(accts),
		"results", len(results),
	)
	return results, nil
}

func (r *repo) generateForAccount(
	ctx context.Context,
	userID uuid.UUID,
	source *sources.Source,
	account accounts.Account,
	tone generation.Tone,
) []GenerateResult {
	accountFailure := func(err error) []GenerateResult {
		r.logger.Warn("fan-out account failed",
			"account_id", account.ID,
			"platform", account.Platform,
			"error", err,
		)
		return []GenerateResult{{
			AccountID: account.ID,
			Platform:  account.Platform,
			Error:     err.Error(),
		}}
	}

	variations, err := r.generator.Generate(ctx, generation.Request{
		Title: source.Title,
		Body:  source.Body,
		URL:   source.URL,
		Tone:  tone,
	})
	if err != nil {
		return accountFailure(err)
	}

	results := make([]GenerateResult, 0, len(variations))
	for _, v := range variations {
		normalized := generation.Normalize(v.Body, source.URL, account.Platform.CharacterLimit())
		if normalized.Hashtags == nil {
			normalized.Hashtags = []string{}
		}

		unit, err := r.units.createDraft(ctx, draft{
			userID:    userID,
			sourceID:  source.ID,
			accountID: account.ID,
			body:      normalized.Body,
			tone:      tone,
			metadata: map[string]any{
				MetaHashtags:  normalized.Hashtags,
				MetaSourceURL: source.URL,
				MetaGenerator: v.Generator,
			},
		})
		if err != nil {
			results = append(results, GenerateResult{
				AccountID: account.ID,
				Platform:  account.Platform,
				Error:     err.Error(),
			})
			continue
		}

		published, err := r.Publish(ctx, unit.ID)
		if err != nil {
			// The draft persisted; surface it with the publish error.
			results = append(results, GenerateResult{
				AccountID: account.ID,
				Platform:  account.Platform,
				Unit:      unit,
				Error:     err.Error(),
			})
			continue
		}

		results = append(results, GenerateResult{
			AccountID: account.ID,
			Platform:  account.Platform,
			Unit:      published,
		})
	}

	return results
}
