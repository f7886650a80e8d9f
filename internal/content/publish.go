package content

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/pkg/social"
)

func (r *repo) Publish(ctx context.Context, id uuid.UUID) (*ContentUnit, error) {
	unlock := r.lock(id)
	defer unlock()

	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusDraft && u.Status != StatusFailed {
		return nil, ErrNotPublishable
	}

	return r.publish(ctx, u)
}

func (r *repo) Retry(ctx context.Context, id uuid.UUID) (*ContentUnit, error) {
	unlock := r.lock(id)
	defer unlock()

	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusFailed {
		return nil, ErrNotFailed
	}

	return r.publish(ctx, u)
}

// publish posts the unit to its account's platform and persists the
// outcome. Remote failures become the unit's failed state, not an error.
// Callers must hold the unit's lock and have checked its status.
func (r *repo) publish(ctx context.Context, u *ContentUnit) (*ContentUnit, error) {
	account, adapter, err := r.resolveAdapter(ctx, u.AccountID)
	if err != nil {
		return nil, err
	}

	result := adapter.Post(ctx, u.Body)
	if !result.Success {
		return r.recordFailure(ctx, u, account, result.Error, result.Permanent)
	}

	metadata := maps.Clone(u.Metadata)
	metadata[PostIDKey(account.Platform)] = result.PostID
	metadata[PostURLKey(account.Platform)] = result.URL
	delete(metadata, MetaLastError)

	updated, err := r.units.persistOutcome(ctx, u.ID, StatusPublished, metadata)
	if err != nil {
		// The post exists remotely but the unit does not reflect it.
		r.logger.Error("publish persisted inconsistently",
			"id", u.ID,
			"platform", account.Platform,
			"post_id", result.PostID,
			"error", err,
		)
		return nil, fmt.Errorf("record publish outcome for %s: %w", u.ID, err)
	}

	r.logger.Info("content unit published",
		"id", updated.ID,
		"platform", account.Platform,
		"post_id", result.PostID,
	)
	return updated, nil
}

func (r *repo) recordFailure(
	ctx context.Context,
	u *ContentUnit,
	account *accounts.Account,
	remoteErr string,
	permanent bool,
) (*ContentUnit, error) {
	metadata := maps.Clone(u.Metadata)
	metadata[MetaLastError] = remoteErr

	updated, err := r.units.persistOutcome(ctx, u.ID, StatusFailed, metadata)
	if err != nil {
		return nil, fmt.Errorf("record publish failure for %s: %w", u.ID, err)
	}

	r.logger.Warn("content unit publish failed",
		"id", u.ID,
		"platform", account.Platform,
		"permanent", permanent,
		"error", remoteErr,
	)

	if permanent {
		if _, err := r.accounts.Deactivate(ctx, account.ID); err != nil {
			r.logger.Error("account deactivation failed", "account_id", account.ID, "error", err)
		} else {
			r.logger.Warn("account deactivated after credential rejection", "account_id", account.ID)
		}
	}

	return updated, nil
}

func (r *repo) Unpublish(ctx context.Context, id uuid.UUID) (*ContentUnit, error) {
	unlock := r.lock(id)
	defer unlock()

	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPublished {
		return nil, ErrNotPublished
	}

	account, adapter, err := r.resolveAdapter(ctx, u.AccountID)
	if err != nil {
		return nil, err
	}

	postID, ok := u.Metadata[PostIDKey(account.Platform)].(string)
	if !ok || postID == "" {
		return nil, ErrNotPublished
	}

	result := adapter.Delete(ctx, postID)
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrRemoteDelete, result.Error)
	}

	metadata := maps.Clone(u.Metadata)
	prefix := string(account.Platform) + ":"
	for key := range metadata {
		if strings.HasPrefix(key, prefix) {
			delete(metadata, key)
		}
	}

	updated, err := r.units.persistOutcome(ctx, u.ID, StatusDraft, metadata)
	if err != nil {
		r.logger.Error("unpublish persisted inconsistently",
			"id", u.ID,
			"platform", account.Platform,
			"post_id", postID,
			"error", err,
		)
		return nil, fmt.Errorf("record unpublish outcome for %s: %w", u.ID, err)
	}

	r.logger.Info("content unit unpublished",
		"id", updated.ID,
		"platform", account.Platform,
		"post_id", postID,
	)
	return updated, nil
}

func (r *repo) resolveAdapter(
	ctx context.Context,
	accountID uuid.UUID,
) (*accounts.Account, social.Adapter, error) {
	account, err := r.accounts.Find(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if !account.Active {
		return nil, nil, ErrAccountInactive
	}

	creds, err := r.accounts.Credentials(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	adapter, err := r.adapters.Adapter(account.Platform, creds)
	if err != nil {
		return nil, nil, err
	}

	return account, adapter, nil
}
