package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/internal/sources"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// memoryStore keeps units in a map so state transitions are observable
// without a database. outcomes counts persistOutcome calls; precondition
// rejections must leave it at zero.
type memoryStore struct {
	mu       sync.Mutex
	units    map[uuid.UUID]*ContentUnit
	outcomes int
}

func newMemoryStore(units ...*ContentUnit) *memoryStore {
	m := &memoryStore{units: make(map[uuid.UUID]*ContentUnit)}
	for _, u := range units {
		m.units[u.ID] = u
	}
	return m
}

func (m *memoryStore) find(_ context.Context, id uuid.UUID) (*ContentUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clone(id)
}

func (m *memoryStore) createDraft(_ context.Context, d draft) (*ContentUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	u := &ContentUnit{
		ID:        uuid.New(),
		UserID:    d.userID,
		SourceID:  d.sourceID,
		AccountID: d.accountID,
		Body:      d.body,
		Status:    StatusDraft,
		Tone:      d.tone,
		Metadata:  maps.Clone(d.metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.units[u.ID] = u
	return m.clone(u.ID)
}

func (m *memoryStore) persistOutcome(
	_ context.Context,
	id uuid.UUID,
	status Status,
	metadata map[string]any,
) (*ContentUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.outcomes++

	now := time.Now()
	u.Status = status
	u.Metadata = maps.Clone(metadata)
	u.UpdatedAt = now
	if status == StatusPublished {
		u.PublishedAt = &now
	} else {
		u.PublishedAt = nil
	}
	return m.clone(id)
}

func (m *memoryStore) clone(id uuid.UUID) (*ContentUnit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	clone.Metadata = maps.Clone(u.Metadata)
	return &clone, nil
}

type stubAccounts struct {
	accounts.System
	findFn        func(ctx context.Context, id uuid.UUID) (*accounts.Account, error)
	deactivateFn  func(ctx context.Context, id uuid.UUID) (*accounts.Account, error)
	listActiveFn  func(ctx context.Context, userID uuid.UUID) ([]accounts.Account, error)
	credentialsFn func(ctx context.Context, id uuid.UUID) (secrets.Credentials, error)
}

func (s *stubAccounts) Find(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	return s.findFn(ctx, id)
}

func (s *stubAccounts) Credentials(ctx context.Context, id uuid.UUID) (secrets.Credentials, error) {
	if s.credentialsFn != nil {
		return s.credentialsFn(ctx, id)
	}
	return secrets.Credentials{"token": "t"}, nil
}

func (s *stubAccounts) Deactivate(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	if s.deactivateFn == nil {
		return nil, errors.New("unexpected deactivate")
	}
	return s.deactivateFn(ctx, id)
}

func (s *stubAccounts) ListActive(ctx context.Context, userID uuid.UUID) ([]accounts.Account, error) {
	return s.listActiveFn(ctx, userID)
}

type stubAdapter struct {
	platform social.Platform
	postFn   func(ctx context.Context, text string) social.PostResult
	deleteFn func(ctx context.Context, postID string) social.DeleteResult
}

func (a *stubAdapter) Platform() social.Platform { return a.platform }

func (a *stubAdapter) Post(ctx context.Context, text string) social.PostResult {
	return a.postFn(ctx, text)
}

func (a *stubAdapter) Delete(ctx context.Context, postID string) social.DeleteResult {
	return a.deleteFn(ctx, postID)
}

func (a *stubAdapter) Verify(context.Context) social.VerifyResult {
	return social.VerifyResult{Success: true}
}

type stubAdapters struct {
	adapterFn func(platform social.Platform, creds secrets.Credentials) (social.Adapter, error)
}

func (s *stubAdapters) Adapter(platform social.Platform, creds secrets.Credentials) (social.Adapter, error) {
	return s.adapterFn(platform, creds)
}

func singleAdapter(a social.Adapter) AdapterSource {
	return &stubAdapters{
		adapterFn: func(social.Platform, secrets.Credentials) (social.Adapter, error) {
			return a, nil
		},
	}
}

type stubSources struct {
	sources.System
	findFn func(ctx context.Context, id uuid.UUID) (*sources.Source, error)
}

func (s *stubSources) Find(ctx context.Context, id uuid.UUID) (*sources.Source, error) {
	return s.findFn(ctx, id)
}

type stubGenerator struct {
	generateFn func(ctx context.Context, req generation.Request) ([]generation.Variation, error)
}

func (s *stubGenerator) Generate(ctx context.Context, req generation.Request) ([]generation.Variation, error) {
	return s.generateFn(ctx, req)
}

func (s *stubGenerator) Generators() []generation.GeneratorInfo { return nil }

func newTestRepo(store *memoryStore, accts accounts.System, adapters AdapterSource) *repo {
	return &repo{
		units:    store,
		accounts: accts,
		adapters: adapters,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func draftUnit(accountID uuid.UUID) *ContentUnit {
	return &ContentUnit{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SourceID:  uuid.New(),
		AccountID: accountID,
		Body:      "Fresh take on releases #go",
		Status:    StatusDraft,
		Tone:      generation.ToneCasual,
		Metadata: map[string]any{
			MetaHashtags:  []string{"#go"},
			MetaSourceURL: "https://example.com/post",
		},
	}
}

func TestPublish(t *testing.T) {
	account := &accounts.Account{ID: uuid.New(), Platform: social.PlatformTwitter, Active: true}
	findAccount := func(context.Context, uuid.UUID) (*accounts.Account, error) {
		return account, nil
	}

	t.Run("draft publishes and records platform metadata", func(t *testing.T) {
		unit := draftUnit(account.ID)
		unit.Metadata[MetaLastError] = "old failure"
		store := newMemoryStore(unit)

		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			postFn: func(_ context.Context, text string) social.PostResult {
				if text != unit.Body {
					t.Errorf("posted text = %q, want %q", text, unit.Body)
				}
				return social.PostResult{
					Success: true,
					PostID:  "123456",
					URL:     "https://twitter.com/i/web/status/123456",
				}
			},
		}

		r := newTestRepo(store, &stubAccounts{findFn: findAccount}, singleAdapter(adapter))
		got, err := r.Publish(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("Publish error: %v", err)
		}

		if got.Status != StatusPublished {
			t.Errorf("Status = %q, want published", got.Status)
		}
		if got.PublishedAt == nil {
			t.Error("PublishedAt should be set")
		}
		if id := got.Metadata[PostIDKey(social.PlatformTwitter)]; id != "123456" {
			t.Errorf("post id = %v, want 123456", id)
		}
		if url := got.Metadata[PostURLKey(social.PlatformTwitter)]; url != "https://twitter.com/i/web/status/123456" {
			t.Errorf("post url = %v", url)
		}
		if _, ok := got.Metadata[MetaLastError]; ok {
			t.Error("last_error should be cleared on success")
		}
		if got.Metadata[MetaSourceURL] != "https://example.com/post" {
			t.Error("prior metadata should be preserved")
		}
	})

	t.Run("published unit rejected without mutation", func(t *testing.T) {
		unit := draftUnit(account.ID)
		unit.Status = StatusPublished
		store := newMemoryStore(unit)

		posted := false
		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			postFn: func(context.Context, string) social.PostResult {
				posted = true
				return social.PostResult{Success: true}
			},
		}

		r := newTestRepo(store, &stubAccounts{findFn: findAccount}, singleAdapter(adapter))
		_, err := r.Publish(context.Background(), unit.ID)
		if !errors.Is(err, ErrNotPublishable) {
			t.Errorf("Publish error = %v, want ErrNotPublishable", err)
		}
		if posted {
			t.Error("adapter should not be called")
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})

	t.Run("transient failure records failed and keeps the account", func(t *testing.T) {
		unit := draftUnit(account.ID)
		store := newMemoryStore(unit)

		deactivated := false
		accts := &stubAccounts{
			findFn: findAccount,
			deactivateFn: func(context.Context, uuid.UUID) (*accounts.Account, error) {
				deactivated = true
				return account, nil
			},
		}
		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			postFn: func(context.Context, string) social.PostResult {
				return social.PostResult{Error: "rate limited"}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		got, err := r.Publish(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("Publish error: %v", err)
		}

		if got.Status != StatusFailed {
			t.Errorf("Status = %q, want failed", got.Status)
		}
		if got.Metadata[MetaLastError] != "rate limited" {
			t.Errorf("last_error = %v, want rate limited", got.Metadata[MetaLastError])
		}
		if got.Metadata[MetaSourceURL] != "https://example.com/post" {
			t.Error("prior metadata should be preserved on failure")
		}
		if got.PublishedAt != nil {
			t.Error("PublishedAt should stay unset")
		}
		if deactivated {
			t.Error("transient failure should not deactivate the account")
		}
	})

	t.Run("permanent failure deactivates the account", func(t *testing.T) {
		unit := draftUnit(account.ID)
		store := newMemoryStore(unit)

		deactivated := false
		accts := &stubAccounts{
			findFn: findAccount,
			deactivateFn: func(context.Context, uuid.UUID) (*accounts.Account, error) {
				deactivated = true
				return account, nil
			},
		}
		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			postFn: func(context.Context, string) social.PostResult {
				return social.PostResult{Error: "invalid credentials", Permanent: true}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		got, err := r.Publish(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("Publish error: %v", err)
		}

		if got.Status != StatusFailed {
			t.Errorf("Status = %q, want failed", got.Status)
		}
		if !deactivated {
			t.Error("permanent failure should deactivate the account")
		}
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		unit := draftUnit(account.ID)
		store := newMemoryStore(unit)

		inactive := &accounts.Account{ID: account.ID, Platform: social.PlatformTwitter}
		accts := &stubAccounts{
			findFn: func(context.Context, uuid.UUID) (*accounts.Account, error) {
				return inactive, nil
			},
		}

		r := newTestRepo(store, accts, singleAdapter(&stubAdapter{platform: social.PlatformTwitter}))
		_, err := r.Publish(context.Background(), unit.ID)
		if !errors.Is(err, ErrAccountInactive) {
			t.Errorf("Publish error = %v, want ErrAccountInactive", err)
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})
}

func TestRetry(t *testing.T) {
	account := &accounts.Account{ID: uuid.New(), Platform: social.PlatformTwitter, Active: true}
	accts := &stubAccounts{
		findFn: func(context.Context, uuid.UUID) (*accounts.Account, error) {
			return account, nil
		},
	}

	t.Run("draft rejected without mutation", func(t *testing.T) {
		unit := draftUnit(account.ID)
		store := newMemoryStore(unit)

		r := newTestRepo(store, accts, singleAdapter(&stubAdapter{platform: social.PlatformTwitter}))
		_, err := r.Retry(context.Background(), unit.ID)
		if !errors.Is(err, ErrNotFailed) {
			t.Errorf("Retry error = %v, want ErrNotFailed", err)
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})

	t.Run("published rejected without mutation", func(t *testing.T) {
		unit := draftUnit(account.ID)
		unit.Status = StatusPublished
		store := newMemoryStore(unit)

		r := newTestRepo(store, accts, singleAdapter(&stubAdapter{platform: social.PlatformTwitter}))
		_, err := r.Retry(context.Background(), unit.ID)
		if !errors.Is(err, ErrNotFailed) {
			t.Errorf("Retry error = %v, want ErrNotFailed", err)
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})

	t.Run("failed unit retries to published", func(t *testing.T) {
		unit := draftUnit(account.ID)
		unit.Status = StatusFailed
		unit.Metadata[MetaLastError] = "rate limited"
		store := newMemoryStore(unit)

		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			postFn: func(context.Context, string) social.PostResult {
				return social.PostResult{Success: true, PostID: "789", URL: "https://twitter.com/i/web/status/789"}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		got, err := r.Retry(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("Retry error: %v", err)
		}

		if got.Status != StatusPublished {
			t.Errorf("Status = %q, want published", got.Status)
		}
		if _, ok := got.Metadata[MetaLastError]; ok {
			t.Error("last_error should be cleared on successful retry")
		}
		if store.outcomes != 1 {
			t.Errorf("outcomes = %d, want 1", store.outcomes)
		}
	})
}

func TestUnpublish(t *testing.T) {
	account := &accounts.Account{ID: uuid.New(), Platform: social.PlatformTwitter, Active: true}
	accts := &stubAccounts{
		findFn: func(context.Context, uuid.UUID) (*accounts.Account, error) {
			return account, nil
		},
	}

	publishedUnit := func() *ContentUnit {
		unit := draftUnit(account.ID)
		unit.Status = StatusPublished
		now := time.Now()
		unit.PublishedAt = &now
		unit.Metadata[PostIDKey(social.PlatformTwitter)] = "123456"
		unit.Metadata[PostURLKey(social.PlatformTwitter)] = "https://twitter.com/i/web/status/123456"
		return unit
	}

	t.Run("published unit returns to draft stripping platform keys", func(t *testing.T) {
		unit := publishedUnit()
		store := newMemoryStore(unit)

		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			deleteFn: func(_ context.Context, postID string) social.DeleteResult {
				if postID != "123456" {
					t.Errorf("deleted post id = %q, want 123456", postID)
				}
				return social.DeleteResult{Success: true}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		got, err := r.Unpublish(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("Unpublish error: %v", err)
		}

		if got.Status != StatusDraft {
			t.Errorf("Status = %q, want draft", got.Status)
		}
		if got.PublishedAt != nil {
			t.Error("PublishedAt should be cleared")
		}
		for key := range got.Metadata {
			if strings.HasPrefix(key, "twitter:") {
				t.Errorf("metadata key %q should be stripped", key)
			}
		}
		if got.Metadata[MetaSourceURL] != "https://example.com/post" {
			t.Error("non-platform metadata should be preserved")
		}
		if _, ok := got.Metadata[MetaHashtags]; !ok {
			t.Error("hashtags should be preserved")
		}
	})

	t.Run("draft unit returns not found", func(t *testing.T) {
		unit := draftUnit(account.ID)
		store := newMemoryStore(unit)

		deleted := false
		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			deleteFn: func(context.Context, string) social.DeleteResult {
				deleted = true
				return social.DeleteResult{Success: true}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		_, err := r.Unpublish(context.Background(), unit.ID)
		if !errors.Is(err, ErrNotPublished) {
			t.Errorf("Unpublish error = %v, want ErrNotPublished", err)
		}
		if deleted {
			t.Error("adapter should not be called")
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})

	t.Run("published unit without post id returns not found", func(t *testing.T) {
		unit := publishedUnit()
		delete(unit.Metadata, PostIDKey(social.PlatformTwitter))
		store := newMemoryStore(unit)

		r := newTestRepo(store, accts, singleAdapter(&stubAdapter{platform: social.PlatformTwitter}))
		_, err := r.Unpublish(context.Background(), unit.ID)
		if !errors.Is(err, ErrNotPublished) {
			t.Errorf("Unpublish error = %v, want ErrNotPublished", err)
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}
	})

	t.Run("remote delete failure leaves unit unchanged", func(t *testing.T) {
		unit := publishedUnit()
		store := newMemoryStore(unit)

		adapter := &stubAdapter{
			platform: social.PlatformTwitter,
			deleteFn: func(context.Context, string) social.DeleteResult {
				return social.DeleteResult{Error: "post not deletable"}
			},
		}

		r := newTestRepo(store, accts, singleAdapter(adapter))
		_, err := r.Unpublish(context.Background(), unit.ID)
		if !errors.Is(err, ErrRemoteDelete) {
			t.Errorf("Unpublish error = %v, want ErrRemoteDelete", err)
		}
		if store.outcomes != 0 {
			t.Errorf("outcomes = %d, want 0", store.outcomes)
		}

		kept, err := store.find(context.Background(), unit.ID)
		if err != nil {
			t.Fatalf("find error: %v", err)
		}
		if kept.Status != StatusPublished {
			t.Errorf("Status = %q, should remain published", kept.Status)
		}
		if kept.Metadata[PostIDKey(social.PlatformTwitter)] != "123456" {
			t.Error("platform metadata should remain intact")
		}
	})
}

func TestGenerateFanOut(t *testing.T) {
	userID := uuid.New()
	src := &sources.Source{
		ID:    uuid.New(),
		URL:   "https://example.com/ai",
		Title: "Future of AI",
		Body:  "AI is reshaping how teams ship software.",
	}

	all := []accounts.Account{
		{ID: uuid.New(), UserID: userID, Platform: social.PlatformTwitter, Active: true},
		{ID: uuid.New(), UserID: userID, Platform: social.PlatformLinkedIn, Active: true},
		{ID: uuid.New(), UserID: userID, Platform: social.PlatformBluesky, Active: true},
	}

	newRepo := func(store *memoryStore) *repo {
		accts := &stubAccounts{
			listActiveFn: func(context.Context, uuid.UUID) ([]accounts.Account, error) {
				return all, nil
			},
			findFn: func(_ context.Context, id uuid.UUID) (*accounts.Account, error) {
				for i := range all {
					if all[i].ID == id {
						return &all[i], nil
					}
				}
				return nil, accounts.ErrNotFound
			},
		}
		adapters := &stubAdapters{
			adapterFn: func(p social.Platform, _ secrets.Credentials) (social.Adapter, error) {
				if p == social.PlatformLinkedIn {
					return nil, errors.New("credentials missing person_id")
				}
				return &stubAdapter{
					platform: p,
					postFn: func(context.Context, string) social.PostResult {
						return social.PostResult{
							Success: true,
							PostID:  "123456",
							URL:     "https://" + string(p) + ".example/123456",
						}
					},
				}, nil
			},
		}

		r := newTestRepo(store, accts, adapters)
		r.generator = &stubGenerator{
			generateFn: func(context.Context, generation.Request) ([]generation.Variation, error) {
				return []generation.Variation{{Body: "Big ideas in AI #ai", Generator: "openai"}}, nil
			},
		}
		r.sources = &stubSources{
			findFn: func(context.Context, uuid.UUID) (*sources.Source, error) {
				return src, nil
			},
		}
		return r
	}

	cmd := GenerateCommand{SourceID: src.ID, Tone: generation.ToneCasual}

	t.Run("one account failure stays isolated", func(t *testing.T) {
		r := newRepo(newMemoryStore())

		results, err := r.Generate(context.Background(), userID, cmd)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("results = %d, want 3", len(results))
		}

		byPlatform := make(map[social.Platform]GenerateResult, len(results))
		for _, res := range results {
			byPlatform[res.Platform] = res
		}

		failed := byPlatform[social.PlatformLinkedIn]
		if failed.Error == "" {
			t.Error("linkedin result should carry the adapter error")
		}
		if failed.Unit == nil || failed.Unit.Status != StatusDraft {
			t.Error("linkedin draft should persist despite the publish failure")
		}

		for _, p := range []social.Platform{social.PlatformTwitter, social.PlatformBluesky} {
			res := byPlatform[p]
			if res.Error != "" {
				t.Errorf("%s result error = %q, want none", p, res.Error)
			}
			if res.Unit == nil || res.Unit.Status != StatusPublished {
				t.Errorf("%s unit should be published", p)
			}
		}
	})

	t.Run("units carry normalized bodies", func(t *testing.T) {
		r := newRepo(newMemoryStore())

		results, err := r.Generate(context.Background(), userID, cmd)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		for _, res := range results {
			if res.Unit == nil {
				continue
			}
			if !strings.Contains(res.Unit.Body, src.URL) {
				t.Errorf("unit body %q should carry the source url", res.Unit.Body)
			}
		}
	})

	t.Run("missing user rejected", func(t *testing.T) {
		r := newRepo(newMemoryStore())
		_, err := r.Generate(context.Background(), uuid.Nil, cmd)
		if !errors.Is(err, ErrNoUser) {
			t.Errorf("Generate error = %v, want ErrNoUser", err)
		}
	})

	t.Run("invalid tone rejected", func(t *testing.T) {
		r := newRepo(newMemoryStore())
		_, err := r.Generate(context.Background(), userID, GenerateCommand{SourceID: src.ID, Tone: "sarcastic"})
		if !errors.Is(err, generation.ErrInvalidTone) {
			t.Errorf("Generate error = %v, want ErrInvalidTone", err)
		}
	})
}
