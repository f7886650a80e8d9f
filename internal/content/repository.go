package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/internal/sources"
	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
)

const unitColumns = `id, user_id, source_id, account_id, body, status, tone,
				  scheduled_for, published_at, metadata, created_at, updated_at`

// unitStore is the persistence seam of the publish path. The state machine
// runs against it, so transition behavior is testable without a database.
type unitStore interface {
	find(ctx context.Context, id uuid.UUID) (*ContentUnit, error)
	createDraft(ctx context.Context, d draft) (*ContentUnit, error)
	persistOutcome(ctx context.Context, id uuid.UUID, status Status, metadata map[string]any) (*ContentUnit, error)
}

type repo struct {
	db         *sql.DB
	units      unitStore
	generator  generation.System
	accounts   accounts.System
	sources    sources.System
	adapters   AdapterSource
	logger     *slog.Logger
	pagination pagination.Config

	// locks serializes publish-path mutations per unit so concurrent
	// requests cannot double-post. Entries are *sync.Mutex keyed by unit id.
	locks sync.Map
}

// New creates a content repository implementing the System interface.
func New(
	db *sql.DB,
	generator generation.System,
	accounts accounts.System,
	sources sources.System,
	adapters AdapterSource,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		units:      &sqlStore{db: db},
		generator:  generator,
		accounts:   accounts,
		sources:    sources,
		adapters:   adapters,
		logger:     logger.With("system", "content"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) lock(id uuid.UUID) func() {
	mu, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ContentUnit], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Body")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count content units: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUnit)
	if err != nil {
		return nil, fmt.Errorf("query content units: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ContentUnit, error) {
	return r.units.find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM content_units WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("content unit deleted", "id", id)
	return nil
}

func (r *repo) Generators() []generation.GeneratorInfo {
	return r.generator.Generators()
}

type draft struct {
	userID    uuid.UUID
	sourceID  uuid.UUID
	accountID uuid.UUID
	body      string
	tone      generation.Tone
	metadata  map[string]any
}

// sqlStore is the Postgres-backed unitStore.
type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) find(ctx context.Context, id uuid.UUID) (*ContentUnit, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, s.db, q, args, scanUnit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (s *sqlStore) createDraft(ctx context.Context, d draft) (*ContentUnit, error) {
	metadataJSON, err := json.Marshal(d.metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO content_units(user_id, source_id, account_id, body, tone, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, unitColumns)

	insertArgs := []any{d.userID, d.sourceID, d.accountID, d.body, d.tone, metadataJSON}

	u, err := repository.QueryOne(ctx, s.db, insertQ, insertArgs, scanUnit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

// persistOutcome writes a publish attempt's outcome in one statement.
// publishedAt is set from NOW() only when the status is published.
func (s *sqlStore) persistOutcome(
	ctx context.Context,
	id uuid.UUID,
	status Status,
	metadata map[string]any,
) (*ContentUnit, error) {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	updateQ := fmt.Sprintf(`
		UPDATE content_units
		SET status = $1,
			published_at = CASE WHEN $1 = 'published' THEN NOW() ELSE NULL END,
			metadata = $2,
			updated_at = NOW()
		WHERE id = $3
		RETURNING %s`, unitColumns)

	u, err := repository.QueryOne(ctx, s.db, updateQ, []any{status, metadataJSON, id}, scanUnit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}
