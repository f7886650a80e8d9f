package sites

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
)

const siteColumns = `id, user_id, url, name, description, crawl_frequency,
				  last_crawled_at, active, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a site repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "sites"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Site], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "URL", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sites: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSite)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Site, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSite)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Site, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}
	if strings.TrimSpace(cmd.URL) == "" {
		return nil, ErrInvalidURL
	}
	if cmd.CrawlFrequency == "" {
		cmd.CrawlFrequency = "daily"
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO sites(user_id, url, name, description, crawl_frequency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, siteColumns)

	insertArgs := []any{userID, cmd.URL, cmd.Name, cmd.Description, cmd.CrawlFrequency}

	s, err := repository.QueryOne(ctx, r.db, insertQ, insertArgs, scanSite)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site created", "id", s.ID, "url", s.URL)
	return &s, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Site, error) {
	updateQ := fmt.Sprintf(`
		UPDATE sites
		SET url = COALESCE(NULLIF($1, ''), url),
			name = COALESCE(NULLIF($2, ''), name),
			description = COALESCE(NULLIF($3, ''), description),
			crawl_frequency = COALESCE(NULLIF($4, ''), crawl_frequency),
			updated_at = NOW()
		WHERE id = $5
		RETURNING %s`, siteColumns)

	updateArgs := []any{cmd.URL, cmd.Name, cmd.Description, cmd.CrawlFrequency, id}

	s, err := repository.QueryOne(ctx, r.db, updateQ, updateArgs, scanSite)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site updated", "id", s.ID)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM sites WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site deleted", "id", id)
	return nil
}

func (r *repo) MarkCrawled(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE sites SET last_crawled_at = NOW(), updated_at = NOW() WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
