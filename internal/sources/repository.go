package sources

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/sites"
	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
	"github.com/megaphone-app/megaphone/pkg/storage"
)

type repo struct {
	db         *sql.DB
	fetcher    *Fetcher
	snapshots  storage.System
	sites      sites.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a source repository implementing the System interface.
func New(
	db *sql.DB,
	fetcher *Fetcher,
	snapshots storage.System,
	sites sites.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		fetcher:    fetcher,
		snapshots:  snapshots,
		sites:      sites,
		logger:     logger.With("system", "sources"),
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
) (*pagination.PageResult[Source], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "URL")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sources: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSource)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Source, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSource)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Crawl(ctx context.Context, cmd CrawlCommand) (*Source, error) {
	site, err := r.sites.Find(ctx, cmd.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.Active {
		return nil, ErrSiteInactive
	}

	page, err := r.fetcher.Fetch(ctx, site.URL)
	if err != nil {
		return nil, err
	}

	snapshotKey := fmt.Sprintf("%s/%s.html", site.ID, uuid.New())
	if err := r.snapshots.Upload(ctx, snapshotKey, bytes.NewReader(page.HTML), "text/html"); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", page.URL, err)
	}

	insertQ := `
		INSERT INTO sources(site_id, url, title, body, snapshot_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, site_id, url, title, body, snapshot_key, crawled_at, created_at`

	insertArgs := []any{site.ID, page.URL, page.Title, page.Body, snapshotKey}

	s, err := repository.QueryOne(ctx, r.db, insertQ, insertArgs, scanSource)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.sites.MarkCrawled(ctx, site.ID); err != nil {
		r.logger.Warn("mark site crawled failed", "site_id", site.ID, "error", err)
	}

	r.logger.Info("source crawled",
		"id", s.ID,
		"site_id", site.ID,
		"url", s.URL,
		"snapshot_key", snapshotKey,
	)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM sources WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	// Snapshot removal is best effort; an orphaned blob is harmless.
	if s.SnapshotKey != "" {
		if err := r.snapshots.Delete(ctx, s.SnapshotKey); err != nil {
			r.logger.Warn("snapshot delete failed", "key", s.SnapshotKey, "error", err)
		}
	}

	r.logger.Info("source deleted", "id", id)
	return nil
}
