package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

const accountColumns = `id, user_id, platform, name, username, active,
				  created_at, updated_at`

type repo struct {
	db         *sql.DB
	vault      secrets.System
	adapters   AdapterSource
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an account repository implementing the System interface.
func New(
	db *sql.DB,
	vault secrets.System,
	adapters AdapterSource,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		vault:      vault,
		adapters:   adapters,
		logger:     logger.With("system", "accounts"),
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
) (*pagination.PageResult[Account], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Username")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Account, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) ListActive(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	listQ := fmt.Sprintf(`
		SELECT %s
		FROM platform_accounts
		WHERE user_id = $1 AND active
		ORDER BY name`, accountColumns)

	items, err := repository.QueryMany(ctx, r.db, listQ, []any{userID}, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("query active accounts: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Account, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}
	if _, err := social.ParsePlatform(string(cmd.Platform)); err != nil {
		return nil, err
	}
	if len(cmd.Credentials) == 0 {
		return nil, ErrMissingCredentials
	}

	sealed, err := r.vault.Encrypt(cmd.Credentials)
	if err != nil {
		return nil, fmt.Errorf("seal credentials: %w", err)
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO platform_accounts(user_id, platform, name, username, credentials)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, accountColumns)

	insertArgs := []any{userID, cmd.Platform, cmd.Name, cmd.Username, sealed}

	a, err := repository.QueryOne(ctx, r.db, insertQ, insertArgs, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("account created",
		"id", a.ID,
		"platform", a.Platform,
		"username", a.Username,
	)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Account, error) {
	var sealed []byte
	if len(cmd.Credentials) > 0 {
		var err error
		sealed, err = r.vault.Encrypt(cmd.Credentials)
		if err != nil {
			return nil, fmt.Errorf("seal credentials: %w", err)
		}
	}

	updateQ := fmt.Sprintf(`
		UPDATE platform_accounts
		SET name = COALESCE(NULLIF($1, ''), name),
			username = COALESCE(NULLIF($2, ''), username),
			credentials = COALESCE($3, credentials),
			updated_at = NOW()
		WHERE id = $4
		RETURNING %s`, accountColumns)

	a, err := repository.QueryOne(ctx, r.db, updateQ, []any{cmd.Name, cmd.Username, sealed, id}, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("account updated", "id", a.ID, "credentials_rotated", sealed != nil)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM platform_accounts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("account deleted", "id", id)
	return nil
}

func (r *repo) Credentials(ctx context.Context, id uuid.UUID) (secrets.Credentials, error) {
	var sealed []byte
	err := r.db.
		QueryRowContext(ctx, "SELECT credentials FROM platform_accounts WHERE id = $1", id).
		Scan(&sealed)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	creds, err := r.vault.Decrypt(sealed)
	if err != nil {
		return nil, fmt.Errorf("unseal credentials for account %s: %w", id, err)
	}
	return creds, nil
}

func (r *repo) Verify(ctx context.Context, id uuid.UUID) (*social.VerifyResult, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	creds, err := r.Credentials(ctx, id)
	if err != nil {
		return nil, err
	}

	adapter, err := r.adapters.Adapter(a.Platform, creds)
	if err != nil {
		return nil, err
	}

	result := adapter.Verify(ctx)
	r.logger.Info("account verified",
		"id", a.ID,
		"platform", a.Platform,
		"success", result.Success,
	)
	return &result, nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.setActive(ctx, id, true)
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.setActive(ctx, id, false)
}

func (r *repo) setActive(ctx context.Context, id uuid.UUID, active bool) (*Account, error) {
	updateQ := fmt.Sprintf(`
		UPDATE platform_accounts
		SET active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, accountColumns)

	a, err := repository.QueryOne(ctx, r.db, updateQ, []any{active, id}, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("account active flag set", "id", a.ID, "active", a.Active)
	return &a, nil
}
