package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	"github.com/SscSPs/captainledger_insights/internal/models"
	"github.com/SscSPs/captainledger_insights/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const preferenceColumns = `user_id, currency_code, is_primary, display_order,
		created_at, created_by, last_updated_at, last_updated_by`

// PgxPreferenceRepository stores per-user currency preferences.
type PgxPreferenceRepository struct {
	BaseRepository
}

func newPgxPreferenceRepository(pool *pgxpool.Pool) *PgxPreferenceRepository {
	return &PgxPreferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PreferenceRepositoryFacade = (*PgxPreferenceRepository)(nil)

func scanPreference(row pgx.Row) (models.CurrencyPreference, error) {
	var p models.CurrencyPreference
	err := row.Scan(
		&p.UserID,
		&p.CurrencyCode,
		&p.IsPrimary,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// ListPreferences returns a user's tracked currencies ordered by display order.
func (r *PgxPreferenceRepository) ListPreferences(ctx context.Context, userID string) ([]domain.CurrencyPreference, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+preferenceColumns+`
		FROM currency_preferences
		WHERE user_id = $1
		ORDER BY display_order, currency_code;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency preferences for user %s: %w", userID, err)
	}
	defer rows.Close()

	prefs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CurrencyPreference, error) {
		return scanPreference(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currency preferences: %w", err)
	}
	return mapping.ToDomainCurrencyPreferenceSlice(prefs), nil
}

// FindPrimaryPreference returns the user's primary currency, or a not-found error.
func (r *PgxPreferenceRepository) FindPrimaryPreference(ctx context.Context, userID string) (*domain.CurrencyPreference, error) {
	p, err := scanPreference(r.Pool.QueryRow(ctx, `
		SELECT `+preferenceColumns+`
		FROM currency_preferences
		WHERE user_id = $1 AND is_primary
		LIMIT 1;`, userID))
	if err != nil {
		return nil, notFoundOr(err, "primary currency preference")
	}
	pref := mapping.ToDomainCurrencyPreference(p)
	return &pref, nil
}

// SavePreference upserts a preference; a primary preference demotes the
// user's other preferences in the same transaction.
func (r *PgxPreferenceRepository) SavePreference(ctx context.Context, pref domain.CurrencyPreference) error {
	m := mapping.ToModelCurrencyPreference(pref)
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		if m.IsPrimary {
			if _, err := tx.Exec(ctx, `
				UPDATE currency_preferences
				SET is_primary = FALSE, last_updated_at = $2, last_updated_by = $3
				WHERE user_id = $1 AND is_primary AND currency_code <> $4`,
				m.UserID, m.LastUpdatedAt, m.LastUpdatedBy, m.CurrencyCode); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO currency_preferences (`+preferenceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, currency_code) DO UPDATE SET
				is_primary = EXCLUDED.is_primary,
				display_order = EXCLUDED.display_order,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by;`,
			m.UserID, m.CurrencyCode, m.IsPrimary, m.DisplayOrder,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save currency preference %s for user %s: %w", m.CurrencyCode, m.UserID, err)
	}
	return nil
}
