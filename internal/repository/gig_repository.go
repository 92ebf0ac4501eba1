package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gigflow/gigflow-backend/internal/models"
)

// GigRepository отвечает за хранение гигов.
type GigRepository struct {
	db *sqlx.DB
}

// NewGigRepository создаёт репозиторий гигов.
func NewGigRepository(db *sqlx.DB) *GigRepository {
	return &GigRepository{db: db}
}

// GigFilter задаёт параметры выборки списка гигов.
type GigFilter struct {
	Search string
	Status string
}

// Create сохраняет новый гиг.
func (r *GigRepository) Create(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	query := `
		INSERT INTO gigs (owner_id, title, description, budget)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, title, description, budget, status, created_at, updated_at
	`

	var created models.Gig
	err := r.db.QueryRowxContext(ctx, query,
		gig.OwnerID, gig.Title, gig.Description, gig.Budget).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("gig repository: create: %w", err)
	}

	return &created, nil
}

// GetByID возвращает гиг с именем владельца и количеством откликов.
func (r *GigRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var gig models.Gig
	query := `
		SELECT g.id, g.owner_id, g.title, g.description, g.budget, g.status,
		       g.created_at, g.updated_at,
		       u.name AS owner_name,
		       COALESCE(bc.cnt, 0) AS bids_count
		FROM gigs g
		JOIN users u ON u.id = g.owner_id
		LEFT JOIN (
			SELECT gig_id, COUNT(*) AS cnt FROM bids GROUP BY gig_id
		) bc ON bc.gig_id = g.id
		WHERE g.id = $1
	`

	if err := r.db.GetContext(ctx, &gig, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("gig repository: get by id: %w", err)
	}

	return &gig, nil
}

// List возвращает гиги по фильтру, новые сначала.
// Поиск идёт по заголовку и описанию через ILIKE.
func (r *GigRepository) List(ctx context.Context, filter GigFilter) ([]models.Gig, error) {
	query := `
		SELECT g.id, g.owner_id, g.title, g.description, g.budget, g.status,
		       g.created_at, g.updated_at,
		       u.name AS owner_name,
		       COALESCE(bc.cnt, 0) AS bids_count
		FROM gigs g
		JOIN users u ON u.id = g.owner_id
		LEFT JOIN (
			SELECT gig_id, COUNT(*) AS cnt FROM bids GROUP BY gig_id
		) bc ON bc.gig_id = g.id
		WHERE 1=1
	`

	args := []interface{}{}
	argNum := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND g.status = $%d", argNum)
		args = append(args, filter.Status)
		argNum++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (g.title ILIKE $%d OR g.description ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	query += " ORDER BY g.created_at DESC"

	gigs := []models.Gig{}
	if err := r.db.SelectContext(ctx, &gigs, query, args...); err != nil {
		return nil, fmt.Errorf("gig repository: list: %w", err)
	}

	return gigs, nil
}

// ListByOwner возвращает гиги владельца, новые сначала.
func (r *GigRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	query := `
		SELECT g.id, g.owner_id, g.title, g.description, g.budget, g.status,
		       g.created_at, g.updated_at,
		       COALESCE(bc.cnt, 0) AS bids_count
		FROM gigs g
		LEFT JOIN (
			SELECT gig_id, COUNT(*) AS cnt FROM bids GROUP BY gig_id
		) bc ON bc.gig_id = g.id
		WHERE g.owner_id = $1
		ORDER BY g.created_at DESC
	`

	gigs := []models.Gig{}
	if err := r.db.SelectContext(ctx, &gigs, query, ownerID); err != nil {
		return nil, fmt.Errorf("gig repository: list by owner: %w", err)
	}

	return gigs, nil
}

// Update обновляет заголовок, описание и бюджет гига.
func (r *GigRepository) Update(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	query := `
		UPDATE gigs
		SET title = $1, description = $2, budget = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, owner_id, title, description, budget, status, created_at, updated_at
	`

	var updated models.Gig
	err := r.db.QueryRowxContext(ctx, query,
		gig.Title, gig.Description, gig.Budget, gig.ID).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("gig repository: update: %w", err)
	}

	return &updated, nil
}

// Delete удаляет гиг. Отклики удаляются каскадно по внешнему ключу.
func (r *GigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gigs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("gig repository: delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("gig repository: delete: %w", err)
	}
	if affected == 0 {
		return ErrGigNotFound
	}

	return nil
}
