package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gigflow/gigflow-backend/internal/models"
)

// BidRepository отвечает за хранение откликов и транзакцию найма.
type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт репозиторий откликов.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create сохраняет новый отклик.
// Внутри транзакции берётся разделяемая блокировка на строку гига и
// перепроверяется статус: отклик на гиг, который конкурентно переводится
// в assigned, либо не вставится вовсе, либо вставится до того, как наём
// отметёт все pending отклики. Уникальность (gig_id, freelancer_id)
// гарантирует ограничение БД, нарушение переводится в ErrDuplicateBid.
// Возвращает созданный отклик, обогащённый именем фрилансера.
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("bid repository: create: begin tx: %w", err)
	}
	defer tx.Rollback()

	var gigStatus string
	err = tx.GetContext(ctx, &gigStatus,
		`SELECT status FROM gigs WHERE id = $1 FOR SHARE`, bid.GigID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("bid repository: create: lock gig: %w", err)
	}

	if gigStatus != models.GigStatusOpen {
		return nil, ErrGigNotOpen
	}

	query := `
		INSERT INTO bids (gig_id, freelancer_id, message, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, gig_id, freelancer_id, message, price, status, created_at, updated_at
	`

	var created models.Bid
	err = tx.QueryRowxContext(ctx, query,
		bid.GigID, bid.FreelancerID, bid.Message, bid.Price).StructScan(&created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateBid
		}
		return nil, fmt.Errorf("bid repository: create: insert: %w", err)
	}

	var freelancerName string
	if err := tx.GetContext(ctx, &freelancerName,
		`SELECT name FROM users WHERE id = $1`, bid.FreelancerID); err != nil {
		return nil, fmt.Errorf("bid repository: create: read freelancer name: %w", err)
	}
	created.FreelancerName = &freelancerName

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("bid repository: create: commit: %w", err)
	}

	return &created, nil
}

// GetByID возвращает отклик по идентификатору.
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	query := `
		SELECT id, gig_id, freelancer_id, message, price, status, created_at, updated_at
		FROM bids
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &bid, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("bid repository: get by id: %w", err)
	}

	return &bid, nil
}

// GetByGigAndFreelancer возвращает отклик фрилансера на конкретный гиг.
func (r *BidRepository) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	query := `
		SELECT id, gig_id, freelancer_id, message, price, status, created_at, updated_at
		FROM bids
		WHERE gig_id = $1 AND freelancer_id = $2
	`

	if err := r.db.GetContext(ctx, &bid, query, gigID, freelancerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("bid repository: get by gig and freelancer: %w", err)
	}

	return &bid, nil
}

// ListByGig возвращает отклики на гиг с именами фрилансеров, новые сначала.
func (r *BidRepository) ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	query := `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status,
		       b.created_at, b.updated_at,
		       u.name AS freelancer_name
		FROM bids b
		JOIN users u ON u.id = b.freelancer_id
		WHERE b.gig_id = $1
		ORDER BY b.created_at DESC
	`

	bids := []models.Bid{}
	if err := r.db.SelectContext(ctx, &bids, query, gigID); err != nil {
		return nil, fmt.Errorf("bid repository: list by gig: %w", err)
	}

	return bids, nil
}

// ListByFreelancer возвращает отклики фрилансера с данными гигов, новые сначала.
func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	query := `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status,
		       b.created_at, b.updated_at,
		       g.title AS gig_title,
		       g.status::text AS gig_status
		FROM bids b
		JOIN gigs g ON g.id = b.gig_id
		WHERE b.freelancer_id = $1
		ORDER BY b.created_at DESC
	`

	bids := []models.Bid{}
	if err := r.db.SelectContext(ctx, &bids, query, freelancerID); err != nil {
		return nil, fmt.Errorf("bid repository: list by freelancer: %w", err)
	}

	return bids, nil
}

// Hire выполняет транзакцию найма: под эксклюзивной блокировкой строки гига
// перепроверяет, что гиг открыт, затем одной транзакцией переводит гиг в
// assigned, выбранный отклик в hired, а все остальные pending отклики гига
// в rejected. Конкурентный наём того же гига дождётся блокировки, увидит
// assigned и получит ErrGigNotOpen без единой записи.
// Возвращает нанятый отклик, обогащённый заголовком гига и именем фрилансера.
func (r *BidRepository) Hire(ctx context.Context, gigID, bidID uuid.UUID) (*models.Bid, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("bid repository: hire: begin tx: %w", err)
	}
	defer tx.Rollback()

	var gigStatus string
	err = tx.GetContext(ctx, &gigStatus,
		`SELECT status FROM gigs WHERE id = $1 FOR UPDATE`, gigID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("bid repository: hire: lock gig: %w", err)
	}

	if gigStatus != models.GigStatusOpen {
		return nil, ErrGigNotOpen
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE gigs SET status = 'assigned', updated_at = NOW() WHERE id = $1`, gigID); err != nil {
		return nil, fmt.Errorf("bid repository: hire: assign gig: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE bids SET status = 'hired', updated_at = NOW() WHERE id = $1 AND gig_id = $2`,
		bidID, gigID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: hire: mark hired: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("bid repository: hire: mark hired: %w", err)
	}
	if affected == 0 {
		return nil, ErrBidNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bids SET status = 'rejected', updated_at = NOW()
		 WHERE gig_id = $1 AND id <> $2 AND status = 'pending'`,
		gigID, bidID); err != nil {
		return nil, fmt.Errorf("bid repository: hire: reject others: %w", err)
	}

	var hired models.Bid
	err = tx.QueryRowxContext(ctx, `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status,
		       b.created_at, b.updated_at,
		       u.name AS freelancer_name,
		       g.title AS gig_title
		FROM bids b
		JOIN gigs g ON g.id = b.gig_id
		JOIN users u ON u.id = b.freelancer_id
		WHERE b.id = $1
	`, bidID).StructScan(&hired)
	if err != nil {
		return nil, fmt.Errorf("bid repository: hire: read hired bid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("bid repository: hire: commit: %w", err)
	}

	return &hired, nil
}
