package models

import (
	"time"

	"github.com/google/uuid"
)

// Gig описывает опубликованный заказ с бюджетом.
// OwnerName и BidsCount заполняются списковыми запросами через JOIN.
type Gig struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Budget      float64   `db:"budget" json:"budget"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	OwnerName   *string   `db:"owner_name" json:"owner_name,omitempty"`
	BidsCount   *int      `db:"bids_count" json:"bids_count,omitempty"`
}
