package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid представляет отклик фрилансера на гиг.
// FreelancerName, GigTitle и GigStatus заполняются запросами с JOIN,
// в самой таблице bids их нет.
type Bid struct {
	ID             uuid.UUID `db:"id" json:"id"`
	GigID          uuid.UUID `db:"gig_id" json:"gig_id"`
	FreelancerID   uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Message        string    `db:"message" json:"message"`
	Price          float64   `db:"price" json:"price"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	FreelancerName *string   `db:"freelancer_name" json:"freelancer_name,omitempty"`
	GigTitle       *string   `db:"gig_title" json:"gig_title,omitempty"`
	GigStatus      *string   `db:"gig_status" json:"gig_status,omitempty"`
}
