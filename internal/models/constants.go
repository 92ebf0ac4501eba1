package models

// GigStatus константы статусов гигов.
// Переход только open -> assigned, обратного пути нет.
const (
	GigStatusOpen     = "open"
	GigStatusAssigned = "assigned"
)

// BidStatus константы статусов откликов.
const (
	BidStatusPending  = "pending"
	BidStatusHired    = "hired"
	BidStatusRejected = "rejected"
)

// ValidGigStatuses список валидных статусов гигов.
var ValidGigStatuses = map[string]struct{}{
	GigStatusOpen:     {},
	GigStatusAssigned: {},
}

// ValidBidStatuses список валидных статусов откликов.
var ValidBidStatuses = map[string]struct{}{
	BidStatusPending:  {},
	BidStatusHired:    {},
	BidStatusRejected: {},
}
