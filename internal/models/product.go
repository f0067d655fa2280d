package models

import (
	"strings"
	"time"
)

// ProductStatus is stored as plain text rather than a closed enum: old
// ingestion runs left rows with status "U" and those must keep loading and
// simply never match Approved or Cancelled.
type ProductStatus string

const (
	StatusApproved  ProductStatus = "Approved"
	StatusCancelled ProductStatus = "Cancelled"
)

// ParseProductStatus maps user-facing filter values to a status. It accepts
// the canonical names case-insensitively and returns ok=false for anything
// else, including the legacy "U" marker.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "a":
		return StatusApproved, true
	case "cancelled", "c":
		return StatusCancelled, true
	}
	return "", false
}

// Product is a notified cosmetic product. The notification number is the
// regulatory unique identifier (max 15 chars) and the primary key.
type Product struct {
	NotifNo    string        `json:"prod_notif_no"`
	Name       string        `json:"prod_name"`
	Brand      string        `json:"prod_brand"`
	Category   string        `json:"prod_category"`
	StatusType ProductStatus `json:"prod_status_type"`
	StatusDate time.Time     `json:"prod_status_date"`
	HolderID   int64         `json:"holder_id"`
	HolderName string        `json:"holder_name,omitempty"`
}

// MaxNotifNoLen is the schema limit on notification numbers.
const MaxNotifNoLen = 15
