package models

// Holder is the company of record for a product's regulatory notification.
// Holders are reference data owned by the ingestion pipeline; this service
// only reads them.
type Holder struct {
	HolderID   int64  `json:"holder_id"`
	HolderName string `json:"holder_name"`
}
