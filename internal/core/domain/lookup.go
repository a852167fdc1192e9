package domain

// LookupStatus classifies the outcome of a verse lookup
type LookupStatus string

const (
	LookupStatusOK               LookupStatus = "ok"
	LookupStatusInvalidReference LookupStatus = "invalid_reference"
	LookupStatusNoData           LookupStatus = "no_data"
	LookupStatusStoreError       LookupStatus = "store_error"
)

// User-facing reply texts
const (
	InvalidReferenceText = "Invalid reference. Use format: " + ReferenceUsage
	StoreErrorText       = "DB error"
)

// LookupResult is the reply to a lookup plus enough metadata for the caller
// to decide how to deliver it
type LookupResult struct {
	Text      string       `json:"text"`
	Status    LookupStatus `json:"status"`
	Track     string       `json:"track"`
	Input     string       `json:"input"`
	Reference *Reference   `json:"reference,omitempty"`
	Bounds    *RangeBounds `json:"bounds,omitempty"`
	RowCount  int          `json:"row_count"`
	Truncated bool         `json:"truncated"`
}

// IsError returns true for outcomes a reply should mark as failures
func (r *LookupResult) IsError() bool {
	return r.Status == LookupStatusInvalidReference || r.Status == LookupStatusStoreError
}
