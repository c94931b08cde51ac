package v1

import (
	"time"

	ez_uuid "github.com/finance-tracker/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryDate struct {
	Date time.Time `form:"date" time_format:"2006-01-02" time_utc:"1" example:"2024-03-15"` // Date in YYYY-MM-DD format. Defaults to today.
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// reference returns the date or the current time when it is not set.
func (q QueryDate) reference() time.Time {
	if q.Date.IsZero() {
		return time.Now().In(time.UTC)
	}
	return q.Date
}
