package v1

import (
	"time"

	ad_uuid "github.com/agencydesk/backend/internal/uuid"
)

type URIID struct {
	ID ad_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-03"` // Year and month in YYYY-MM format
}

type QueryYear struct {
	Year int `form:"year"` // Four digit year, defaults to the current year
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
