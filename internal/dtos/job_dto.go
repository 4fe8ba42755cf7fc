package dtos

type JobCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	// City is referenced by name at creation time and stored by id.
	City string `json:"city" binding:"required"`

	// Optional fields
	Influx *int `json:"influx"`
}

// JobUpdateRequest carries a partial update; only set fields are applied.
type JobUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	City        *string `json:"city"`
	Influx      *int    `json:"influx"`
}

type ApplyRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	Description string `json:"description" binding:"required"`
}
