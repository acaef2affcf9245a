package dto

// ── shared query DTOs ──

// PageQuery skip/limit pagination shared by list endpoints.
type PageQuery struct {
	Skip  int `form:"skip"  binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// MessageResponse plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
