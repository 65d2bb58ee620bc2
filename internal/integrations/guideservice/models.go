package guideservice

// Guide модель гида из GuideService
type Guide struct {
	ID             int64  `json:"id"`
	DisplayName    string `json:"display_name"`
	PolicyKind     string `json:"policy_kind"`
	DepositPercent int    `json:"deposit_percent"`
	IsActive       bool   `json:"is_active"`
}

// Service модель услуги гида из GuideService
type Service struct {
	ID              int64  `json:"id"`
	GuideID         int64  `json:"guide_id"`
	Title           string `json:"title"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	DefaultCapacity int    `json:"default_capacity"`
	IsActive        bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от GuideService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
