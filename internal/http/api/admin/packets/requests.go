package packets

// body for logging in
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// body for flipping one prayer notification toggle
type ToggleRequest struct {
	Prayer string `json:"prayer" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

// body for choosing an event reminder offset; a null lead turns the
// reminder off
type EventLeadRequest struct {
	LeadMinutes *int `json:"lead_minutes"`
}
