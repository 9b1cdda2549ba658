package domain

type Customer struct {
	ID               int32  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	LicenseNumber    string `json:"license_number"`
	LicenseCountry   string `json:"license_country"`
	IsBlacklisted    bool   `json:"is_blacklisted"`
	BlacklistReason  string `json:"blacklist_reason,omitempty"`
	CreatedOn        string `json:"created_on"`
	UpdatedOn        string `json:"updated_on"`
}

// Location is a pickup/dropoff point referenced (not owned) by bookings.
type Location struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	IsActive bool   `json:"is_active"`
}

// AdminUser is a back-office operator account.
type AdminUser struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	CreatedOn    string `json:"created_on"`
}
