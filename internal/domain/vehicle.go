package domain

type VehicleCategory string

const (
	VehicleCategoryEconomy VehicleCategory = "economy"
	VehicleCategoryCompact VehicleCategory = "compact"
	VehicleCategorySUV     VehicleCategory = "suv"
	VehicleCategoryVan     VehicleCategory = "van"
	VehicleCategoryLuxury  VehicleCategory = "luxury"
)

// Vehicle is a rentable model definition. Physical units of the model are
// tracked individually as Subunits; availability is always computed over the
// subunit fleet, never over the model row itself.
type Vehicle struct {
	ID                int32           `json:"id"`
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int32           `json:"year"`
	Category          VehicleCategory `json:"category"`
	DailyPriceCents   int32           `json:"daily_price_cents"`
	WeeklyPriceCents  int32           `json:"weekly_price_cents"`
	MonthlyPriceCents int32           `json:"monthly_price_cents"`
	Description       string          `json:"description"`
	IsActive          bool            `json:"is_active"`
	CreatedOn         string          `json:"created_on"`
	UpdatedOn         string          `json:"updated_on"`
}

type SubunitStatus string

const (
	SubunitStatusAvailable   SubunitStatus = "available"
	SubunitStatusReserved    SubunitStatus = "reserved"
	SubunitStatusOutOnRent   SubunitStatus = "out_on_rent"
	SubunitStatusReturned    SubunitStatus = "returned"
	SubunitStatusMaintenance SubunitStatus = "maintenance"
)

// ValidSubunitStatus reports whether s is one of the known lifecycle states.
func ValidSubunitStatus(s SubunitStatus) bool {
	switch s {
	case SubunitStatusAvailable, SubunitStatusReserved, SubunitStatusOutOnRent,
		SubunitStatusReturned, SubunitStatusMaintenance:
		return true
	}
	return false
}

// Subunit is one physical, individually trackable unit of a Vehicle.
//
// Status is display state, not the source of truth for date-range
// availability: occupancy for a window is derived from the booking ledger.
// The one exception is maintenance, which excludes the unit from every
// window until the status changes.
type Subunit struct {
	ID           int32         `json:"id"`
	VehicleID    int32         `json:"vehicle_id"`
	LicensePlate string        `json:"license_plate"`
	VIN          string        `json:"vin"`
	Color        string        `json:"color"`
	Mileage      int32         `json:"mileage"`
	Status       SubunitStatus `json:"status"`
	LocationID   *int32        `json:"location_id,omitempty"`
	CreatedOn    string        `json:"created_on"`
	UpdatedOn    string        `json:"updated_on"`
}

// PermanentlyExcluded reports whether the subunit is withheld from all
// availability windows regardless of bookings.
func (s *Subunit) PermanentlyExcluded() bool {
	return s.Status == SubunitStatusMaintenance
}
