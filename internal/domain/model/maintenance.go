package model

import "github.com/shopspring/decimal"

// Maintenance is a workshop visit of a vehicle.
type Maintenance struct {
	ID               int64            `json:"id,omitempty"`
	VehicleID        int64            `json:"vehicleId"`
	Sector           int              `json:"sector"`
	Description      string           `json:"description"`
	StartDate        string           `json:"startDate"`
	EndDate          *string          `json:"endDate"`
	SurveyExpiration *string          `json:"surveyExpiration"`
	Cost             *decimal.Decimal `json:"cost,omitempty"`
}

// MaintenanceFilter holds the maintenance list filters.
type MaintenanceFilter struct {
	Sector    string
	VehicleID string
}

// Params implements Filter.
func (f MaintenanceFilter) Params() map[string]string {
	return map[string]string{"Sector": f.Sector, "VehicleId": f.VehicleID}
}
