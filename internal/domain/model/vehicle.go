package model

// Vehicle types that are buses and carry the bus-specific fields.
var busTypes = map[int]bool{0: true, 1: true, 2: true} //nolint:gochecknoglobals // read-only lookup

// IsBusType reports whether a vehicle type is one of the bus types.
func IsBusType(vehicleType int) bool {
	return busTypes[vehicleType]
}

// Vehicle is a fleet vehicle record.
type Vehicle struct {
	ID                     int64   `json:"id,omitempty"`
	Type                   int     `json:"type"`
	Prefix                 string  `json:"prefix"`
	NumberDoors            int     `json:"numberDoors"`
	NumberSeats            int     `json:"numberSeats"`
	HasAccessibility       bool    `json:"hasAccessibility"`
	FuelType               int     `json:"fuelType"`
	Brand                  int     `json:"brand"`
	Model                  string  `json:"model"`
	Year                   int     `json:"year"`
	Plate                  string  `json:"plate"`
	Color                  int     `json:"color"`
	BodyworkNumber         string  `json:"bodyworkNumber"`
	NumberChassis          string  `json:"numberChassis"`
	AxesNumber             int     `json:"axesNumber"`
	IPVAExpiration         string  `json:"ipvaExpiration"`
	Licensing              string  `json:"licensing"`
	Renavam                string  `json:"renavam"`
	TransmissionType       int     `json:"transmissionType"`
	Status                 int     `json:"status"`
	BusServiceType         *int    `json:"busServiceType"`
	BusChassisBrand        string  `json:"busChassisBrand,omitempty"`
	BusChassisModel        string  `json:"busChassisModel,omitempty"`
	BusChassisYear         *int    `json:"busChassisYear"`
	BusHasLowFloor         bool    `json:"busHasLowFloor"`
	BusHasLeftDoors        bool    `json:"busHasLeftDoors"`
	BusInsuranceExpiration *string `json:"busInsuranceExpiration,omitempty"`
	BusFumigateExpiration  *string `json:"busFumigateExpiration,omitempty"`
	Image                  string  `json:"image,omitempty"`
}

// VehicleFilter holds the vehicle list filters.
type VehicleFilter struct {
	Status string
	Type   string
}

// Params implements Filter.
func (f VehicleFilter) Params() map[string]string {
	return map[string]string{"Status": f.Status, "Type": f.Type}
}
