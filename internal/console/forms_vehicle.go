package console

import (
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
	"github.com/onebus/fleet-console/internal/validation"
)

// VehicleForm is the create/edit form of a vehicle. Bus types add the
// bus-specific fields to the required set.
type VehicleForm struct {
	Type             string `json:"type" validate:"required,number"`
	Prefix           string `json:"prefix" validate:"required,max=16"`
	NumberDoors      string `json:"numberDoors" validate:"required,number"`
	NumberSeats      string `json:"numberSeats" validate:"required,number,max=3"`
	HasAccessibility *bool  `json:"hasAccessibility"`
	FuelType         string `json:"fuelType" validate:"required,number"`
	Brand            string `json:"brand" validate:"required,number"`
	Model            string `json:"model" validate:"required"`
	Year             string `json:"year" validate:"required,number,len=4"`
	Plate            string `json:"plate" validate:"required,plate"`
	Color            string `json:"color" validate:"required,number"`
	BodyworkNumber   string `json:"bodyworkNumber" validate:"required"`
	NumberChassis    string `json:"numberChassis" validate:"required"`
	AxesNumber       string `json:"axesNumber" validate:"required,number"`
	IPVAExpiration   string `json:"ipvaExpiration" validate:"required,datetime=2006-01-02"`
	Licensing        string `json:"licensing" validate:"required"`
	Renavam          string `json:"renavam" validate:"required"`
	TransmissionType string `json:"transmissionType" validate:"required,number"`
	Status           string `json:"status" validate:"required,number"`

	BusServiceType         string `json:"busServiceType" validate:"omitempty,number"`
	BusChassisBrand        string `json:"busChassisBrand"`
	BusChassisModel        string `json:"busChassisModel"`
	BusChassisYear         string `json:"busChassisYear" validate:"omitempty,number,len=4"`
	BusHasLowFloor         *bool  `json:"busHasLowFloor"`
	BusHasLeftDoors        *bool  `json:"busHasLeftDoors"`
	BusInsuranceExpiration string `json:"busInsuranceExpiration" validate:"omitempty,datetime=2006-01-02"`
	BusFumigateExpiration  string `json:"busFumigateExpiration" validate:"omitempty,datetime=2006-01-02"`

	Image string `json:"image"`
}

// VehicleFormFrom prefills the edit form from a record.
func VehicleFormFrom(v model.Vehicle) VehicleForm {
	return VehicleForm{
		Type:                   strconv.Itoa(v.Type),
		Prefix:                 v.Prefix,
		NumberDoors:            strconv.Itoa(v.NumberDoors),
		NumberSeats:            strconv.Itoa(v.NumberSeats),
		HasAccessibility:       &v.HasAccessibility,
		FuelType:               strconv.Itoa(v.FuelType),
		Brand:                  strconv.Itoa(v.Brand),
		Model:                  v.Model,
		Year:                   strconv.Itoa(v.Year),
		Plate:                  v.Plate,
		Color:                  strconv.Itoa(v.Color),
		BodyworkNumber:         v.BodyworkNumber,
		NumberChassis:          v.NumberChassis,
		AxesNumber:             strconv.Itoa(v.AxesNumber),
		IPVAExpiration:         v.IPVAExpiration,
		Licensing:              v.Licensing,
		Renavam:                v.Renavam,
		TransmissionType:       strconv.Itoa(v.TransmissionType),
		Status:                 strconv.Itoa(v.Status),
		BusServiceType:         itoaPtr(v.BusServiceType),
		BusChassisBrand:        v.BusChassisBrand,
		BusChassisModel:        v.BusChassisModel,
		BusChassisYear:         itoaPtr(v.BusChassisYear),
		BusHasLowFloor:         &v.BusHasLowFloor,
		BusHasLeftDoors:        &v.BusHasLeftDoors,
		BusInsuranceExpiration: deref(v.BusInsuranceExpiration),
		BusFumigateExpiration:  deref(v.BusFumigateExpiration),
		Image:                  v.Image,
	}
}

// IsBus reports whether the selected type shows the bus fields.
func (f VehicleForm) IsBus() bool {
	t, err := strconv.Atoi(strings.TrimSpace(f.Type))
	return err == nil && model.IsBusType(t)
}

// Validate returns the field errors of the whole form, or nil.
func (f VehicleForm) Validate() map[string]string {
	fv := check(f)
	if f.IsBus() {
		for field, value := range map[string]string{
			"busServiceType":  f.BusServiceType,
			"busChassisBrand": f.BusChassisBrand,
			"busChassisModel": f.BusChassisModel,
			"busChassisYear":  f.BusChassisYear,
		} {
			fv.Check(field, value, validation.Required(field))
		}
		for field, value := range map[string]*bool{
			"hasAccessibility": f.HasAccessibility,
			"busHasLowFloor":   f.BusHasLowFloor,
			"busHasLeftDoors":  f.BusHasLeftDoors,
		} {
			if value == nil {
				fv.Set(field, field+" is required.")
			}
		}
	}
	fv.Check("ipvaExpiration", f.IPVAExpiration, validation.NotPast("ipvaExpiration", validation.TodayDate()))
	return result(fv)
}

// Payload validates the form and builds the request body. Optional numeric
// bus fields are sent as null when empty.
func (f VehicleForm) Payload() (model.Vehicle, error) {
	if errs := f.Validate(); errs != nil {
		return model.Vehicle{}, invalid(errs)
	}

	ints := map[string]string{
		"type": f.Type, "numberDoors": f.NumberDoors, "numberSeats": f.NumberSeats,
		"fuelType": f.FuelType, "brand": f.Brand, "year": f.Year, "color": f.Color,
		"axesNumber": f.AxesNumber, "transmissionType": f.TransmissionType, "status": f.Status,
	}
	n := make(map[string]int, len(ints))
	for field, v := range ints {
		i, err := toInt(field, v)
		if err != nil {
			return model.Vehicle{}, err
		}
		n[field] = i
	}
	serviceType, err := optionalInt("busServiceType", f.BusServiceType)
	if err != nil {
		return model.Vehicle{}, err
	}
	chassisYear, err := optionalInt("busChassisYear", f.BusChassisYear)
	if err != nil {
		return model.Vehicle{}, err
	}

	return model.Vehicle{
		Type:                   n["type"],
		Prefix:                 strings.TrimSpace(f.Prefix),
		NumberDoors:            n["numberDoors"],
		NumberSeats:            n["numberSeats"],
		HasAccessibility:       f.HasAccessibility != nil && *f.HasAccessibility,
		FuelType:               n["fuelType"],
		Brand:                  n["brand"],
		Model:                  strings.TrimSpace(f.Model),
		Year:                   n["year"],
		Plate:                  strings.ToUpper(strings.TrimSpace(f.Plate)),
		Color:                  n["color"],
		BodyworkNumber:         strings.TrimSpace(f.BodyworkNumber),
		NumberChassis:          strings.TrimSpace(f.NumberChassis),
		AxesNumber:             n["axesNumber"],
		IPVAExpiration:         f.IPVAExpiration,
		Licensing:              strings.TrimSpace(f.Licensing),
		Renavam:                strings.TrimSpace(f.Renavam),
		TransmissionType:       n["transmissionType"],
		Status:                 n["status"],
		BusServiceType:         serviceType,
		BusChassisBrand:        strings.TrimSpace(f.BusChassisBrand),
		BusChassisModel:        strings.TrimSpace(f.BusChassisModel),
		BusChassisYear:         chassisYear,
		BusHasLowFloor:         f.BusHasLowFloor != nil && *f.BusHasLowFloor,
		BusHasLeftDoors:        f.BusHasLeftDoors != nil && *f.BusHasLeftDoors,
		BusInsuranceExpiration: optional(f.BusInsuranceExpiration),
		BusFumigateExpiration:  optional(f.BusFumigateExpiration),
		Image:                  f.Image,
	}, nil
}
