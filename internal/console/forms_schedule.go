package console

import (
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/shopspring/decimal"
)

const costMessage = "cost must be a non-negative amount."

// MaintenanceForm schedules a vehicle's workshop visit.
type MaintenanceForm struct {
	VehicleID        string `json:"vehicleId" validate:"required,number"`
	Sector           string `json:"sector" validate:"required,number"`
	Description      string `json:"description" validate:"required"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate"`
	SurveyExpiration string `json:"surveyExpiration" validate:"omitempty,datetime=2006-01-02"`
	Cost             string `json:"cost"`
}

// MaintenanceFormFrom prefills the edit form from a record.
func MaintenanceFormFrom(m model.Maintenance) MaintenanceForm {
	f := MaintenanceForm{
		VehicleID:        idText(m.VehicleID),
		Sector:           strconv.Itoa(m.Sector),
		Description:      m.Description,
		StartDate:        m.StartDate,
		EndDate:          deref(m.EndDate),
		SurveyExpiration: deref(m.SurveyExpiration),
	}
	if m.Cost != nil {
		f.Cost = m.Cost.String()
	}
	return f
}

// HasChanges reports whether f differs from the form it was loaded as.
func (f MaintenanceForm) HasChanges(original MaintenanceForm) bool {
	return f != original
}

func (f MaintenanceForm) cost() (*decimal.Decimal, error) {
	raw := strings.TrimSpace(f.Cost)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil || d.IsNegative() {
		return nil, apperrors.ValidationField("cost", costMessage)
	}
	return &d, nil
}

// Validate returns the field errors of the form, or nil.
func (f MaintenanceForm) Validate() map[string]string {
	fv := check(f)
	if _, err := f.cost(); err != nil {
		fv.Set("cost", costMessage)
	}
	return result(fv)
}

// ValidateEdit is Validate plus the requirement that something changed.
func (f MaintenanceForm) ValidateEdit(original MaintenanceForm) map[string]string {
	errs := f.Validate()
	if !f.HasChanges(original) {
		if errs == nil {
			errs = map[string]string{}
		}
		errs[""] = NoChangesMessage
	}
	return errs
}

// Payload validates the form and builds the request body.
func (f MaintenanceForm) Payload() (model.Maintenance, error) {
	if errs := f.Validate(); errs != nil {
		return model.Maintenance{}, invalid(errs)
	}
	return f.payload()
}

// EditPayload is Payload for an edit of original.
func (f MaintenanceForm) EditPayload(id int64, original MaintenanceForm) (model.Maintenance, error) {
	if errs := f.ValidateEdit(original); errs != nil {
		return model.Maintenance{}, invalid(errs)
	}
	m, err := f.payload()
	m.ID = id
	return m, err
}

func (f MaintenanceForm) payload() (model.Maintenance, error) {
	vehicleID, err := toID("vehicleId", f.VehicleID)
	if err != nil {
		return model.Maintenance{}, err
	}
	sector, err := toInt("sector", f.Sector)
	if err != nil {
		return model.Maintenance{}, err
	}
	cost, err := f.cost()
	if err != nil {
		return model.Maintenance{}, err
	}
	return model.Maintenance{
		VehicleID:        vehicleID,
		Sector:           sector,
		Description:      strings.TrimSpace(f.Description),
		StartDate:        f.StartDate,
		EndDate:          optional(f.EndDate),
		SurveyExpiration: optional(f.SurveyExpiration),
		Cost:             cost,
	}, nil
}

// WorkdayForm assigns a shift to an employee.
type WorkdayForm struct {
	EmployeeID string `json:"employeeId" validate:"required,number"`
	DayType    string `json:"dayType" validate:"required,number"`
	StartTime  string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime    string `json:"endTime" validate:"required,datetime=15:04"`
}

// Validate returns the field errors of the form, or nil.
func (f WorkdayForm) Validate() map[string]string {
	return result(check(f))
}

// Payload validates the form and builds the request body.
func (f WorkdayForm) Payload() (model.EmployeeWorkday, error) {
	if errs := f.Validate(); errs != nil {
		return model.EmployeeWorkday{}, invalid(errs)
	}
	employeeID, err := toID("employeeId", f.EmployeeID)
	if err != nil {
		return model.EmployeeWorkday{}, err
	}
	dayType, err := toInt("dayType", f.DayType)
	if err != nil {
		return model.EmployeeWorkday{}, err
	}
	return model.EmployeeWorkday{
		EmployeeID: employeeID,
		DayType:    dayType,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
	}, nil
}

// OperationForm allocates a driver and vehicle to a line on one date.
type OperationForm struct {
	EmployeeID    string `json:"employeeId" validate:"required,number"`
	VehicleID     string `json:"vehicleId" validate:"required,number"`
	LineID        string `json:"lineId" validate:"required,number"`
	OperationDate string `json:"operationDate" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `json:"endTime" validate:"required,datetime=15:04"`
}

// Validate returns the field errors of the form, or nil.
func (f OperationForm) Validate() map[string]string {
	return result(check(f))
}

// Payload validates the form and builds the request body.
func (f OperationForm) Payload() (model.VehicleOperation, error) {
	if errs := f.Validate(); errs != nil {
		return model.VehicleOperation{}, invalid(errs)
	}
	ids := make(map[string]int64, 3)
	for field, v := range map[string]string{"employeeId": f.EmployeeID, "vehicleId": f.VehicleID, "lineId": f.LineID} {
		id, err := toID(field, v)
		if err != nil {
			return model.VehicleOperation{}, err
		}
		ids[field] = id
	}
	return model.VehicleOperation{
		EmployeeID:    ids["employeeId"],
		VehicleID:     ids["vehicleId"],
		LineID:        ids["lineId"],
		OperationDate: f.OperationDate,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
	}, nil
}

// OperationEditForm re-points an operation at another line schedule, shift
// or vehicle.
type OperationEditForm struct {
	LineTimeID        string `json:"lineTimeId" validate:"required,number"`
	EmployeeWorkdayID string `json:"employeeWorkdayId" validate:"required,number"`
	VehicleID         string `json:"vehicleId" validate:"required,number"`
}

// OperationEditFormFrom prefills the edit form from a record.
func OperationEditFormFrom(op model.VehicleOperation) OperationEditForm {
	return OperationEditForm{
		LineTimeID:        idText(op.LineTimeID),
		EmployeeWorkdayID: idText(op.EmployeeWorkdayID),
		VehicleID:         idText(op.VehicleID),
	}
}

// ValidateEdit returns the field errors of the form, including the
// no-change error under the empty key, or nil.
func (f OperationEditForm) ValidateEdit(original OperationEditForm) map[string]string {
	errs := result(check(f))
	if f == original {
		if errs == nil {
			errs = map[string]string{}
		}
		errs[""] = NoChangesMessage
	}
	return errs
}

// EditPayload validates the form and builds the update body for id.
func (f OperationEditForm) EditPayload(id int64, original OperationEditForm) (model.VehicleOperation, error) {
	if errs := f.ValidateEdit(original); errs != nil {
		return model.VehicleOperation{}, invalid(errs)
	}
	lineTimeID, err := toID("lineTimeId", f.LineTimeID)
	if err != nil {
		return model.VehicleOperation{}, err
	}
	workdayID, err := toID("employeeWorkdayId", f.EmployeeWorkdayID)
	if err != nil {
		return model.VehicleOperation{}, err
	}
	vehicleID, err := toID("vehicleId", f.VehicleID)
	if err != nil {
		return model.VehicleOperation{}, err
	}
	return model.VehicleOperation{
		ID:                id,
		LineTimeID:        lineTimeID,
		EmployeeWorkdayID: workdayID,
		VehicleID:         vehicleID,
	}, nil
}
