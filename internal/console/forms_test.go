package console

import (
	"testing"

	"github.com/onebus/fleet-console/internal/domain/model"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmployee(t *testing.T) EmployeeForm {
	t.Helper()
	var f EmployeeForm
	for field, v := range map[string]string{
		"name":          " Ana Souza ",
		"rg":            "12.345.678-x9",
		"cpf":           "52998224725",
		"bloodType":     "4",
		"code":          "E-001",
		"role":          "3",
		"email":         "ana@example.com",
		"phone":         "11987654321",
		"hiringDate":    "2020-01-15",
		"cnhNumber":     "123.456.789-01",
		"cnhExpiration": "2099-12-31",
		"status":        "1",
	} {
		require.NoError(t, f.Input(field, v))
	}
	return f
}

func TestEmployeeFormInputNormalises(t *testing.T) {
	f := validEmployee(t)
	assert.Equal(t, "529.982.247-25", f.CPF)
	assert.Equal(t, "(11) 98765-4321", f.Phone)
	assert.Equal(t, "12345678X", f.RG)
	assert.Equal(t, "12345678901", f.CNHNumber)

	assert.True(t, apperrors.IsValidation(f.Input("salary", "1")))
}

func TestEmployeeFormBlur(t *testing.T) {
	f := validEmployee(t)
	assert.Empty(t, f.Blur("cpf"))
	assert.Empty(t, f.Blur("rg"))
	assert.Empty(t, f.Blur("name"))

	require.NoError(t, f.Input("cpf", "52998224724"))
	assert.Equal(t, "cpf is invalid.", f.Blur("cpf"))
	require.NoError(t, f.Input("rg", "1234"))
	assert.Equal(t, "rg must contain 9 characters.", f.Blur("rg"))
	require.NoError(t, f.Input("cnhNumber", "123"))
	assert.Equal(t, "cnhNumber must contain 11 digits.", f.Blur("cnhNumber"))
}

func TestEmployeeFormPayload(t *testing.T) {
	f := validEmployee(t)
	require.Nil(t, f.Validate())

	e, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", e.Name)
	assert.Equal(t, "52998224725", e.CPF)
	assert.Equal(t, "11987654321", e.Phone)
	assert.Equal(t, 4, e.BloodType)
	assert.Equal(t, 3, e.Role)
	require.NotNil(t, e.HiringDate)
	assert.Equal(t, "2020-01-15", *e.HiringDate)

	f.HiringDate = ""
	e, err = f.Payload()
	require.NoError(t, err)
	assert.Nil(t, e.HiringDate, "empty hiring date is sent as null")
}

func TestEmployeeFormCNHDependsOnRole(t *testing.T) {
	f := validEmployee(t)
	f.CNHNumber = ""
	f.CNHExpiration = ""

	errs := f.Validate()
	assert.Equal(t, "cnhNumber is required.", errs["cnhNumber"])
	assert.Equal(t, "cnhExpiration is required.", errs["cnhExpiration"])

	_, err := f.Payload()
	require.Error(t, err)
	assert.Equal(t, "cnhExpiration", apperrors.GetField(err))

	for _, role := range []string{"0", "1", "2"} {
		f.Role = role
		assert.False(t, f.RequiresCNH())
		assert.Nil(t, f.Validate(), role)
	}

	f.Role = ""
	assert.True(t, f.RequiresCNH())
}

func TestEmployeeFormRequiredAndDates(t *testing.T) {
	errs := EmployeeForm{}.Validate()
	for _, field := range []string{"name", "rg", "cpf", "bloodType", "code", "role", "email", "phone", "status"} {
		assert.Contains(t, errs, field)
	}

	f := validEmployee(t)
	f.HiringDate = "2999-01-01"
	f.CNHExpiration = "2000-01-01"
	f.Email = "not-an-email"
	errs = f.Validate()
	assert.Equal(t, "hiringDate cannot be in the future.", errs["hiringDate"])
	assert.Equal(t, "cnhExpiration cannot be in the past.", errs["cnhExpiration"])
	assert.Equal(t, "email must be a valid email.", errs["email"])
}

func TestEmployeeFormFrom(t *testing.T) {
	hired := "2021-05-02"
	f := EmployeeFormFrom(model.Employee{
		Name: "Ana", RG: "12345678x", CPF: "52998224725", Phone: "11987654321",
		Role: 1, HiringDate: &hired,
	})
	assert.Equal(t, "529.982.247-25", f.CPF)
	assert.Equal(t, "(11) 98765-4321", f.Phone)
	assert.Equal(t, "12345678X", f.RG)
	assert.Equal(t, "1", f.Role)
	assert.Equal(t, hired, f.HiringDate)
	assert.Empty(t, f.CNHExpiration)
}

func boolPtr(b bool) *bool { return &b }

func validVehicle() VehicleForm {
	return VehicleForm{
		Type: "5", Prefix: "1020", NumberDoors: "2", NumberSeats: "5", FuelType: "1",
		Brand: "3", Model: "Sprinter", Year: "2022", Plate: "abc1d23", Color: "2",
		BodyworkNumber: "BW-9", NumberChassis: "9BWZZZ377VT004251", AxesNumber: "2",
		IPVAExpiration: "2099-03-01", Licensing: "2025", Renavam: "00123456789",
		TransmissionType: "0", Status: "1",
	}
}

func TestVehicleFormNonBus(t *testing.T) {
	f := validVehicle()
	assert.False(t, f.IsBus())
	require.Nil(t, f.Validate())

	v, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, 5, v.Type)
	assert.Equal(t, "ABC1D23", v.Plate)
	assert.Equal(t, 2022, v.Year)
	assert.Nil(t, v.BusServiceType)
	assert.Nil(t, v.BusChassisYear)
}

func TestVehicleFormBusFields(t *testing.T) {
	f := validVehicle()
	f.Type = "1"
	require.True(t, f.IsBus())

	errs := f.Validate()
	for _, field := range []string{
		"hasAccessibility", "busServiceType", "busChassisBrand", "busChassisModel",
		"busChassisYear", "busHasLowFloor", "busHasLeftDoors",
	} {
		assert.Contains(t, errs, field)
	}

	f.HasAccessibility = boolPtr(true)
	f.BusServiceType = "2"
	f.BusChassisBrand = "Mercedes-Benz"
	f.BusChassisModel = "OF-1721"
	f.BusChassisYear = "2019"
	f.BusHasLowFloor = boolPtr(false)
	f.BusHasLeftDoors = boolPtr(true)
	require.Nil(t, f.Validate())

	v, err := f.Payload()
	require.NoError(t, err)
	require.NotNil(t, v.BusServiceType)
	assert.Equal(t, 2, *v.BusServiceType)
	require.NotNil(t, v.BusChassisYear)
	assert.Equal(t, 2019, *v.BusChassisYear)
	assert.True(t, v.HasAccessibility)
	assert.True(t, v.BusHasLeftDoors)

	assert.Equal(t, f.BusChassisModel, VehicleFormFrom(v).BusChassisModel)
}

func TestVehicleFormChecks(t *testing.T) {
	f := validVehicle()
	f.Plate = "12-AB"
	f.Year = "22"
	f.IPVAExpiration = "2001-01-01"
	errs := f.Validate()
	assert.Equal(t, "plate is not a valid plate.", errs["plate"])
	assert.Contains(t, errs, "year")
	assert.Equal(t, "ipvaExpiration cannot be in the past.", errs["ipvaExpiration"])
}

func TestMaintenanceForm(t *testing.T) {
	f := MaintenanceForm{VehicleID: "12", Sector: "1", Description: "brakes", StartDate: "2025-03-01T08:00", Cost: "1520,75"}
	require.Nil(t, f.Validate())

	m, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.VehicleID)
	require.NotNil(t, m.Cost)
	assert.True(t, decimal.RequireFromString("1520.75").Equal(*m.Cost))
	assert.Nil(t, m.EndDate)

	f.Cost = "-3"
	assert.Contains(t, f.Validate(), "cost")

	errs := MaintenanceForm{}.Validate()
	for _, field := range []string{"vehicleId", "sector", "description", "startDate"} {
		assert.Contains(t, errs, field)
	}
}

func TestMaintenanceFormEditNeedsChanges(t *testing.T) {
	cost := decimal.RequireFromString("99.90")
	original := MaintenanceFormFrom(model.Maintenance{
		VehicleID: 12, Sector: 2, Description: "oil", StartDate: "2025-03-01T08:00", Cost: &cost,
	})
	assert.Equal(t, "99.9", original.Cost)

	f := original
	assert.False(t, f.HasChanges(original))
	assert.Equal(t, NoChangesMessage, f.ValidateEdit(original)[""])
	_, err := f.EditPayload(5, original)
	require.Error(t, err)
	assert.Equal(t, NoChangesMessage, FeedbackMessage(err, "fallback"))

	f.Description = "oil and filters"
	require.Nil(t, f.ValidateEdit(original))
	m, err := f.EditPayload(5, original)
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.ID)
	assert.Equal(t, "oil and filters", m.Description)
}

func TestWorkdayForm(t *testing.T) {
	f := WorkdayForm{EmployeeID: "4", DayType: "0", StartTime: "06:00", EndTime: "14:00"}
	w, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeWorkday{EmployeeID: 4, DayType: 0, StartTime: "06:00", EndTime: "14:00"}, w)

	f.EndTime = "25:00"
	assert.Contains(t, f.Validate(), "endTime")
	assert.Len(t, WorkdayForm{}.Validate(), 4)
}

func TestOperationForms(t *testing.T) {
	f := OperationForm{EmployeeID: "4", VehicleID: "9", LineID: "2", OperationDate: "2025-04-10", StartTime: "06:00", EndTime: "07:30"}
	op, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, int64(9), op.VehicleID)
	assert.Equal(t, int64(2), op.LineID)
	assert.Len(t, OperationForm{}.Validate(), 6)

	original := OperationEditFormFrom(model.VehicleOperation{LineTimeID: 3, EmployeeWorkdayID: 8, VehicleID: 9})
	edit := original
	assert.Contains(t, edit.ValidateEdit(original), "")

	edit.VehicleID = "10"
	op, err = edit.EditPayload(21, original)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleOperation{ID: 21, LineTimeID: 3, EmployeeWorkdayID: 8, VehicleID: 10}, op)

	edit.LineTimeID = ""
	assert.Equal(t, "lineTimeId is required.", edit.ValidateEdit(original)["lineTimeId"])
}
