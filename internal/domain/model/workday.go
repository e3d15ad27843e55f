package model

// EmployeeWorkday is an employee's shift on a given day type.
type EmployeeWorkday struct {
	ID         int64  `json:"id,omitempty"`
	EmployeeID int64  `json:"employeeId"`
	DayType    int    `json:"dayType"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// EmployeeWorkdayFilter holds the workday list filters.
type EmployeeWorkdayFilter struct {
	EmployeeID string
	DayType    string
}

// Params implements Filter.
func (f EmployeeWorkdayFilter) Params() map[string]string {
	return map[string]string{"EmployeeId": f.EmployeeID, "DayType": f.DayType}
}

// VehicleOperation allocates a vehicle and driver to a line for one day.
// Updates address the allocation through LineTimeID and EmployeeWorkdayID.
type VehicleOperation struct {
	ID                int64  `json:"id,omitempty"`
	EmployeeID        int64  `json:"employeeId,omitempty"`
	VehicleID         int64  `json:"vehicleId"`
	LineID            int64  `json:"lineId,omitempty"`
	LineTimeID        int64  `json:"lineTimeId,omitempty"`
	EmployeeWorkdayID int64  `json:"employeeWorkdayId,omitempty"`
	OperationDate     string `json:"operationDate,omitempty"`
	StartTime         string `json:"startTime,omitempty"`
	EndTime           string `json:"endTime,omitempty"`
}

// VehicleOperationFilter holds the operation list filters.
type VehicleOperationFilter struct {
	VehicleID string
	LineID    string
}

// Params implements Filter.
func (f VehicleOperationFilter) Params() map[string]string {
	return map[string]string{"VehicleId": f.VehicleID, "LineId": f.LineID}
}
