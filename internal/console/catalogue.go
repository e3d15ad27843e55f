// Package console holds the per-screen knowledge of the fleet console: which
// backend collections exist, how their filters and enum options are named,
// and how record forms are validated and turned into request payloads.
package console

import (
	"slices"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
	"github.com/onebus/fleet-console/internal/export"
	"github.com/onebus/fleet-console/internal/fleetapi"
	"github.com/onebus/fleet-console/internal/paged"
)

// Resource describes one list screen.
type Resource struct {
	Name    string
	Title   string
	Path    string
	Filters []string
	Options []string
	Columns []export.Column

	open func(c *fleetapi.Client, r Resource, opts ...paged.Option) Screen
}

// Open returns the list screen of r backed by c.
func (r Resource) Open(c *fleetapi.Client, opts ...paged.Option) Screen {
	return r.open(c, r, opts...)
}

// Resources returns the catalogue of list screens.
func Resources() []Resource {
	return []Resource{
		{
			Name:    "employees",
			Title:   "Employees",
			Path:    "/employees",
			Filters: []string{"Role", "Status"},
			Options: []string{"/employees/roles", "/employees/status", "/employees/bloodTypes"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Code", Key: "code"}, {Header: "Name", Key: "name"},
				{Header: "CPF", Key: "cpf"}, {Header: "Role", Key: "role"}, {Header: "Email", Key: "email"},
				{Header: "Phone", Key: "phone"}, {Header: "Status", Key: "status"},
			},
			open: screenFor[model.Employee](func(m map[string]string) model.EmployeeFilter {
				return model.EmployeeFilter{Role: m["Role"], Status: m["Status"]}
			}),
		},
		{
			Name:    "vehicles",
			Title:   "Vehicles",
			Path:    "/vehicles",
			Filters: []string{"Status", "Type"},
			Options: []string{
				"/vehicles/types", "/vehicles/fuelTypes", "/vehicles/brands", "/vehicles/colors",
				"/vehicles/transmissionTypes", "/vehicles/status", "/vehicles/serviceTypes",
				"/vehicles/chassisBrands",
			},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Prefix", Key: "prefix"}, {Header: "Type", Key: "type"},
				{Header: "Plate", Key: "plate"}, {Header: "Model", Key: "model"}, {Header: "Year", Key: "year"},
				{Header: "Status", Key: "status"},
			},
			open: screenFor[model.Vehicle](func(m map[string]string) model.VehicleFilter {
				return model.VehicleFilter{Status: m["Status"], Type: m["Type"]}
			}),
		},
		{
			Name:    "lines",
			Title:   "Lines",
			Path:    "/lines",
			Filters: []string{"Type", "DirectionType"},
			Options: []string{"/lines/types", "/lines/directionTypes"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Number", Key: "number"}, {Header: "Name", Key: "name"},
				{Header: "Type", Key: "type"}, {Header: "Direction", Key: "directionType"},
				{Header: "Travel time", Key: "travelTime"}, {Header: "Mileage", Key: "mileage"},
			},
			open: screenFor[model.Line](func(m map[string]string) model.LineFilter {
				return model.LineFilter{Type: m["Type"], DirectionType: m["DirectionType"]}
			}),
		},
		{
			Name:    "line-schedules",
			Title:   "Line schedules",
			Path:    "/linesTimes",
			Filters: []string{"LineId", "DayType"},
			Options: []string{"/lines/directionTypes", "/employeesWorkdays/daysTypes"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Line", Key: "lineId"}, {Header: "Direction", Key: "directionType"},
				{Header: "Day type", Key: "dayType"}, {Header: "Start", Key: "startTime"}, {Header: "End", Key: "endTime"},
			},
			open: screenFor[model.LineSchedule](func(m map[string]string) model.LineScheduleFilter {
				return model.LineScheduleFilter{LineID: m["LineId"], DayType: m["DayType"]}
			}),
		},
		{
			Name:    "workdays",
			Title:   "Employee workdays",
			Path:    "/employeesWorkdays",
			Filters: []string{"EmployeeId", "DayType"},
			Options: []string{"/employeesWorkdays/daysTypes"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Employee", Key: "employeeId"}, {Header: "Day type", Key: "dayType"},
				{Header: "Start", Key: "startTime"}, {Header: "End", Key: "endTime"},
			},
			open: screenFor[model.EmployeeWorkday](func(m map[string]string) model.EmployeeWorkdayFilter {
				return model.EmployeeWorkdayFilter{EmployeeID: m["EmployeeId"], DayType: m["DayType"]}
			}),
		},
		{
			Name:    "operations",
			Title:   "Vehicle operations",
			Path:    "/vehiclesOperations",
			Filters: []string{"VehicleId", "LineId"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Date", Key: "operationDate"}, {Header: "Vehicle", Key: "vehicleId"},
				{Header: "Employee", Key: "employeeId"}, {Header: "Line", Key: "lineId"},
				{Header: "Start", Key: "startTime"}, {Header: "End", Key: "endTime"},
			},
			open: screenFor[model.VehicleOperation](func(m map[string]string) model.VehicleOperationFilter {
				return model.VehicleOperationFilter{VehicleID: m["VehicleId"], LineID: m["LineId"]}
			}),
		},
		{
			Name:    "maintenances",
			Title:   "Maintenances",
			Path:    "/maintenances",
			Filters: []string{"Sector", "VehicleId"},
			Options: []string{"/maintenances/sectors"},
			Columns: []export.Column{
				{Header: "ID", Key: "id"}, {Header: "Vehicle", Key: "vehicleId"}, {Header: "Sector", Key: "sector"},
				{Header: "Description", Key: "description"}, {Header: "Start", Key: "startDate"},
				{Header: "End", Key: "endDate"}, {Header: "Cost", Key: "cost"},
			},
			open: screenFor[model.Maintenance](func(m map[string]string) model.MaintenanceFilter {
				return model.MaintenanceFilter{Sector: m["Sector"], VehicleID: m["VehicleId"]}
			}),
		},
	}
}

// Lookup finds a resource by name or endpoint path, ignoring case.
func Lookup(name string) (Resource, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, r := range Resources() {
		if key == r.Name || key == strings.ToLower(r.Path) || "/"+key == strings.ToLower(r.Path) {
			return r, true
		}
	}
	return Resource{}, false
}

// Names returns the resource names in catalogue order.
func Names() []string {
	var out []string
	for _, r := range Resources() {
		out = append(out, r.Name)
	}
	return out
}

// OptionPaths returns every enum endpoint of the catalogue, deduplicated and sorted.
func OptionPaths() []string {
	var out []string
	for _, r := range Resources() {
		out = append(out, r.Options...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
