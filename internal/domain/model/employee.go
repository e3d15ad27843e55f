package model

// Employee roles that do not drive vehicles and so need no CNH.
var nonDriverRoles = map[int]bool{0: true, 1: true, 2: true} //nolint:gochecknoglobals // read-only lookup

// RoleRequiresCNH reports whether employees with role must hold a driver's licence.
func RoleRequiresCNH(role int) bool {
	return !nonDriverRoles[role]
}

// Employee is a staff member record.
type Employee struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	RG            string  `json:"rg"`
	CPF           string  `json:"cpf"`
	BloodType     int     `json:"bloodType"`
	Code          string  `json:"code"`
	Role          int     `json:"role"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	HiringDate    *string `json:"hiringDate"`
	CNHNumber     string  `json:"cnhNumber,omitempty"`
	CNHExpiration *string `json:"cnhExpiration,omitempty"`
	Status        int     `json:"status"`
	Image         string  `json:"image,omitempty"`
}

// EmployeeFilter holds the employee list filters.
type EmployeeFilter struct {
	Role   string
	Status string
}

// Params implements Filter.
func (f EmployeeFilter) Params() map[string]string {
	return map[string]string{"Role": f.Role, "Status": f.Status}
}
