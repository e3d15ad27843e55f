package console

import (
	"sort"
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/validation"
)

// NoChangesMessage is reported when an edit form equals the loaded record.
const NoChangesMessage = "No changes were made."

// check runs the struct tags of form and returns the collector for further
// conditional checks.
func check(form any) *validation.Fields {
	return validation.NewFields(validation.Struct(form))
}

func result(fv *validation.Fields) map[string]string {
	if fv.Valid() {
		return nil
	}
	return fv.Errors()
}

// invalid turns field errors into one validation error carrying the first
// field in name order.
func invalid(errs map[string]string) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return apperrors.ValidationField(fields[0], errs[fields[0]])
}

func toInt(field, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, apperrors.ValidationField(field, field+" must be a number.")
	}
	return n, nil
}

func toID(field, v string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationField(field, field+" must be a number.")
	}
	return n, nil
}

func optionalInt(field, v string) (*int, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	n, err := toInt(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optional(v string) *string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func itoaPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func idText(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// EmployeeForm is the create/edit form of an employee. Enum fields hold the
// option value as text, masked fields hold their masked form.
type EmployeeForm struct {
	Name          string `json:"name" validate:"required"`
	RG            string `json:"rg" validate:"required,rg"`
	CPF           string `json:"cpf" validate:"required,cpf"`
	BloodType     string `json:"bloodType" validate:"required,number"`
	Code          string `json:"code" validate:"required"`
	Role          string `json:"role" validate:"required,number"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	HiringDate    string `json:"hiringDate" validate:"omitempty,datetime=2006-01-02"`
	CNHNumber     string `json:"cnhNumber" validate:"omitempty,cnh"`
	CNHExpiration string `json:"cnhExpiration" validate:"omitempty,datetime=2006-01-02"`
	Status        string `json:"status" validate:"required,number"`
	Image         string `json:"image"`
}

// EmployeeFormFrom prefills the edit form from a record.
func EmployeeFormFrom(e model.Employee) EmployeeForm {
	return EmployeeForm{
		Name:          e.Name,
		RG:            validation.NormalizeRG(e.RG),
		CPF:           validation.MaskCPF(e.CPF),
		BloodType:     strconv.Itoa(e.BloodType),
		Code:          e.Code,
		Role:          strconv.Itoa(e.Role),
		Email:         e.Email,
		Phone:         validation.MaskPhone(e.Phone),
		HiringDate:    deref(e.HiringDate),
		CNHNumber:     validation.NormalizeCNH(e.CNHNumber),
		CNHExpiration: deref(e.CNHExpiration),
		Status:        strconv.Itoa(e.Status),
		Image:         e.Image,
	}
}

func (f *EmployeeForm) fields() map[string]*string {
	return map[string]*string{
		"name": &f.Name, "rg": &f.RG, "cpf": &f.CPF, "bloodType": &f.BloodType,
		"code": &f.Code, "role": &f.Role, "email": &f.Email, "phone": &f.Phone,
		"hiringDate": &f.HiringDate, "cnhNumber": &f.CNHNumber,
		"cnhExpiration": &f.CNHExpiration, "status": &f.Status, "image": &f.Image,
	}
}

// Input stores a typed value, applying the field's input normaliser.
func (f *EmployeeForm) Input(field, value string) error {
	p, ok := f.fields()[field]
	if !ok {
		return apperrors.Validationf("unknown employee field %q", field)
	}
	switch field {
	case "cpf":
		value = validation.MaskCPF(value)
	case "phone":
		value = validation.MaskPhone(value)
	case "rg":
		value = validation.NormalizeRG(value)
	case "cnhNumber":
		value = validation.NormalizeCNH(value)
	}
	*p = value
	return nil
}

// Blur runs the check made when the user leaves field and returns its
// message, or "" when the value is acceptable.
func (f EmployeeForm) Blur(field string) string {
	switch field {
	case "cpf":
		return validation.CPF("cpf")(f.CPF)
	case "rg":
		return validation.RG("rg")(f.RG)
	case "cnhNumber":
		return validation.CNH("cnhNumber")(f.CNHNumber)
	}
	return ""
}

// RequiresCNH reports whether the selected role drives vehicles. A form
// without a role requires the licence.
func (f EmployeeForm) RequiresCNH() bool {
	role, err := strconv.Atoi(strings.TrimSpace(f.Role))
	if err != nil {
		return true
	}
	return model.RoleRequiresCNH(role)
}

// Validate returns the field errors of the whole form, or nil.
func (f EmployeeForm) Validate() map[string]string {
	fv := check(f)
	cnh := f.RequiresCNH()
	today := validation.TodayDate()
	fv.Check("cnhNumber", f.CNHNumber, validation.RequiredIf(cnh, "cnhNumber")).
		Check("cnhExpiration", f.CNHExpiration,
			validation.RequiredIf(cnh, "cnhExpiration"), validation.NotPast("cnhExpiration", today)).
		Check("hiringDate", f.HiringDate, validation.NotFuture("hiringDate", today))
	return result(fv)
}

// Payload validates the form and builds the request body: masks are
// stripped, enums become numbers and an empty hiring date is sent as null.
func (f EmployeeForm) Payload() (model.Employee, error) {
	if errs := f.Validate(); errs != nil {
		return model.Employee{}, invalid(errs)
	}
	bloodType, err := toInt("bloodType", f.BloodType)
	if err != nil {
		return model.Employee{}, err
	}
	role, err := toInt("role", f.Role)
	if err != nil {
		return model.Employee{}, err
	}
	status, err := toInt("status", f.Status)
	if err != nil {
		return model.Employee{}, err
	}
	return model.Employee{
		Name:          strings.TrimSpace(f.Name),
		RG:            f.RG,
		CPF:           validation.Digits(f.CPF),
		BloodType:     bloodType,
		Code:          strings.TrimSpace(f.Code),
		Role:          role,
		Email:         strings.TrimSpace(f.Email),
		Phone:         validation.Digits(f.Phone),
		HiringDate:    optional(f.HiringDate),
		CNHNumber:     f.CNHNumber,
		CNHExpiration: optional(f.CNHExpiration),
		Status:        status,
		Image:         f.Image,
	}, nil
}
