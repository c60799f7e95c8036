package job

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/jobdex/internal/domain"
)

// Draft is a job creation payload: every Job field except the server-assigned id.
type Draft struct {
	ExternalID     string           `json:"externalId" validate:"max=256"`
	Title          string           `json:"title" validate:"required,max=512"`
	Description    string           `json:"description" validate:"max=65536"`
	Organisation   string           `json:"organisation" validate:"required,max=512"`
	Location       []LocationPoint  `json:"location" validate:"required,min=1,max=64,dive"`
	WorkingPattern []WorkingPattern `json:"workingPattern" validate:"max=16,dive,working_pattern"`
	AssignmentType string           `json:"assignmentType" validate:"required,max=128"`
	Salary         *Salary          `json:"salary"`
	WorkLocation   []WorkLocation   `json:"workLocation" validate:"max=16,dive,work_location"`
	Grade          Grade            `json:"grade" validate:"required,grade"`
	Profession     Profession       `json:"profession" validate:"required,profession"`
	Approach       Approach         `json:"approach" validate:"omitempty,approach"`
	ClosingDate    string           `json:"closingDate" validate:"required,max=64"`

	PersonalSpec           string `json:"personalSpec" validate:"max=65536"`
	NationalityRequirement string `json:"nationalityRequirement" validate:"max=4096"`
	Summary                string `json:"summary" validate:"max=65536"`
	ApplyURL               string `json:"applyUrl" validate:"omitempty,url,max=2048"`
	Benefits               string `json:"benefits" validate:"max=65536"`
	ApplyDetail            string `json:"applyDetail" validate:"max=65536"`
	ContactName            string `json:"contactName" validate:"max=256"`
	ContactEmail           string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone           string `json:"contactPhone" validate:"max=64"`
	RecruitmentEmail       string `json:"recruitmentEmail" validate:"omitempty,email"`
	JobNumbers             int    `json:"jobNumbers" validate:"gte=0"`
	Contacts               bool   `json:"contacts"`
}

var draftValidator = sync.OnceValue(newDraftValidator)

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "working_pattern", enumRule(ParseWorkingPattern))
	mustRegister(v, "work_location", enumRule(ParseWorkLocation))
	mustRegister(v, "grade", enumRule(ParseGrade))
	mustRegister(v, "profession", enumRule(ParseProfession))
	mustRegister(v, "approach", enumRule(ParseApproach))
	v.RegisterStructValidation(salaryStructValidation, Salary{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func enumRule[T ~string](parse func(string) (T, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := parse(fl.Field().String())
		return ok
	}
}

func salaryStructValidation(sl validator.StructLevel) {
	s := sl.Current().Interface().(Salary)
	if s.Maximum != nil && *s.Maximum < s.Minimum {
		sl.ReportError(s.Maximum, "maximum", "Maximum", "gtefield", "minimum")
	}
}

// Validate checks the payload. Failures wrap domain.ErrInvalidRequest.
func (d *Draft) Validate() error {
	err := draftValidator().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, strings.Join(msgs, "; "))
}

var enumMembers = map[string]func() []string{
	"working_pattern": func() []string { return names(WorkingPatterns()) },
	"work_location":   func() []string { return names(WorkLocations()) },
	"grade":           func() []string { return names(Grades()) },
	"profession":      func() []string { return names(Professions()) },
	"approach":        func() []string { return names(Approaches()) },
}

func names[T ~string](members []T) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = string(m)
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s item(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds maximum of %s", field, fe.Param())
	case "working_pattern", "work_location", "grade", "profession", "approach":
		return fmt.Sprintf("%s has unknown value %q (one of: %s)",
			field, fmt.Sprint(fe.Value()), strings.Join(enumMembers[fe.Tag()](), ", "))
	case "gtefield":
		return field + " must not be below minimum"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ToJob builds the stored record for id. Enum aliases are resolved to canonical
// members and absent optional values take their defaults.
func (d *Draft) ToJob(id string) Job {
	j := Empty(id)
	j.ExternalID = d.ExternalID
	j.Title = d.Title
	j.Description = d.Description
	j.Organisation = d.Organisation
	j.AssignmentType = d.AssignmentType
	j.ClosingDate = d.ClosingDate

	j.Location = make([]LocationPoint, 0, len(d.Location))
	for _, l := range d.Location {
		if l.Region == "" {
			l.Region = UnknownRegion
		}
		j.Location = append(j.Location, l)
	}
	for _, wp := range d.WorkingPattern {
		m, _ := ParseWorkingPattern(string(wp))
		j.WorkingPattern = append(j.WorkingPattern, m)
	}
	for _, wl := range d.WorkLocation {
		m, _ := ParseWorkLocation(string(wl))
		j.WorkLocation = append(j.WorkLocation, m)
	}
	if d.Salary != nil {
		j.Salary = *d.Salary
		if j.Salary.Currency == "" {
			j.Salary.Currency = DefaultCurrency
		}
		j.Salary.Currency = strings.ToUpper(j.Salary.Currency)
		if j.Salary.CurrencySymbol == "" {
			j.Salary.CurrencySymbol = symbolByCurrency[j.Salary.Currency]
		}
	}
	j.Grade, _ = ParseGrade(string(d.Grade))
	j.Profession, _ = ParseProfession(string(d.Profession))
	j.Approach, _ = ParseApproach(string(d.Approach))

	j.PersonalSpec = d.PersonalSpec
	j.NationalityRequirement = d.NationalityRequirement
	j.Summary = d.Summary
	j.ApplyURL = d.ApplyURL
	j.Benefits = d.Benefits
	j.ApplyDetail = d.ApplyDetail
	j.ContactName = d.ContactName
	j.ContactEmail = d.ContactEmail
	j.ContactPhone = d.ContactPhone
	j.RecruitmentEmail = d.RecruitmentEmail
	j.JobNumbers = d.JobNumbers
	j.Contacts = d.Contacts
	return j
}
