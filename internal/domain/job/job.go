package job

// Defaults applied when a stored document omits or garbles a field.
const (
	UnknownRegion         = "Unknown"
	DefaultCurrency       = "GBP"
	DefaultCurrencySymbol = "£"
)

// LocationPoint is a geocoded place a job can be performed from.
type LocationPoint struct {
	TownName  string  `json:"townName" validate:"required,max=256"`
	Region    string  `json:"region" validate:"max=256"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Salary is the advertised pay band. Maximum is nil for a single-figure salary.
type Salary struct {
	Minimum        float64  `json:"minimum" validate:"gte=0"`
	Maximum        *float64 `json:"maximum,omitempty" validate:"omitempty,gte=0"`
	Currency       string   `json:"currency" validate:"omitempty,len=3"`
	CurrencySymbol string   `json:"currencySymbol" validate:"max=4"`
}

// DefaultSalary returns the salary used when a document carries none.
func DefaultSalary() Salary {
	return Salary{Currency: DefaultCurrency, CurrencySymbol: DefaultCurrencySymbol}
}

// Job is a single posting in the shape shared with the frontend.
type Job struct {
	ID             string           `json:"id"`
	ExternalID     string           `json:"externalId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Organisation   string           `json:"organisation"`
	Location       []LocationPoint  `json:"location"`
	WorkingPattern []WorkingPattern `json:"workingPattern"`
	AssignmentType string           `json:"assignmentType"`
	Salary         Salary           `json:"salary"`
	WorkLocation   []WorkLocation   `json:"workLocation"`
	Grade          Grade            `json:"grade"`
	Profession     Profession       `json:"profession"`
	Approach       Approach         `json:"approach"`
	ClosingDate    string           `json:"closingDate"`

	PersonalSpec           string `json:"personalSpec"`
	NationalityRequirement string `json:"nationalityRequirement"`
	Summary                string `json:"summary"`
	ApplyURL               string `json:"applyUrl"`
	Benefits               string `json:"benefits"`
	ApplyDetail            string `json:"applyDetail"`
	ContactName            string `json:"contactName"`
	ContactEmail           string `json:"contactEmail"`
	ContactPhone           string `json:"contactPhone"`
	RecruitmentEmail       string `json:"recruitmentEmail"`
	JobNumbers             int    `json:"jobNumbers"`
	Contacts               bool   `json:"contacts"`
}

// Empty returns a Job with every field at its fallback default.
func Empty(id string) Job {
	return Job{
		ID:             id,
		Location:       []LocationPoint{},
		WorkingPattern: []WorkingPattern{},
		Salary:         DefaultSalary(),
		WorkLocation:   []WorkLocation{},
		Grade:          FallbackGrade,
		Profession:     FallbackProfession,
		Approach:       FallbackApproach,
	}
}
