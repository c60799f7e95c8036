package job

import "strings"

// WorkingPattern is the contractual working arrangement of a posting.
type WorkingPattern string

// Working patterns.
const (
	FullTime        WorkingPattern = "Full-time"
	PartTime        WorkingPattern = "Part-time"
	FlexibleWorking WorkingPattern = "Flexible working"
	JobShare        WorkingPattern = "Job share"
	CompressedHours WorkingPattern = "Compressed hours"
	AnnualisedHours WorkingPattern = "Annualised hours"
	TermTime        WorkingPattern = "Term time"
)

// WorkLocation is where the work is carried out.
type WorkLocation string

// Work locations.
const (
	OfficeBased WorkLocation = "Office based"
	Hybrid      WorkLocation = "Hybrid"
	HomeBased   WorkLocation = "Home based"
	FieldBased  WorkLocation = "Field based"
)

// Grade is the civil service grade of a posting.
type Grade string

// Grades, most junior first.
const (
	AdministrativeAssistant Grade = "Administrative Assistant"
	AdministrativeOfficer   Grade = "Administrative Officer"
	ExecutiveOfficer        Grade = "Executive Officer"
	HigherExecutiveOfficer  Grade = "Higher Executive Officer"
	SeniorExecutiveOfficer  Grade = "Senior Executive Officer"
	Grade7                  Grade = "Grade 7"
	Grade6                  Grade = "Grade 6"
	DeputyDirector          Grade = "Deputy Director"
	Director                Grade = "Director"
	DirectorGeneral         Grade = "Director General"
	PermanentSecretary      Grade = "Permanent Secretary"
	GradeOther              Grade = "Other"
)

// Profession is the government profession a posting belongs to.
type Profession string

// Professions.
const (
	ProfessionAnalysis               Profession = "Analysis"
	ProfessionCommercial             Profession = "Commercial"
	ProfessionCommunications         Profession = "Communications"
	ProfessionCorporateFinance       Profession = "Corporate Finance"
	ProfessionCounterFraud           Profession = "Counter Fraud"
	ProfessionDigitalAndData         Profession = "Digital and Data"
	ProfessionEconomics              Profession = "Economics"
	ProfessionFinance                Profession = "Finance"
	ProfessionHumanResources         Profession = "Human Resources"
	ProfessionIntelligenceAnalysis   Profession = "Intelligence Analysis"
	ProfessionInternalAudit          Profession = "Internal Audit"
	ProfessionInternationalTrade     Profession = "International Trade"
	ProfessionKnowledgeManagement    Profession = "Knowledge and Information Management"
	ProfessionLegal                  Profession = "Legal"
	ProfessionMedical                Profession = "Medical"
	ProfessionOccupationalPsychology Profession = "Occupational Psychology"
	ProfessionOperationalDelivery    Profession = "Operational Delivery"
	ProfessionOperationalResearch    Profession = "Operational Research"
	ProfessionPlanning               Profession = "Planning"
	ProfessionPlanningInspection     Profession = "Planning Inspection"
	ProfessionPolicy                 Profession = "Policy"
	ProfessionProjectDelivery        Profession = "Project Delivery"
	ProfessionProperty               Profession = "Property"
	ProfessionScienceEngineering     Profession = "Science and Engineering"
	ProfessionSecurity               Profession = "Security"
	ProfessionSocialResearch         Profession = "Social Research"
	ProfessionStatistics             Profession = "Statistics"
	ProfessionTax                    Profession = "Tax"
	ProfessionVeterinary             Profession = "Veterinary"
	ProfessionOther                  Profession = "Other"
)

// Approach is the audience a posting is advertised to.
type Approach string

// Approaches.
const (
	ApproachInternal         Approach = "Internal"
	ApproachAcrossGovernment Approach = "Across government"
	ApproachExternal         Approach = "External"
)

// Fallback members substituted when a stored value is not recognised.
const (
	FallbackWorkingPattern = FullTime
	FallbackWorkLocation   = OfficeBased
	FallbackGrade          = GradeOther
	FallbackProfession     = ProfessionOther
	FallbackApproach       = ApproachExternal
)

var (
	workingPatterns = newEnumSet(FallbackWorkingPattern,
		[]WorkingPattern{FullTime, PartTime, FlexibleWorking, JobShare, CompressedHours, AnnualisedHours, TermTime},
		map[string]WorkingPattern{
			"fulltime":         FullTime,
			"parttime":         PartTime,
			"flexible":         FlexibleWorking,
			"job sharing":      JobShare,
			"term time only":   TermTime,
			"annualized hours": AnnualisedHours,
		},
	)
	workLocations = newEnumSet(FallbackWorkLocation,
		[]WorkLocation{OfficeBased, Hybrid, HomeBased, FieldBased},
		map[string]WorkLocation{
			"office":         OfficeBased,
			"on site":        OfficeBased,
			"onsite":         OfficeBased,
			"hybrid working": Hybrid,
			"home":           HomeBased,
			"remote":         HomeBased,
			"field":          FieldBased,
		},
	)
	grades = newEnumSet(FallbackGrade,
		[]Grade{
			AdministrativeAssistant, AdministrativeOfficer, ExecutiveOfficer,
			HigherExecutiveOfficer, SeniorExecutiveOfficer, Grade7, Grade6,
			DeputyDirector, Director, DirectorGeneral, PermanentSecretary, GradeOther,
		},
		map[string]Grade{
			"aa":   AdministrativeAssistant,
			"ao":   AdministrativeOfficer,
			"eo":   ExecutiveOfficer,
			"heo":  HigherExecutiveOfficer,
			"seo":  SeniorExecutiveOfficer,
			"g7":   Grade7,
			"g6":   Grade6,
			"scs1": DeputyDirector,
			"scs2": Director,
			"scs3": DirectorGeneral,
			"scs4": PermanentSecretary,
		},
	)
	professions = newEnumSet(FallbackProfession,
		[]Profession{
			ProfessionAnalysis, ProfessionCommercial, ProfessionCommunications, ProfessionCorporateFinance,
			ProfessionCounterFraud, ProfessionDigitalAndData, ProfessionEconomics, ProfessionFinance,
			ProfessionHumanResources, ProfessionIntelligenceAnalysis, ProfessionInternalAudit,
			ProfessionInternationalTrade, ProfessionKnowledgeManagement, ProfessionLegal, ProfessionMedical,
			ProfessionOccupationalPsychology, ProfessionOperationalDelivery, ProfessionOperationalResearch,
			ProfessionPlanning, ProfessionPlanningInspection, ProfessionPolicy, ProfessionProjectDelivery,
			ProfessionProperty, ProfessionScienceEngineering, ProfessionSecurity, ProfessionSocialResearch,
			ProfessionStatistics, ProfessionTax, ProfessionVeterinary, ProfessionOther,
		},
		map[string]Profession{
			"digital":                          ProfessionDigitalAndData,
			"ddat":                             ProfessionDigitalAndData,
			"digital data and technology":      ProfessionDigitalAndData,
			"hr":                               ProfessionHumanResources,
			"comms":                            ProfessionCommunications,
			"government communication service": ProfessionCommunications,
			"kim":                              ProfessionKnowledgeManagement,
			"project delivery profession":      ProfessionProjectDelivery,
		},
	)
	approaches = newEnumSet(FallbackApproach,
		[]Approach{ApproachInternal, ApproachAcrossGovernment, ApproachExternal},
		map[string]Approach{
			"across gov":       ApproachAcrossGovernment,
			"cross government": ApproachAcrossGovernment,
			"open":             ApproachExternal,
		},
	)
)

// ParseWorkingPattern resolves s to a known working pattern.
func ParseWorkingPattern(s string) (WorkingPattern, bool) { return workingPatterns.parse(s) }

// ParseWorkLocation resolves s to a known work location.
func ParseWorkLocation(s string) (WorkLocation, bool) { return workLocations.parse(s) }

// ParseGrade resolves s to a known grade. Abbreviations such as "G7" or "SEO" are accepted.
func ParseGrade(s string) (Grade, bool) { return grades.parse(s) }

// ParseProfession resolves s to a known profession.
func ParseProfession(s string) (Profession, bool) { return professions.parse(s) }

// ParseApproach resolves s to a known approach.
func ParseApproach(s string) (Approach, bool) { return approaches.parse(s) }

// WorkingPatterns lists every working pattern.
func WorkingPatterns() []WorkingPattern { return workingPatterns.list() }

// WorkLocations lists every work location.
func WorkLocations() []WorkLocation { return workLocations.list() }

// Grades lists every grade.
func Grades() []Grade { return grades.list() }

// Professions lists every profession.
func Professions() []Profession { return professions.list() }

// Approaches lists every approach.
func Approaches() []Approach { return approaches.list() }

// enumSet is a closed enumeration with tolerant lookup and a fallback member.
type enumSet[T ~string] struct {
	members  []T
	lookup   map[string]T
	fallback T
}

func newEnumSet[T ~string](fallback T, members []T, aliases map[string]T) enumSet[T] {
	lookup := make(map[string]T, len(members)+len(aliases))
	for _, m := range members {
		lookup[normalizeEnum(string(m))] = m
	}
	for alias, m := range aliases {
		lookup[normalizeEnum(alias)] = m
	}
	return enumSet[T]{members: members, lookup: lookup, fallback: fallback}
}

// parse returns the matching member, or the fallback and false.
func (e enumSet[T]) parse(s string) (T, bool) {
	if m, ok := e.lookup[normalizeEnum(s)]; ok {
		return m, true
	}
	return e.fallback, false
}

func (e enumSet[T]) list() []T {
	out := make([]T, len(e.members))
	copy(out, e.members)
	return out
}

var enumReplacer = strings.NewReplacer("-", " ", "_", " ", "&", " and ", ",", " ", "/", " ")

// normalizeEnum lowercases s, folds separators to spaces and collapses whitespace.
func normalizeEnum(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(enumReplacer.Replace(s))), " ")
}
