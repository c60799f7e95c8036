package job

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from creation payloads. Rich-text fields keep
// user-generated-content formatting; everything else is reduced to plain text.
type Sanitizer struct {
	strict *bluemonday.Policy
	rich   *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the strict and UGC policies.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{strict: bluemonday.StrictPolicy(), rich: bluemonday.UGCPolicy()}
}

var defaultSanitizer = sync.OnceValue(NewSanitizer)

// Sanitized returns a copy of d with every free-text field cleaned by the default sanitizer.
func (d Draft) Sanitized() Draft {
	return defaultSanitizer().Draft(d)
}

// Draft cleans every free-text field of d.
func (s *Sanitizer) Draft(d Draft) Draft {
	d.ExternalID = s.plain(d.ExternalID)
	d.Title = s.plain(d.Title)
	d.Organisation = s.plain(d.Organisation)
	d.AssignmentType = s.plain(d.AssignmentType)
	d.ClosingDate = s.plain(d.ClosingDate)
	d.NationalityRequirement = s.plain(d.NationalityRequirement)
	d.ApplyURL = s.plain(d.ApplyURL)
	d.ContactName = s.plain(d.ContactName)
	d.ContactEmail = s.plain(d.ContactEmail)
	d.ContactPhone = s.plain(d.ContactPhone)
	d.RecruitmentEmail = s.plain(d.RecruitmentEmail)

	d.Description = s.rich.Sanitize(d.Description)
	d.Summary = s.rich.Sanitize(d.Summary)
	d.Benefits = s.rich.Sanitize(d.Benefits)
	d.PersonalSpec = s.rich.Sanitize(d.PersonalSpec)
	d.ApplyDetail = s.rich.Sanitize(d.ApplyDetail)

	if len(d.Location) > 0 {
		locs := make([]LocationPoint, len(d.Location))
		for i, l := range d.Location {
			l.TownName = s.plain(l.TownName)
			l.Region = s.plain(l.Region)
			locs[i] = l
		}
		d.Location = locs
	}
	if d.Salary != nil {
		sal := *d.Salary
		sal.Currency = s.plain(sal.Currency)
		sal.CurrencySymbol = s.plain(sal.CurrencySymbol)
		d.Salary = &sal
	}
	return d
}

// plain strips all markup. The strict policy escapes entities, which are decoded
// again so that "Smith & Jones" survives unchanged.
func (s *Sanitizer) plain(v string) string {
	if v == "" {
		return v
	}
	return html.UnescapeString(s.strict.Sanitize(v))
}
