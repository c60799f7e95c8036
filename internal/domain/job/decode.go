package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotObject is returned when a stored document is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

// Warning records a fallback or coercion applied to a single field.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string { return w.Field + ": " + w.Reason }

// Decoded is a successfully mapped document.
type Decoded struct {
	Job      Job
	Warnings []Warning
}

// Clean reports whether the document mapped without any fallback.
func (d Decoded) Clean() bool { return len(d.Warnings) == 0 }

// Decode maps a raw stored document into a Job. Missing or mistyped fields fall back
// to defaults and are reported in Warnings. A payload wrapped in a single-element
// array (JSONPath "$" replies) is unwrapped. fallbackID is used when the document
// carries no id of its own.
func Decode(fallbackID string, raw []byte) (Decoded, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Decoded{}, fmt.Errorf("decode document %q: %w", fallbackID, err)
	}
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		v = arr[0]
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return Decoded{}, fmt.Errorf("decode document %q: %w", fallbackID, ErrNotObject)
	}
	return DecodeMap(fallbackID, doc), nil
}

// DecodeMap maps an already parsed document. It never fails.
func DecodeMap(fallbackID string, doc map[string]any) Decoded {
	r := &fieldReader{doc: doc}

	j := Empty(fallbackID)
	if id := r.str("id"); id != "" {
		j.ID = id
	}
	j.ExternalID = r.str("externalId")
	j.Title = r.str("title")
	j.Description = r.str("description")
	j.Organisation = r.str("organisation")
	j.Location = r.locations("location")
	j.WorkingPattern = enumList(r, "workingPattern", ParseWorkingPattern)
	j.AssignmentType = r.str("assignmentType")
	j.Salary = r.salary("salary")
	j.WorkLocation = enumList(r, "workLocation", ParseWorkLocation)
	j.Grade = enumValue(r, "grade", ParseGrade)
	j.Profession = enumValue(r, "profession", ParseProfession)
	j.Approach = enumValue(r, "approach", ParseApproach)
	j.ClosingDate = r.str("closingDate")

	j.PersonalSpec = r.str("personalSpec")
	j.NationalityRequirement = r.str("nationalityRequirement")
	j.Summary = r.str("summary")
	j.ApplyURL = r.str("applyUrl")
	j.Benefits = r.str("benefits")
	j.ApplyDetail = r.str("applyDetail")
	j.ContactName = r.str("contactName")
	j.ContactEmail = r.str("contactEmail")
	j.ContactPhone = r.str("contactPhone")
	j.RecruitmentEmail = r.str("recruitmentEmail")
	j.JobNumbers = r.integer("jobNumbers")
	j.Contacts = r.boolean("contacts")

	return Decoded{Job: j, Warnings: r.warnings}
}

// fieldReader extracts typed fields from a loosely typed document, collecting warnings.
type fieldReader struct {
	doc      map[string]any
	warnings []Warning
}

func (r *fieldReader) warn(field, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (r *fieldReader) lookup(field string) (any, bool) {
	v, ok := r.doc[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) str(field string) string {
	v, ok := r.lookup(field)
	if !ok {
		return ""
	}
	s, ok := scalarString(v)
	if !ok {
		r.warn(field, "expected string, got %T", v)
		return ""
	}
	if _, isString := v.(string); !isString {
		r.warn(field, "coerced %T to string", v)
	}
	return s
}

func (r *fieldReader) integer(field string) int {
	v, ok := r.lookup(field)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		r.warn(field, "expected integer, got %v", v)
		return 0
	}
	if _, isNumber := v.(json.Number); !isNumber {
		r.warn(field, "coerced %T to integer", v)
	}
	return int(math.Trunc(f))
}

func (r *fieldReader) boolean(field string) bool {
	v, ok := r.lookup(field)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(t)))
		if err != nil {
			switch strings.TrimSpace(strings.ToLower(t)) {
			case "yes", "y":
				b = true
			case "no", "n", "":
				b = false
			default:
				r.warn(field, "expected boolean, got %q", t)
				return false
			}
		}
		r.warn(field, "coerced string to boolean")
		return b
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			r.warn(field, "expected boolean, got %v", t)
			return false
		}
		r.warn(field, "coerced number to boolean")
		return f != 0
	default:
		r.warn(field, "expected boolean, got %T", v)
		return false
	}
}

func (r *fieldReader) locations(field string) []LocationPoint {
	v, ok := r.lookup(field)
	if !ok {
		return []LocationPoint{}
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return []LocationPoint{}
		}
		r.warn(field, "legacy string location")
		return []LocationPoint{{TownName: t, Region: UnknownRegion}}
	case map[string]any:
		return []LocationPoint{r.locationPoint(field, t)}
	case []any:
		out := make([]LocationPoint, 0, len(t))
		for i, item := range t {
			name := fmt.Sprintf("%s[%d]", field, i)
			switch it := item.(type) {
			case string:
				r.warn(name, "legacy string location")
				out = append(out, LocationPoint{TownName: it, Region: UnknownRegion})
			case map[string]any:
				out = append(out, r.locationPoint(name, it))
			default:
				r.warn(name, "dropped %T location", item)
			}
		}
		return out
	default:
		r.warn(field, "expected location list, got %T", v)
		return []LocationPoint{}
	}
}

func (r *fieldReader) locationPoint(field string, m map[string]any) LocationPoint {
	sub := &fieldReader{doc: m}
	p := LocationPoint{
		TownName: sub.str("townName"),
		Region:   sub.str("region"),
	}
	if p.Region == "" {
		p.Region = UnknownRegion
	}
	if lat, ok := sub.lookup("latitude"); ok {
		if f, ok := toFloat(lat); ok {
			p.Latitude = f
		} else {
			sub.warn("latitude", "expected finite number, got %v", lat)
		}
	}
	if lon, ok := sub.lookup("longitude"); ok {
		if f, ok := toFloat(lon); ok {
			p.Longitude = f
		} else {
			sub.warn("longitude", "expected finite number, got %v", lon)
		}
	}
	for _, w := range sub.warnings {
		r.warn(field+"."+w.Field, "%s", w.Reason)
	}
	return p
}

var salaryNumber = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// currencySymbols is checked in order; the first symbol found in a legacy salary wins.
var currencySymbols = []struct{ symbol, code string }{
	{"£", "GBP"},
	{"$", "USD"},
	{"€", "EUR"},
}

var symbolByCurrency = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

func (r *fieldReader) salary(field string) Salary {
	v, ok := r.lookup(field)
	if !ok {
		return DefaultSalary()
	}
	switch t := v.(type) {
	case json.Number:
		s := DefaultSalary()
		f, ok := toFloat(t)
		if !ok {
			r.warn(field, "expected finite number, got %v", t)
			return s
		}
		r.warn(field, "bare number salary")
		s.Minimum = f
		return s
	case string:
		return r.legacySalary(field, t)
	case map[string]any:
		return r.structuredSalary(field, t)
	default:
		r.warn(field, "expected salary object, got %T", v)
		return DefaultSalary()
	}
}

// legacySalary parses free-text salaries such as "£45,000" or "£45,000 - £55,000".
func (r *fieldReader) legacySalary(field, text string) Salary {
	s := DefaultSalary()
	for _, c := range currencySymbols {
		if strings.Contains(text, c.symbol) {
			s.Currency, s.CurrencySymbol = c.code, c.symbol
			break
		}
	}
	nums := salaryNumber.FindAllString(text, 2)
	if len(nums) == 0 {
		r.warn(field, "no amount in salary %q", text)
		return s
	}
	r.warn(field, "legacy string salary")
	s.Minimum = parseAmount(nums[0])
	if len(nums) == 2 {
		maxAmount := parseAmount(nums[1])
		s.Maximum = &maxAmount
	}
	return s
}

func (r *fieldReader) structuredSalary(field string, m map[string]any) Salary {
	sub := &fieldReader{doc: m}
	s := DefaultSalary()
	if v, ok := sub.lookup("minimum"); ok {
		if f, ok := toFloat(v); ok {
			s.Minimum = f
		} else {
			sub.warn("minimum", "expected finite number, got %v", v)
		}
	}
	if v, ok := sub.lookup("maximum"); ok {
		if f, ok := toFloat(v); ok {
			s.Maximum = &f
		} else {
			sub.warn("maximum", "expected finite number, got %v", v)
		}
	}
	if cur := strings.ToUpper(sub.str("currency")); cur != "" {
		s.Currency = cur
		s.CurrencySymbol = symbolByCurrency[cur]
	}
	if sym := sub.str("currencySymbol"); sym != "" {
		s.CurrencySymbol = sym
	}
	for _, w := range sub.warnings {
		r.warn(field+"."+w.Field, "%s", w.Reason)
	}
	return s
}

func parseAmount(s string) float64 {
	f, ok := toFloat(s)
	if !ok {
		return 0
	}
	return f
}

func enumValue[T ~string](r *fieldReader, field string, parse func(string) (T, bool)) T {
	v, ok := r.lookup(field)
	if !ok {
		fallback, _ := parse("")
		return fallback
	}
	s, _ := scalarString(v)
	out, known := parse(s)
	if !known {
		r.warn(field, "unknown value %q, using %q", s, string(out))
	}
	return out
}

func enumList[T ~string](r *fieldReader, field string, parse func(string) (T, bool)) []T {
	v, ok := r.lookup(field)
	if !ok {
		return []T{}
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case string:
		if strings.TrimSpace(t) == "" {
			return []T{}
		}
		items = []any{t}
	default:
		items = []any{v}
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		s, _ := scalarString(item)
		m, known := parse(s)
		if !known {
			r.warn(fmt.Sprintf("%s[%d]", field, i), "unknown value %q, using %q", s, string(m))
		}
		out = append(out, m)
	}
	return out
}

// scalarString renders strings, numbers and booleans as text.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// toFloat accepts finite numbers only: NaN, ±Inf and out-of-range values
// cannot be encoded back to JSON.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
	case float64:
		f = t
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
