package form

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// ValidationErrors maps field names to user-facing messages. Validation
// failures block submission before any network call.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate runs the participant schema over the current values and stores
// the result on the form. The form moves to validating for the duration and
// returns to editing when any field fails.
func (f *ParticipantForm) Validate() ValidationErrors {
	f.status = StatusValidating
	errs := ValidationErrors{}

	required := []struct {
		field   string
		value   string
		message string
	}{
		{"name", f.values.Name, "Name is required"},
		{"medicaidId", f.values.MedicaidID, "Medicaid ID is required"},
		{"dob", f.values.DOB, "Date of Birth is required"},
		{"location", f.values.Location, "Location is required"},
		{"community", f.values.Community, "Community is required"},
		{"address", f.values.Address, "Address is required"},
		{"primaryPhone", f.values.PrimaryPhone, "Primary Phone is required"},
		{"locStartDate", f.values.LocStartDate, "Location Start Date is required"},
		{"locEndDate", f.values.LocEndDate, "Location End Date is required"},
		{"pocStartDate", f.values.PocStartDate, "POC Start Date is required"},
		{"pocEndDate", f.values.PocEndDate, "POC End Date is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.message
		}
	}

	if !models.ValidGender(f.values.Gender) {
		errs["gender"] = "Gender must be M, F, or O"
	}

	if msg := validateNumber(f.values.Units); msg != "" {
		errs["units"] = "Units " + msg
	}
	if msg := validateNumber(f.values.Hours); msg != "" {
		errs["hours"] = "Hours " + msg
	}

	f.validateCaseManager(errs)

	f.errors = errs
	if len(errs) > 0 {
		f.status = StatusEditing
	}
	return errs
}

// validateCaseManager enforces the connect-or-create invariant: exactly one
// branch populated, a positive id for connect, name and agency for create.
func (f *ParticipantForm) validateCaseManager(errs ValidationErrors) {
	hasConnect := f.values.CaseManagerConnectID != 0
	hasCreate := f.values.CaseManagerCreate != nil

	switch {
	case hasConnect && hasCreate:
		errs["caseManager"] = "Select an existing case manager or create a new one, not both"
	case !hasConnect && !hasCreate:
		errs["caseManager"] = "Case Manager is required"
	case hasConnect:
		if f.values.CaseManagerConnectID < 1 {
			errs["caseManager.connect.id"] = "Case Manager id must be a positive integer"
		}
	case hasCreate:
		create := f.values.CaseManagerCreate
		if strings.TrimSpace(create.Name) == "" {
			errs["caseManager.create.name"] = "Case Manager Name is required"
		}
		if create.AgencyID < 1 {
			errs["caseManager.create.agencyId"] = "Agency is required"
		}
		if create.Email != "" && !emailRe.MatchString(create.Email) {
			errs["caseManager.create.email"] = "Invalid email format"
		}
	}
}

// validateNumber accepts blank input (coerced to 0 later) and any parseable
// non-negative number.
func validateNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "must be a number"
	}
	if n < 0 {
		return "must not be negative"
	}
	return ""
}

// coerceNumber turns blank or unparsable input into 0 so the payload never
// carries an empty string or NaN for a numeric field.
func coerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
