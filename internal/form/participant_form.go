// Package form holds the client-side form state for participant create and
// edit: field values, validation, the connect-or-create case-manager
// sub-form, and the in-memory caregiver assignment list that is reconciled
// against the server only after the parent mutation succeeds.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// Form lifecycle states.
const (
	StatusPristine   = "pristine"
	StatusEditing    = "editing"
	StatusValidating = "validating"
	StatusSubmitting = "submitting"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

// Values are the raw form fields. Units and Hours stay textual until the
// payload transform, mirroring free-text numeric inputs.
type Values struct {
	Name           string
	MedicaidID     string
	DOB            string
	Gender         string
	IsActive       bool
	HDM            bool
	ADHC           bool
	Location       string
	Community      string
	Address        string
	PrimaryPhone   string
	SecondaryPhone string
	LocStartDate   string
	LocEndDate     string
	PocStartDate   string
	PocEndDate     string
	Units          string
	Hours          string

	// Case-manager sub-form: either an existing id or an inline create.
	CaseManagerConnectID int
	CaseManagerCreate    *models.CaseManagerCreate

	Assignments []models.CaregiverAssignment
}

// ParticipantForm is one form instance. Zero participant id means create.
type ParticipantForm struct {
	participantID int
	status        string
	values        Values

	// Assignment list as loaded from the server, the baseline for the
	// reconciliation diff at submit time.
	loadedAssignments []models.CaregiverAssignment

	errors       ValidationErrors
	loadWarnings []string
}

// NewParticipantForm creates an empty create form with the dashboard
// defaults (active participant, zeroed numerics).
func NewParticipantForm() *ParticipantForm {
	return &ParticipantForm{
		status: StatusPristine,
		values: Values{
			IsActive: true,
			Units:    "0",
			Hours:    "0",
		},
	}
}

// Load seeds an edit form from a fetched participant. A gender outside
// {M,F,O} does not block rendering: the form falls back to "O" and records
// a warning for the user to correct before saving.
func Load(p *models.Participant) *ParticipantForm {
	f := &ParticipantForm{
		participantID: p.ID,
		status:        StatusPristine,
		values: Values{
			Name:                 p.Name,
			MedicaidID:           p.MedicaidID,
			DOB:                  datePart(p.DOB),
			Gender:               p.Gender,
			IsActive:             p.IsActive,
			HDM:                  p.HDM,
			ADHC:                 p.ADHC,
			Location:             p.Location,
			Community:            p.Community,
			Address:              p.Address,
			PrimaryPhone:         p.PrimaryPhone,
			SecondaryPhone:       p.SecondaryPhone,
			LocStartDate:         datePart(p.LocStartDate),
			LocEndDate:           datePart(p.LocEndDate),
			PocStartDate:         datePart(p.PocStartDate),
			PocEndDate:           datePart(p.PocEndDate),
			Units:                formatNumber(p.Units),
			Hours:                formatNumber(p.Hours),
			CaseManagerConnectID: p.CaseManager.ID,
		},
	}

	if !models.ValidGender(p.Gender) {
		f.values.Gender = models.GenderOther
		f.loadWarnings = append(f.loadWarnings, fmt.Sprintf(
			"The gender value is invalid (received '%s'). Please select M, F, or O.", p.Gender))
	}

	for _, a := range p.Caregivers {
		assignment := models.CaregiverAssignment{
			CaregiverID:   a.CaregiverID,
			CaregiverName: a.Caregiver.Name,
		}
		f.values.Assignments = append(f.values.Assignments, assignment)
		f.loadedAssignments = append(f.loadedAssignments, assignment)
	}

	return f
}

// ParticipantID returns the id this form edits, zero for a create form.
func (f *ParticipantForm) ParticipantID() int { return f.participantID }

// Status returns the current lifecycle state.
func (f *ParticipantForm) Status() string { return f.status }

// Values returns a copy of the current field values.
func (f *ParticipantForm) Values() Values {
	v := f.values
	v.Assignments = append([]models.CaregiverAssignment(nil), f.values.Assignments...)
	if f.values.CaseManagerCreate != nil {
		create := *f.values.CaseManagerCreate
		v.CaseManagerCreate = &create
	}
	return v
}

// Errors returns the field errors from the last validation.
func (f *ParticipantForm) Errors() ValidationErrors { return f.errors }

// LoadWarnings returns the non-blocking warnings raised while seeding the
// form from server data.
func (f *ParticipantForm) LoadWarnings() []string { return f.loadWarnings }

// Edit applies a field change. Any edit moves a pristine or failed form
// back to editing.
func (f *ParticipantForm) Edit(apply func(v *Values)) {
	apply(&f.values)
	if f.status == StatusPristine || f.status == StatusFailed {
		f.status = StatusEditing
	}
}

// AddAssignment appends a caregiver to the in-memory assignment list. A
// duplicate caregiver id is rejected with a user-visible error; nothing is
// sent to the server until the parent mutation succeeds.
func (f *ParticipantForm) AddAssignment(caregiverID int, caregiverName string) error {
	for _, a := range f.values.Assignments {
		if a.CaregiverID == caregiverID {
			return fmt.Errorf("caregiver %q is already assigned", caregiverName)
		}
	}
	f.values.Assignments = append(f.values.Assignments, models.CaregiverAssignment{
		CaregiverID:   caregiverID,
		CaregiverName: caregiverName,
	})
	if f.status == StatusPristine || f.status == StatusFailed {
		f.status = StatusEditing
	}
	return nil
}

// RemoveAssignment drops a caregiver from the in-memory assignment list.
func (f *ParticipantForm) RemoveAssignment(caregiverID int) {
	kept := f.values.Assignments[:0]
	for _, a := range f.values.Assignments {
		if a.CaregiverID != caregiverID {
			kept = append(kept, a)
		}
	}
	f.values.Assignments = kept
	if f.status == StatusPristine || f.status == StatusFailed {
		f.status = StatusEditing
	}
}

// Payload builds the gateway DTO from the validated values. Blank numeric
// inputs coerce to 0, and exactly one of connect/create populates the
// case-manager relation. Caregiver assignments are deliberately absent.
func (f *ParticipantForm) Payload() models.ParticipantDTO {
	dto := models.ParticipantDTO{
		Name:           strings.TrimSpace(f.values.Name),
		IsActive:       f.values.IsActive,
		Gender:         f.values.Gender,
		MedicaidID:     strings.TrimSpace(f.values.MedicaidID),
		DOB:            f.values.DOB,
		Location:       strings.TrimSpace(f.values.Location),
		Community:      strings.TrimSpace(f.values.Community),
		Address:        strings.TrimSpace(f.values.Address),
		PrimaryPhone:   strings.TrimSpace(f.values.PrimaryPhone),
		SecondaryPhone: strings.TrimSpace(f.values.SecondaryPhone),
		LocStartDate:   f.values.LocStartDate,
		LocEndDate:     f.values.LocEndDate,
		PocStartDate:   f.values.PocStartDate,
		PocEndDate:     f.values.PocEndDate,
		Units:          coerceNumber(f.values.Units),
		Hours:          coerceNumber(f.values.Hours),
		HDM:            f.values.HDM,
		ADHC:           f.values.ADHC,
	}

	if f.values.CaseManagerCreate != nil {
		create := *f.values.CaseManagerCreate
		dto.CaseManager.Create = &create
	} else if f.values.CaseManagerConnectID > 0 {
		dto.CaseManager.Connect = &models.CaseManagerConnect{ID: f.values.CaseManagerConnectID}
	}

	return dto
}

// datePart strips the time portion of an ISO timestamp ("2024-01-02T..."
// becomes "2024-01-02").
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
