package models

// Gender codes accepted by the participant forms and the API.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// ValidGender reports whether g is one of the accepted gender codes.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// CaseManagerRef is the owning case manager as embedded in a participant read.
type CaseManagerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CaregiverRef is the caregiver record embedded in an assignment read.
type CaregiverRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AssignedCaregiver is one participant↔caregiver assignment as returned by
// the API. assignedAt/assignedBy are stamped by the server.
type AssignedCaregiver struct {
	CaregiverID int          `json:"caregiverId"`
	Caregiver   CaregiverRef `json:"caregiver"`
	AssignedAt  string       `json:"assignedAt,omitempty"`
	AssignedBy  string       `json:"assignedBy,omitempty"`
}

// Participant is a care-program beneficiary record. The server is the source
// of truth; ids and timestamps are server-assigned.
type Participant struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	IsActive       bool                `json:"isActive"`
	Gender         string              `json:"gender"`
	MedicaidID     string              `json:"medicaidId"`
	DOB            string              `json:"dob"`
	Location       string              `json:"location"`
	Community      string              `json:"community"`
	Address        string              `json:"address"`
	PrimaryPhone   string              `json:"primaryPhone"`
	SecondaryPhone string              `json:"secondaryPhone,omitempty"`
	LocStartDate   string              `json:"locStartDate"`
	LocEndDate     string              `json:"locEndDate"`
	PocStartDate   string              `json:"pocStartDate"`
	PocEndDate     string              `json:"pocEndDate"`
	Units          float64             `json:"units"`
	Hours          float64             `json:"hours"`
	HDM            bool                `json:"hdm"`
	ADHC           bool                `json:"adhc"`
	CaseManager    CaseManagerRef      `json:"caseManager"`
	Caregivers     []AssignedCaregiver `json:"caregivers,omitempty"`
	CreatedAt      string              `json:"createdAt,omitempty"`
	UpdatedAt      string              `json:"updatedAt,omitempty"`
}

// CaseManagerConnect references an existing case manager by id.
type CaseManagerConnect struct {
	ID int `json:"id"`
}

// CaseManagerCreate carries the data for an inline case-manager creation.
type CaseManagerCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	AgencyID int    `json:"agencyId"`
}

// CaseManagerRelation is the connect-or-create union for the participant
// payload. Exactly one of Connect/Create must be set on submission.
type CaseManagerRelation struct {
	Connect *CaseManagerConnect `json:"connect,omitempty"`
	Create  *CaseManagerCreate  `json:"create,omitempty"`
}

// ParticipantDTO is the payload for participant create and update calls.
// Caregiver assignments are never part of this payload; they are reconciled
// through the dedicated assign/unassign calls after the mutation succeeds.
type ParticipantDTO struct {
	Name           string              `json:"name"`
	IsActive       bool                `json:"isActive"`
	Gender         string              `json:"gender"`
	MedicaidID     string              `json:"medicaidId"`
	DOB            string              `json:"dob"`
	Location       string              `json:"location"`
	Community      string              `json:"community"`
	Address        string              `json:"address"`
	PrimaryPhone   string              `json:"primaryPhone"`
	SecondaryPhone string              `json:"secondaryPhone,omitempty"`
	LocStartDate   string              `json:"locStartDate"`
	LocEndDate     string              `json:"locEndDate"`
	PocStartDate   string              `json:"pocStartDate"`
	PocEndDate     string              `json:"pocEndDate"`
	Units          float64             `json:"units"`
	Hours          float64             `json:"hours"`
	HDM            bool                `json:"hdm"`
	ADHC           bool                `json:"adhc"`
	CaseManager    CaseManagerRelation `json:"caseManager"`
}

// MutationResult is the generic server acknowledgement for delete and
// relation calls.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
