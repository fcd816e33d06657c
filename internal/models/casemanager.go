package models

// CaseManager is a staff member responsible for participants; belongs to
// one agency.
type CaseManager struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	AgencyID int    `json:"agencyId,omitempty"`
}

// Agency is the organization employing case managers. Read-only lookup list.
type Agency struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
