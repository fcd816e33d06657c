package models

// Caregiver is a staff member assignable to zero or more participants.
type Caregiver struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CaregiverDTO is the payload for caregiver creation.
type CaregiverDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"isActive"`
}

// CaregiverAssignment is the in-form assignment row: the caregiver id plus
// the display name, de-duplicated by caregiver id.
type CaregiverAssignment struct {
	CaregiverID   int    `json:"caregiverId"`
	CaregiverName string `json:"caregiverName"`
}
