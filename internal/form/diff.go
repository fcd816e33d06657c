package form

import "github.com/roger120981/buenavida-admin/internal/models"

// AssignmentDiff is the reconciliation plan between the assignment list as
// loaded and as edited: ids to assign and ids to unassign. Assignments
// present in both lists are untouched.
type AssignmentDiff struct {
	ToAssign   []int
	ToUnassign []int
}

// Empty reports whether no relation calls are needed.
func (d AssignmentDiff) Empty() bool {
	return len(d.ToAssign) == 0 && len(d.ToUnassign) == 0
}

// DiffAssignments computes the plan from the previously loaded list to the
// edited one. Order is preserved: additions in next order, removals in
// previous order.
func DiffAssignments(previous, next []models.CaregiverAssignment) AssignmentDiff {
	prevSet := make(map[int]bool, len(previous))
	for _, a := range previous {
		prevSet[a.CaregiverID] = true
	}
	nextSet := make(map[int]bool, len(next))
	for _, a := range next {
		nextSet[a.CaregiverID] = true
	}

	var diff AssignmentDiff
	for _, a := range next {
		if !prevSet[a.CaregiverID] {
			diff.ToAssign = append(diff.ToAssign, a.CaregiverID)
		}
	}
	for _, a := range previous {
		if !nextSet[a.CaregiverID] {
			diff.ToUnassign = append(diff.ToUnassign, a.CaregiverID)
		}
	}
	return diff
}
