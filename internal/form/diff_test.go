package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roger120981/buenavida-admin/internal/form"
	"github.com/roger120981/buenavida-admin/internal/models"
)

func assignments(pairs ...models.CaregiverAssignment) []models.CaregiverAssignment {
	return pairs
}

func TestDiffAssignments_AddAndRemove(t *testing.T) {
	previous := assignments(
		models.CaregiverAssignment{CaregiverID: 1, CaregiverName: "A"},
		models.CaregiverAssignment{CaregiverID: 2, CaregiverName: "B"},
	)
	next := assignments(
		models.CaregiverAssignment{CaregiverID: 2, CaregiverName: "B"},
		models.CaregiverAssignment{CaregiverID: 3, CaregiverName: "C"},
	)

	diff := form.DiffAssignments(previous, next)
	assert.Equal(t, []int{3}, diff.ToAssign)
	assert.Equal(t, []int{1}, diff.ToUnassign)
	assert.False(t, diff.Empty())
}

func TestDiffAssignments_UnchangedListIsEmpty(t *testing.T) {
	list := assignments(
		models.CaregiverAssignment{CaregiverID: 1},
		models.CaregiverAssignment{CaregiverID: 2},
	)

	diff := form.DiffAssignments(list, list)
	assert.True(t, diff.Empty())
}

func TestDiffAssignments_EmptyPrevious(t *testing.T) {
	next := assignments(
		models.CaregiverAssignment{CaregiverID: 5},
		models.CaregiverAssignment{CaregiverID: 6},
	)

	diff := form.DiffAssignments(nil, next)
	assert.Equal(t, []int{5, 6}, diff.ToAssign)
	assert.Empty(t, diff.ToUnassign)
}

func TestDiffAssignments_EmptyNext(t *testing.T) {
	previous := assignments(
		models.CaregiverAssignment{CaregiverID: 5},
		models.CaregiverAssignment{CaregiverID: 6},
	)

	diff := form.DiffAssignments(previous, nil)
	assert.Empty(t, diff.ToAssign)
	assert.Equal(t, []int{5, 6}, diff.ToUnassign)
}

func TestDiffAssignments_PreservesOrder(t *testing.T) {
	next := assignments(
		models.CaregiverAssignment{CaregiverID: 9},
		models.CaregiverAssignment{CaregiverID: 4},
		models.CaregiverAssignment{CaregiverID: 7},
	)

	diff := form.DiffAssignments(nil, next)
	assert.Equal(t, []int{9, 4, 7}, diff.ToAssign)
}
