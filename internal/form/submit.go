package form

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// Mutator is the slice of the cached query layer the submitter needs.
// *cache.Queries satisfies it; tests substitute fakes.
type Mutator interface {
	CreateParticipant(ctx context.Context, dto models.ParticipantDTO) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id int, dto models.ParticipantDTO) (*models.Participant, error)
	AssignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error)
	UnassignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error)
}

// RelationError records one failed assign/unassign call after the parent
// mutation already succeeded.
type RelationError struct {
	Op          string // "assign" or "unassign"
	CaregiverID int
	Err         error
}

func (e RelationError) Error() string {
	return fmt.Sprintf("%s caregiver %d: %v", e.Op, e.CaregiverID, e.Err)
}

// SubmitResult is the outcome of one submission. Saved with RelationErrors
// is the partial-completion state: the participant was written but some
// assignments were not, and the caller must say so distinctly. There is no
// rollback.
type SubmitResult struct {
	Participant    *models.Participant
	Saved          bool
	RelationErrors []RelationError
}

// Ok reports full success: parent mutation and every relation call.
func (r *SubmitResult) Ok() bool {
	return r.Saved && len(r.RelationErrors) == 0
}

// Submitter drives a participant form through validation, the parent
// create/update, and the assignment reconciliation.
type Submitter struct {
	mut    Mutator
	logger *zap.Logger
}

func NewSubmitter(mut Mutator, logger *zap.Logger) *Submitter {
	return &Submitter{mut: mut, logger: logger}
}

// Submit validates and submits the form. On a validation failure the
// returned error is the ValidationErrors map and nothing is sent. On a
// gateway failure of the parent mutation the form moves to failed with its
// input retained and no relation call is issued. Relation calls run only
// after the parent mutation succeeds; their failures accumulate in the
// result instead of aborting.
func (s *Submitter) Submit(ctx context.Context, f *ParticipantForm) (*SubmitResult, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}
	f.status = StatusSubmitting

	dto := f.Payload()
	var participant *models.Participant
	var err error
	if f.participantID == 0 {
		participant, err = s.mut.CreateParticipant(ctx, dto)
	} else {
		participant, err = s.mut.UpdateParticipant(ctx, f.participantID, dto)
	}
	if err != nil {
		f.status = StatusFailed
		return nil, err
	}

	result := &SubmitResult{Participant: participant, Saved: true}
	participantID := f.participantID
	if participantID == 0 && participant != nil {
		participantID = participant.ID
	}

	diff := DiffAssignments(f.loadedAssignments, f.values.Assignments)
	for _, caregiverID := range diff.ToAssign {
		if _, err := s.mut.AssignCaregiver(ctx, participantID, caregiverID); err != nil {
			s.logger.Warn("Caregiver assignment failed after participant save",
				zap.Int("participant_id", participantID),
				zap.Int("caregiver_id", caregiverID),
				zap.Error(err),
			)
			result.RelationErrors = append(result.RelationErrors, RelationError{
				Op: "assign", CaregiverID: caregiverID, Err: err,
			})
		}
	}
	for _, caregiverID := range diff.ToUnassign {
		if _, err := s.mut.UnassignCaregiver(ctx, participantID, caregiverID); err != nil {
			s.logger.Warn("Caregiver unassignment failed after participant save",
				zap.Int("participant_id", participantID),
				zap.Int("caregiver_id", caregiverID),
				zap.Error(err),
			)
			result.RelationErrors = append(result.RelationErrors, RelationError{
				Op: "unassign", CaregiverID: caregiverID, Err: err,
			})
		}
	}

	if len(result.RelationErrors) > 0 {
		f.status = StatusFailed
	} else {
		f.status = StatusSucceeded
	}
	return result, nil
}
