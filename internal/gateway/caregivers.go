package gateway

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// ListCaregivers fetches one page of caregivers.
func (c *Client) ListCaregivers(ctx context.Context, page, pageSize int) (*models.Page[models.Caregiver], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var out models.Page[models.Caregiver]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"pageSize": strconv.Itoa(pageSize),
		}).
		SetResult(&out).
		Get("/caregivers")
	if err != nil {
		return nil, fmt.Errorf("list caregivers: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "list caregivers")
	}
	return &out, nil
}

// CreateCaregiver creates a standalone caregiver record.
func (c *Client) CreateCaregiver(ctx context.Context, dto models.CaregiverDTO) (*models.Caregiver, error) {
	var out models.Caregiver
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(dto).
		SetResult(&out).
		Post("/caregivers")
	if err != nil {
		return nil, fmt.Errorf("create caregiver: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "create caregiver")
	}

	c.logger.Info("Created caregiver",
		zap.Int("caregiver_id", out.ID),
		zap.String("name", out.Name),
	)
	return &out, nil
}

// ListAssignedCaregivers fetches the caregivers currently assigned to a
// participant.
func (c *Client) ListAssignedCaregivers(ctx context.Context, participantID int) ([]models.Caregiver, error) {
	var out listEnvelope[models.Caregiver]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/participants/%d/caregivers", participantID))
	if err != nil {
		return nil, fmt.Errorf("list assigned caregivers for participant %d: %w", participantID, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("list assigned caregivers for participant %d", participantID))
	}
	return out.Data, nil
}

// AssignCaregiver assigns a caregiver to a participant. A duplicate
// assignment is rejected by the server; the error is returned to the caller,
// never swallowed.
func (c *Client) AssignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error) {
	var out models.MutationResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/participants/%d/caregivers/%d", participantID, caregiverID))
	if err != nil {
		return nil, fmt.Errorf("assign caregiver %d to participant %d: %w", caregiverID, participantID, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("assign caregiver %d to participant %d", caregiverID, participantID))
	}

	c.logger.Info("Assigned caregiver",
		zap.Int("participant_id", participantID),
		zap.Int("caregiver_id", caregiverID),
	)
	return &out, nil
}

// UnassignCaregiver removes a caregiver assignment from a participant.
func (c *Client) UnassignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error) {
	var out models.MutationResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Delete(fmt.Sprintf("/participants/%d/caregivers/%d", participantID, caregiverID))
	if err != nil {
		return nil, fmt.Errorf("unassign caregiver %d from participant %d: %w", caregiverID, participantID, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("unassign caregiver %d from participant %d", caregiverID, participantID))
	}

	c.logger.Info("Unassigned caregiver",
		zap.Int("participant_id", participantID),
		zap.Int("caregiver_id", caregiverID),
	)
	return &out, nil
}
