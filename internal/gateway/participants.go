package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// ListOptions parameterizes a participant list query. Zero values fall back
// to the server defaults used by the dashboard (page 1, 10 rows, createdAt
// ascending).
type ListOptions struct {
	Filters   map[string]any
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

func (o ListOptions) withDefaults() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = 10
	}
	if o.SortBy == "" {
		o.SortBy = "createdAt"
	}
	if o.SortOrder != "asc" && o.SortOrder != "desc" {
		o.SortOrder = "asc"
	}
	return o
}

// QueryParams serializes the options the way the dashboard does: filters as
// a single JSON object parameter. encoding/json writes map keys in sorted
// order, so equivalent filter sets produce identical parameter strings.
func (o ListOptions) QueryParams() map[string]string {
	o = o.withDefaults()
	filters := o.Filters
	if filters == nil {
		filters = map[string]any{}
	}
	raw, _ := json.Marshal(filters)
	return map[string]string{
		"filters":   string(raw),
		"page":      strconv.Itoa(o.Page),
		"pageSize":  strconv.Itoa(o.PageSize),
		"sortBy":    o.SortBy,
		"sortOrder": o.SortOrder,
	}
}

// ListParticipants fetches one page of participants matching the filters.
func (c *Client) ListParticipants(ctx context.Context, opts ListOptions) (*models.Page[models.Participant], error) {
	var out models.Page[models.Participant]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(opts.QueryParams()).
		SetResult(&out).
		Get("/participants")
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "list participants")
	}

	c.logger.Debug("Listed participants",
		zap.Int("page", out.Page),
		zap.Int("count", len(out.Data)),
		zap.Int("total", out.Total),
	)
	return &out, nil
}

// ListParticipantsByStatus fetches the unpaginated participant list filtered
// by the active flag (GET /participants/status/{0|1}).
func (c *Client) ListParticipantsByStatus(ctx context.Context, active bool) ([]models.Participant, error) {
	status := "0"
	if active {
		status = "1"
	}

	var out listEnvelope[models.Participant]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/participants/status/" + status)
	if err != nil {
		return nil, fmt.Errorf("list participants by status: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "list participants by status")
	}
	return out.Data, nil
}

// GetParticipant fetches a single participant by id.
func (c *Client) GetParticipant(ctx context.Context, id int) (*models.Participant, error) {
	var out models.Participant
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/participants/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get participant %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("get participant %d", id))
	}
	return &out, nil
}

// CreateParticipant creates a participant. The payload carries the
// connect-or-create case-manager relation and never caregiver assignments.
func (c *Client) CreateParticipant(ctx context.Context, dto models.ParticipantDTO) (*models.Participant, error) {
	var out models.Participant
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(dto).
		SetResult(&out).
		Post("/participants")
	if err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "create participant")
	}

	c.logger.Info("Created participant",
		zap.Int("participant_id", out.ID),
		zap.String("name", out.Name),
	)
	return &out, nil
}

// UpdateParticipant updates a participant by id.
func (c *Client) UpdateParticipant(ctx context.Context, id int, dto models.ParticipantDTO) (*models.Participant, error) {
	var out models.Participant
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(dto).
		SetResult(&out).
		Put(fmt.Sprintf("/participants/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update participant %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("update participant %d", id))
	}

	c.logger.Info("Updated participant", zap.Int("participant_id", id))
	return &out, nil
}

// DeleteParticipant deactivates a participant (the server implements this
// as a soft delete).
func (c *Client) DeleteParticipant(ctx context.Context, id int) (*models.MutationResult, error) {
	var out models.MutationResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Delete(fmt.Sprintf("/participants/%d", id))
	if err != nil {
		return nil, fmt.Errorf("delete participant %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, fmt.Sprintf("delete participant %d", id))
	}

	c.logger.Info("Deleted participant", zap.Int("participant_id", id))
	return &out, nil
}
