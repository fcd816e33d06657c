package gateway

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/models"
)

// ListCaseManagers fetches one page of case managers for the selection
// dropdown.
func (c *Client) ListCaseManagers(ctx context.Context, page, pageSize int) (*models.Page[models.CaseManager], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var out models.Page[models.CaseManager]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"pageSize": strconv.Itoa(pageSize),
		}).
		SetResult(&out).
		Get("/case-managers")
	if err != nil {
		return nil, fmt.Errorf("list case managers: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "list case managers")
	}
	return &out, nil
}

// createCaseManagerResponse is the create acknowledgement: the server wraps
// the new record in a {success,message,data} envelope.
type createCaseManagerResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    models.CaseManager `json:"data"`
}

// CreateCaseManager creates a case manager, either standalone or as part of
// the inline "create new" path of the participant form.
func (c *Client) CreateCaseManager(ctx context.Context, dto models.CaseManagerCreate) (*models.CaseManager, error) {
	var out createCaseManagerResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(dto).
		SetResult(&out).
		Post("/case-managers")
	if err != nil {
		return nil, fmt.Errorf("create case manager: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "create case manager")
	}

	c.logger.Info("Created case manager",
		zap.Int("case_manager_id", out.Data.ID),
		zap.String("name", out.Data.Name),
	)
	return &out.Data, nil
}

// ListAgencies fetches one page of agencies (read-only lookup list for
// case-manager creation).
func (c *Client) ListAgencies(ctx context.Context, page, pageSize int) (*models.Page[models.Agency], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var out models.Page[models.Agency]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"pageSize": strconv.Itoa(pageSize),
		}).
		SetResult(&out).
		Get("/agencies")
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, "list agencies")
	}
	return &out, nil
}
