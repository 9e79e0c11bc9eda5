package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Compliance requirements store — implements port.RequirementStore
// ============================================================

// requirementRow maps the requirements table, whose columns are
// camelCase (the table predates this service and is shared with the
// frontend's direct access).
type requirementRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IssuedDate     string `json:"issuedDate"`
	ValidityYears  int    `json:"validityYears"`
	ExpiryDate     string `json:"expiryDate"`
	Status         string `json:"status"`
	ActivationDate string `json:"activationDate,omitempty"`
	DocumentURL    string `json:"documentUrl,omitempty"`
}

func (r requirementRow) toDomain() domain.BuildingRequirement {
	return domain.BuildingRequirement{
		ID:             r.ID,
		Name:           r.Name,
		IssuedDate:     r.IssuedDate,
		ValidityYears:  r.ValidityYears,
		ExpiryDate:     r.ExpiryDate,
		Status:         domain.RequirementStatus(r.Status),
		ActivationDate: r.ActivationDate,
		DocumentURL:    r.DocumentURL,
	}
}

func requirementToRow(req *domain.BuildingRequirement) map[string]any {
	row := map[string]any{
		"name":          req.Name,
		"issuedDate":    req.IssuedDate,
		"validityYears": req.ValidityYears,
		"expiryDate":    req.ExpiryDate,
		"status":        string(req.Status),
	}
	if req.ActivationDate != "" {
		row["activationDate"] = req.ActivationDate
	}
	if req.DocumentURL != "" {
		row["documentUrl"] = req.DocumentURL
	}
	return row
}

func (c *Client) ListRequirements(ctx context.Context) ([]domain.BuildingRequirement, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRequirements")
	defer span.End()

	body, err := c.doGet(ctx, "requirements?order=expiryDate.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/requirements", Err: err}
	}

	rows, err := decodeRows[requirementRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode requirements: %w", err)
	}

	reqs := make([]domain.BuildingRequirement, 0, len(rows))
	for _, r := range rows {
		reqs = append(reqs, r.toDomain())
	}
	return reqs, nil
}

func (c *Client) GetRequirement(ctx context.Context, reqID string) (*domain.BuildingRequirement, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetRequirement")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("requirements?id=eq.%s&limit=1", reqID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/requirements", Err: err}
	}

	rows, err := decodeRows[requirementRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode requirement: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "requirement", ID: reqID}
	}
	req := rows[0].toDomain()
	return &req, nil
}

func (c *Client) CreateRequirement(ctx context.Context, req *domain.BuildingRequirement) (*domain.BuildingRequirement, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateRequirement")
	defer span.End()

	body, err := c.doPost(ctx, "requirements", requirementToRow(req), "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/requirements", Err: err}
	}

	rows, err := decodeRows[requirementRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode requirement insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from requirements insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateRequirement(ctx context.Context, reqID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateRequirement")
	defer span.End()

	if err := c.doPatch(ctx, fmt.Sprintf("requirements?id=eq.%s", reqID), updates); err != nil {
		return &domain.ErrExternalService{Service: "supabase/requirements", Err: err}
	}
	return nil
}

func (c *Client) DeleteRequirement(ctx context.Context, reqID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteRequirement")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("requirements?id=eq.%s", reqID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/requirements", Err: err}
	}
	return nil
}
