package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Staff directory store — implements port.StaffStore
// ============================================================

// staffRow maps the staff table's camelCase columns.
type staffRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Info     []string `json:"info"`
	IconName string   `json:"iconName"`
	Color    string   `json:"color"`
	Bg       string   `json:"bg"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}

func (r staffRow) toDomain() domain.Staff {
	return domain.Staff{
		ID:       r.ID,
		Name:     r.Name,
		Role:     r.Role,
		Info:     r.Info,
		IconName: r.IconName,
		Color:    r.Color,
		Bg:       r.Bg,
		ImageURL: r.ImageURL,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

func staffToRow(s *domain.Staff) map[string]any {
	row := map[string]any{
		"name":     s.Name,
		"role":     s.Role,
		"info":     s.Info,
		"iconName": s.IconName,
		"color":    s.Color,
		"bg":       s.Bg,
	}
	if s.ImageURL != "" {
		row["imageUrl"] = s.ImageURL
	}
	if s.Email != "" {
		row["email"] = s.Email
	}
	if s.Phone != "" {
		row["phone"] = s.Phone
	}
	return row
}

func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListStaff")
	defer span.End()

	body, err := c.doGet(ctx, "staff?order=name.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/staff", Err: err}
	}

	rows, err := decodeRows[staffRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode staff: %w", err)
	}

	members := make([]domain.Staff, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.toDomain())
	}
	return members, nil
}

func (c *Client) CreateStaff(ctx context.Context, member *domain.Staff) (*domain.Staff, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateStaff")
	defer span.End()

	body, err := c.doPost(ctx, "staff", staffToRow(member), "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/staff", Err: err}
	}

	rows, err := decodeRows[staffRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode staff insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from staff insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateStaff(ctx context.Context, staffID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateStaff")
	defer span.End()

	if err := c.doPatch(ctx, fmt.Sprintf("staff?id=eq.%s", staffID), updates); err != nil {
		return &domain.ErrExternalService{Service: "supabase/staff", Err: err}
	}
	return nil
}

func (c *Client) DeleteStaff(ctx context.Context, staffID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteStaff")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("staff?id=eq.%s", staffID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/staff", Err: err}
	}
	return nil
}
