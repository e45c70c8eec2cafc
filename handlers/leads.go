// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements find_leads, get_lead, and lead_funnel_stats tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/engrity/intake/db"
	"github.com/engrity/intake/models"
	"github.com/engrity/intake/viz"
)

type LeadHandlers struct {
	db *sql.DB
}

func NewLeadHandlers(database *sql.DB) *LeadHandlers {
	return &LeadHandlers{db: database}
}

type LeadOutput struct {
	ID              string `json:"id"`
	Address         string `json:"address"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Bedrooms        string `json:"bedrooms"`
	Bathrooms       string `json:"bathrooms"`
	Basement        string `json:"basement"`
	BasementStatus  string `json:"basement_status"`
	SellingTimeline string `json:"selling_timeline"`
	PropertyType    string `json:"property_type"`
	UnitNumber      string `json:"unit_number,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type FindLeadsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name, email, and address)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindLeadsOutput struct {
	Leads []LeadOutput `json:"leads"`
}

func (h *LeadHandlers) FindLeads(_ context.Context, request *mcp.CallToolRequest, input FindLeadsInput) (*mcp.CallToolResult, FindLeadsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	leads, err := db.FindLeads(h.db, input.Query, limit)
	if err != nil {
		return nil, FindLeadsOutput{}, fmt.Errorf("failed to find leads: %w", err)
	}

	result := make([]LeadOutput, len(leads))
	for i, lead := range leads {
		result[i] = leadToOutput(&lead)
	}

	return nil, FindLeadsOutput{Leads: result}, nil
}

type GetLeadInput struct {
	ID string `json:"id" jsonschema:"Lead ID (required)"`
}

func (h *LeadHandlers) GetLead(_ context.Context, request *mcp.CallToolRequest, input GetLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	if input.ID == "" {
		return nil, LeadOutput{}, fmt.Errorf("id is required")
	}

	lead, err := db.GetLead(h.db, input.ID)
	if err != nil {
		return nil, LeadOutput{}, fmt.Errorf("failed to get lead: %w", err)
	}
	if lead == nil {
		return nil, LeadOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}

	return nil, leadToOutput(lead), nil
}

type FunnelStatsInput struct{}

type FunnelBucketOutput struct {
	Timeline string `json:"timeline"`
	Count    int    `json:"count"`
}

type FunnelStatsOutput struct {
	TotalLeads int                  `json:"total_leads"`
	Buckets    []FunnelBucketOutput `json:"buckets"`
}

func (h *LeadHandlers) LeadFunnelStats(_ context.Context, request *mcp.CallToolRequest, input FunnelStatsInput) (*mcp.CallToolResult, FunnelStatsOutput, error) {
	stats, err := viz.GenerateFunnelStats(h.db)
	if err != nil {
		return nil, FunnelStatsOutput{}, fmt.Errorf("failed to generate funnel stats: %w", err)
	}

	out := FunnelStatsOutput{TotalLeads: stats.TotalLeads}
	for _, bucket := range stats.Buckets {
		out.Buckets = append(out.Buckets, FunnelBucketOutput{
			Timeline: bucket.Timeline,
			Count:    bucket.Count,
		})
	}

	return nil, out, nil
}

func leadToOutput(lead *models.Lead) LeadOutput {
	return LeadOutput{
		ID:              lead.ID,
		Address:         lead.Address,
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Bedrooms:        lead.Bedrooms,
		Bathrooms:       lead.Bathrooms,
		Basement:        lead.Basement,
		BasementStatus:  lead.BasementStatus,
		SellingTimeline: lead.SellingTimeline,
		PropertyType:    lead.PropertyType,
		UnitNumber:      lead.UnitNumber,
		CreatedAt:       lead.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
