// ABOUTME: Tests for funnel statistics and rendering
// ABOUTME: Uses an in-memory sqlite database seeded with leads
package viz

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/engrity/intake/db"
	"github.com/engrity/intake/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return database
}

func seedLead(t *testing.T, database *sql.DB, email, timeline string) {
	t.Helper()

	lead := &models.Lead{
		Address:         "123 Main St, Langley, BC",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           email,
		Phone:           "604-555-0199",
		Consent:         true,
		Bedrooms:        "3",
		Bathrooms:       "2",
		Basement:        "Yes",
		BasementStatus:  "Finished",
		SellingTimeline: timeline,
		PropertyType:    models.PropertyDetached,
	}
	if err := db.CreateLead(database, lead); err != nil {
		t.Fatalf("Failed to seed lead: %v", err)
	}
}

func TestGenerateFunnelStats(t *testing.T) {
	database := setupTestDB(t)

	seedLead(t, database, "a@example.com", "Yes, as soon as possible")
	seedLead(t, database, "b@example.com", "Yes, as soon as possible")
	seedLead(t, database, "c@example.com", "No, just curious")

	stats, err := GenerateFunnelStats(database)
	if err != nil {
		t.Fatalf("GenerateFunnelStats failed: %v", err)
	}

	if stats.TotalLeads != 3 {
		t.Errorf("Expected 3 total leads, got %d", stats.TotalLeads)
	}
	if len(stats.Buckets) != len(TimelineOrder) {
		t.Errorf("Expected %d buckets, got %d", len(TimelineOrder), len(stats.Buckets))
	}
	if stats.Buckets[0].Count != 2 {
		t.Errorf("Expected 2 leads in first bucket, got %d", stats.Buckets[0].Count)
	}
	if stats.Buckets[len(stats.Buckets)-1].Count != 1 {
		t.Errorf("Expected 1 lead in last bucket, got %d", stats.Buckets[len(stats.Buckets)-1].Count)
	}
}

func TestGenerateFunnelStatsEmpty(t *testing.T) {
	database := setupTestDB(t)

	stats, err := GenerateFunnelStats(database)
	if err != nil {
		t.Fatalf("GenerateFunnelStats failed: %v", err)
	}

	if stats.TotalLeads != 0 {
		t.Errorf("Expected 0 total leads, got %d", stats.TotalLeads)
	}
	if got := stats.RenderFunnel(); got != "No leads yet.\n" {
		t.Errorf("Unexpected empty render: %q", got)
	}
}

func TestRenderFunnel(t *testing.T) {
	database := setupTestDB(t)

	seedLead(t, database, "a@example.com", "Yes, in 1-3 months")

	stats, err := GenerateFunnelStats(database)
	if err != nil {
		t.Fatalf("GenerateFunnelStats failed: %v", err)
	}

	out := stats.RenderFunnel()
	if !strings.Contains(out, "1 total") {
		t.Errorf("Expected total count in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Yes, in 1-3 months") {
		t.Errorf("Expected timeline label in output, got:\n%s", out)
	}
	if !strings.Contains(out, "#") {
		t.Errorf("Expected bar in output, got:\n%s", out)
	}
}

func TestGenerateFunnelGraph(t *testing.T) {
	database := setupTestDB(t)

	seedLead(t, database, "a@example.com", "Yes, as soon as possible")

	dot, err := GenerateFunnelGraph(database)
	if err != nil {
		t.Fatalf("GenerateFunnelGraph failed: %v", err)
	}

	if !strings.Contains(dot, "stage_0") {
		t.Errorf("Expected stage nodes in graph output")
	}
	if !strings.Contains(dot, "1 leads") {
		t.Errorf("Expected lead count in node label")
	}
}
