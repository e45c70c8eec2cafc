// ABOUTME: MCP server subcommand
// ABOUTME: Exposes stored leads to operator tooling over stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/engrity/intake/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB) error {
	log.Println("Starting intake MCP server...")

	leadHandlers := handlers.NewLeadHandlers(db)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "intake",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_leads",
		Description: "Search for seller leads by name, email, or address",
	}, leadHandlers.FindLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_lead",
		Description: "Get a single seller lead by ID",
	}, leadHandlers.GetLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lead_funnel_stats",
		Description: "Get lead counts grouped by selling timeline",
	}, leadHandlers.LeadFunnelStats)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
