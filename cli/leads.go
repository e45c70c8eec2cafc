// ABOUTME: Lead CLI commands
// ABOUTME: Human-friendly commands for browsing stored leads
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/engrity/intake/db"
	"github.com/engrity/intake/viz"
)

// ListLeadsCommand lists stored leads.
func ListLeadsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-leads", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, email, or address")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	leads, err := db.FindLeads(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to find leads: %w", err)
	}

	if len(leads) == 0 {
		fmt.Println("No leads found")
		return nil
	}

	// Pretty print results
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tADDRESS\tTIMELINE\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-------\t--------\t--")

	for _, lead := range leads {
		name := lead.FirstName + " " + lead.LastName
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, lead.Email, lead.Address, lead.SellingTimeline, lead.ID)
	}

	return w.Flush()
}

// FunnelCommand prints lead funnel statistics, optionally as a DOT graph.
func FunnelCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("funnel", flag.ExitOnError)
	dot := fs.Bool("dot", false, "Emit a Graphviz DOT graph instead of the bar chart")
	_ = fs.Parse(args)

	if *dot {
		graph, err := viz.GenerateFunnelGraph(database)
		if err != nil {
			return fmt.Errorf("failed to generate funnel graph: %w", err)
		}
		fmt.Println(graph)
		return nil
	}

	stats, err := viz.GenerateFunnelStats(database)
	if err != nil {
		return fmt.Errorf("failed to generate funnel stats: %w", err)
	}
	fmt.Print(stats.RenderFunnel())
	return nil
}
