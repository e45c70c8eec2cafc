// ABOUTME: Funnel statistics and graph generation for stored leads
// ABOUTME: Groups leads by selling timeline and renders an ASCII/DOT funnel
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/engrity/intake/db"
)

// TimelineOrder fixes the funnel stages from most to least urgent.
var TimelineOrder = []string{
	"Yes, as soon as possible",
	"Yes, in 1-3 months",
	"Yes, in 3-6 months",
	"Yes, in 6-12 months",
	"No, just curious",
}

type TimelineBucket struct {
	Timeline string
	Count    int
}

type FunnelStats struct {
	TotalLeads int
	Buckets    []TimelineBucket
}

// GenerateFunnelStats groups stored leads by selling timeline in funnel
// order. Leads with an unknown timeline land in a trailing bucket.
func GenerateFunnelStats(database *sql.DB) (*FunnelStats, error) {
	counts, err := db.CountLeadsByTimeline(database)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	stats := &FunnelStats{}
	seen := make(map[string]bool)

	for _, timeline := range TimelineOrder {
		stats.Buckets = append(stats.Buckets, TimelineBucket{
			Timeline: timeline,
			Count:    counts[timeline],
		})
		stats.TotalLeads += counts[timeline]
		seen[timeline] = true
	}

	other := 0
	for timeline, count := range counts {
		if !seen[timeline] {
			other += count
		}
	}
	if other > 0 {
		stats.Buckets = append(stats.Buckets, TimelineBucket{Timeline: "Other", Count: other})
		stats.TotalLeads += other
	}

	return stats, nil
}

// RenderFunnel formats the stats as a terminal bar chart.
func (s *FunnelStats) RenderFunnel() string {
	if s.TotalLeads == 0 {
		return "No leads yet.\n"
	}

	max := 0
	for _, bucket := range s.Buckets {
		if bucket.Count > max {
			max = bucket.Count
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Leads by selling timeline (%d total):\n", s.TotalLeads)
	for _, bucket := range s.Buckets {
		fmt.Fprintf(&b, "  %-28s %4d %s\n", bucket.Timeline, bucket.Count, bar20(bucket.Count, max))
	}
	return b.String()
}

func bar20(val, max int) string {
	if max <= 0 {
		return ""
	}
	filled := (20 * val) / max
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

// GenerateFunnelGraph renders the timeline funnel as a DOT graph.
func GenerateFunnelGraph(database *sql.DB) (string, error) {
	stats, err := GenerateFunnelStats(database)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLabel("Seller Intake Funnel")
	graph.SetRankDir(cgraph.TBRank)

	var prev *cgraph.Node
	for i, bucket := range stats.Buckets {
		node, err := graph.CreateNodeByName(fmt.Sprintf("stage_%d", i))
		if err != nil {
			return "", fmt.Errorf("failed to create funnel node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d leads", bucket.Timeline, bucket.Count))
		node.SetShape("box")
		node.SetStyle("filled")
		if bucket.Count > 0 {
			node.SetFillColor("lightgreen")
		} else {
			node.SetFillColor("lightgray")
		}

		if prev != nil {
			if _, err := graph.CreateEdgeByName("", prev, node); err != nil {
				return "", fmt.Errorf("failed to create funnel edge: %w", err)
			}
		}
		prev = node
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
