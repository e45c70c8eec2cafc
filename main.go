// ABOUTME: Entry point for the seller intake API, wizard, and tooling
// ABOUTME: Routes to serve, wizard, mcp, or leads commands based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/engrity/intake/cli"
	"github.com/engrity/intake/config"
	"github.com/engrity/intake/db"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/intake/intake.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("intake version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		database := openDatabase(*dbPath)
		defer database.Close()

		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if err := cli.ServeCommand(database, cfg); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "wizard":
		// Talks to a running intake API, no local database needed
		if err := cli.WizardCommand(cfg); err != nil {
			log.Fatalf("Wizard failed: %v", err)
		}

	case "mcp":
		database := openDatabase(*dbPath)
		defer database.Close()

		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "leads":
		database := openDatabase(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: leads requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		leadsCommand := commandArgs[0]
		leadsArgs := commandArgs[1:]

		switch leadsCommand {
		case "list":
			if err := cli.ListLeadsCommand(database, leadsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "funnel":
			if err := cli.FunnelCommand(database, leadsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown leads subcommand: %s\n", leadsCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func openDatabase(dbPath string) *sql.DB {
	finalDBPath := getDatabasePath(dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return database
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "intake", "intake.db")
}

func printUsage() {
	fmt.Printf(`intake v%s - Seller lead intake toolkit

USAGE:
  intake [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/intake/intake.db)
  --init                 Initialize database and exit (use with 'serve')

COMMANDS:
  serve                  Start the lead intake HTTP API
  wizard                 Run the interactive seller intake wizard
  mcp                    Start MCP server for operator tooling
  leads                  Lead management commands

LEADS COMMANDS:
  intake leads list      List stored leads
    --query <text>         Search by name, email, or address
    --limit <n>            Maximum results (default 50)

  intake leads funnel    Show lead counts by selling timeline
    --dot                  Emit a Graphviz DOT graph

ENVIRONMENT:
  PORT                      API port (default 4000)
  GOOGLE_API_KEY            Google Places API key (required for serve)
  INTAKE_API_BASE_URL       API base URL for the wizard (default http://localhost:4000)
  EMAILJS_SERVICE_ID        EmailJS service for notifications
  EMAILJS_TEMPLATE_ID       EmailJS template for notifications
  EMAILJS_PUBLIC_KEY        EmailJS public key
`, version)
}
