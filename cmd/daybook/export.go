// Package main is the entry point for the daybook application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"daybook/internal/config"
	"daybook/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `daybook export - Export all data as a JSON snapshot

USAGE:
    daybook export [OPTIONS]

OPTIONS:
    -o, --output FILE   Write the snapshot to FILE
                        (default: daybook_export_YYYY-MM-DD.json)
    -h, --help          Show this help message

DESCRIPTION:
    Writes every note, archived note, and calendar entry to a single JSON
    file. The file can be moved to another machine and loaded back with
    'daybook import'; an export/import round trip reproduces the exact
    same state.

EXAMPLES:
    # Export to the default file in the current directory
    daybook export

    # Export to a specific file
    daybook export -o ~/notes.json
`

// runExport handles the "daybook export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	outFlag := fs.String("output", "", "output file path")
	fs.StringVar(outFlag, "o", "", "output file path (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	path := *outFlag
	if path == "" {
		path = fmt.Sprintf("daybook_export_%s.json", store.Now().Format("2006-01-02"))
	}

	snap, err := store.ExportSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting data: %v\n", err)
		os.Exit(1)
	}

	if err := store.WriteExportFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Exported to %s\n", path)
	fmt.Printf("  Notes: %d, Archived: %d, Calendar entries: %d\n",
		len(snap.Todos), len(snap.Archived), len(snap.CalendarEntries))
}
