// Package main is the entry point for the daybook application.
// This file contains the import subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"daybook/internal/backup"
	"daybook/internal/config"
	"daybook/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `daybook import - Load a previously exported snapshot

USAGE:
    daybook import [OPTIONS] FILE

OPTIONS:
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    FILE           Snapshot file created by 'daybook export'

DESCRIPTION:
    Replaces all notes, archived notes, and calendar entries with the
    snapshot's contents. Nothing is merged. A safety backup of the
    current data is created before anything is overwritten.

EXAMPLES:
    # Import a snapshot
    daybook import notes.json

    # Import without confirmation prompt
    daybook import --force notes.json
`

// runImport handles the "daybook import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no snapshot file specified")
		fmt.Fprintln(os.Stderr, "Use 'daybook import FILE'")
		os.Exit(1)
	}
	path := fs.Arg(0)

	// Parse and validate the snapshot before touching anything.
	snap, err := storage.ReadExportFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Importing from %s\n", path)
	fmt.Printf("  Notes: %d, Archived: %d, Calendar entries: %d\n",
		len(snap.Todos), len(snap.Archived), len(snap.CalendarEntries))
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will replace your current data.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Import cancelled.")
			os.Exit(0)
		}
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Safety backup of whatever is there now
	manager := backup.NewManager(cfg.GetDataDir(), version)
	if name, err := manager.Create(); err == nil {
		fmt.Printf("✓ Safety backup created: %s\n", name)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	if err := store.ImportSnapshot(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Import complete")
}
