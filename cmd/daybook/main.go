// Package main is the entry point for the daybook application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"daybook/internal/config"
	"daybook/internal/notify"
	"daybook/internal/storage"
	"daybook/internal/timer"
	"daybook/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `daybook - Notes, countdowns, and a daily log for your terminal

USAGE:
    daybook [OPTIONS]
    daybook <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Export all data as a JSON snapshot
    export -o FILE   Export to a specific file
    import FILE      Import a previously exported snapshot

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    daybook is a terminal-based notes app that combines a reorderable
    note board, a countdown timer, and an append-only calendar log in a
    single, keyboard-driven interface.

FEATURES:
    • Notes      - Colored notes with text, bullet, or checkbox bodies
    • Timer      - Countdown bound to a note, logged on completion
    • Calendar   - Append-only daily log of printed notes
    • Local Data - Plain JSON files in ~/.daybook/

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        ?            Show help overlay
        q            Quit

    Notes Pane:
        j/k, ↓/↑     Navigate
        a            Add note
        e            Edit body
        x            Delete note
        v / V        Archive note / view archive
        p            Print note to calendar
        c / n        Cycle color / note type
        t            Tick next checkbox
        r            Grab to reorder (j/k, Enter drops)

    Timer Pane:
        Space        Start/stop countdown
        j/k          Minutes down/up
        J/K          Hours down/up

    Calendar Pane:
        h/l          Previous/next day
        t            Jump to today
        x            Delete entry
        u            Restore entry to notes
        /            Search entries

DATA STORAGE:
    All data is stored in ~/.daybook/ as plain JSON files:
        todos.json         - Active and archived notes
        calendar.json      - The calendar log
        timer.json         - Persisted countdown state
        timer_preset.json  - Last configured duration

CONFIGURATION:
    Optional config file: ~/.config/daybook/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    daybook

    # Create a backup
    daybook backup

    # Restore from a backup
    daybook restore --latest

    # Export everything to a file
    daybook export -o notes.json

    # Show version
    daybook --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("daybook version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/daybook/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Desktop notifications are opt-in
	notifier := notify.Noop()
	if cfg.Notifications.Enabled {
		notifier = notify.New()
	}

	// Countdown engine shared by the TUI panes
	eng := timer.New(store, notifier)

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	if err := ui.Run(store, eng, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
