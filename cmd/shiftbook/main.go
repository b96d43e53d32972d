package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/shiftbook/internal/app"
	"github.com/dori/shiftbook/internal/config"
	"github.com/dori/shiftbook/internal/db"
	"github.com/dori/shiftbook/internal/report"
	"github.com/dori/shiftbook/internal/schedule"
	"github.com/dori/shiftbook/internal/timecalc"
	"github.com/dori/shiftbook/internal/ui"
	"github.com/dori/shiftbook/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "report":
			handleReport(os.Args[2:])
			return
		case "version":
			fmt.Printf("shiftbook v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	configFlag := flag.String("config", "", "Config file path (default ~/.config/shiftbook/config.yaml)")
	dbFlag := flag.String("db", "", "Database path (overrides config)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	flag.Parse()

	if err := runTUI(*configFlag, *dbFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `shiftbook - An employee time tracker

Usage:
  shiftbook                               Start the TUI
  shiftbook report <name> <from> <to>     Print an hours report
  shiftbook version                       Show version
  shiftbook help                          Show this help

Report:
  shiftbook report "Alex" 2026-03-01 2026-03-31

  Dates are YYYY-MM-DD. The endpoints may be given in either order.

TUI Options:
  --config <path>   Config file (default ~/.config/shiftbook/config.yaml)
  --db <path>       Database path (overrides config)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)

Keybindings:
  Employees:    ↑/↓ or j/k    Move cursor
                enter         Open calendar for employee
                a / e / d     Add / edit / delete

  Calendar:     h/j/k/l       Move between days
                H/L           Previous/next month
                v             Start/stop range selection
                enter         Edit day, or summarize range
                s             Summary of selection or month

  Views:        1-2           Switch views
                ?             Help
                q             Quit

For more info: https://github.com/dori/shiftbook`

	fmt.Println(help)
}

func handleReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbFlag := fs.String("db", "", "Database path (default ~/.local/share/shiftbook/shiftbook.db)")
	fs.Parse(args)
	rest := fs.Args()

	if len(rest) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: shiftbook report <name> <from> <to>")
		fmt.Fprintln(os.Stderr, "Example: shiftbook report \"Alex\" 2026-03-01 2026-03-31")
		os.Exit(1)
	}
	name, from, to := rest[0], rest[1], rest[2]

	if !validDate(from) || !validDate(to) {
		fmt.Fprintln(os.Stderr, "Error: dates must be YYYY-MM-DD")
		os.Exit(1)
	}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = db.DefaultDBPath()
	}

	// No lock needed for a read-only report
	database, err := db.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	employees, err := database.GetEmployees()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading employees: %v\n", err)
		os.Exit(1)
	}

	for i := range employees {
		if strings.EqualFold(employees[i].Name, name) {
			data, err := schedule.RangeSummary(database, &employees[i], from, to)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(report.Render(data))
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Error: no employee named %q\n", name)
	os.Exit(1)
}

func validDate(s string) bool {
	_, err := timecalc.DatesBetween(s, s)
	return err == nil
}

func runTUI(configPath, dbPath, themeName string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Theme precedence: flag, then stored setting, then config file
	name := themeName
	if name == "" {
		name, _ = application.DB.GetSetting(db.SettingTheme)
	}
	if name == "" {
		name = cfg.Theme
	}
	if name != "" {
		if t, ok := theme.ByName(name); ok {
			theme.SetTheme(t)
		}
	}

	model := ui.NewRootModel(application)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
