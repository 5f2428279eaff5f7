package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"dragsort/internal/config"
	"dragsort/internal/dom"
	"dragsort/internal/eventbus"
	"dragsort/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		horizontal bool
		delta      float64
		initConfig bool
		listFile   string
		listSel    string
	)
	flag.StringVar(&configPath, "config", config.FileName, "Path to the TOML config file")
	flag.BoolVar(&horizontal, "horizontal", false, "Lay the list out left to right")
	flag.Float64Var(&delta, "delta", 0, "Movement needed before a press becomes a drag")
	flag.BoolVar(&initConfig, "init", false, "Write a default config file and exit")
	flag.StringVar(&listFile, "file", "", "HTML file holding the list to reorder")
	flag.StringVar(&listSel, "list", "ul, ol", "Selector of the list element inside -file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [item ...]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Drag items with the mouse to reorder them. The final order is printed on exit.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	// Nothing is logged to the terminal; the log file is set once the
	// config is loaded
	log.SetOutput(io.Discard)

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceAt(bus, configPath)

	if initConfig {
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", configPath)
		return
	}

	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags given explicitly override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "horizontal":
			cfg.Horizontal = horizontal
		case "delta":
			cfg.Delta = delta
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	container, err := buildList(cfg, listFile, listSel, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create UI model
	log.Printf("Creating UI model...")
	model, err := ui.NewModel(bus, cfg, container)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	// Forward domain events to the UI
	for _, t := range []eventbus.EventType{
		eventbus.EventDragStarted,
		eventbus.EventDragEnded,
		eventbus.EventOrderCommitted,
		eventbus.EventSessionAborted,
		eventbus.EventItemAdded,
		eventbus.EventError,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}
	bus.Subscribe(eventbus.EventOrderCommitted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.OrderCommittedEvent); ok && ev.Changed {
			log.Printf("Order committed: %s", strings.Join(ev.Order, ", "))
		}
	})

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if os.Getenv("DRAGSORT_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	for _, item := range model.Order() {
		fmt.Println(item)
	}
}

// buildList returns the list to reorder: the list element of an HTML file,
// the command line items, or the items from the config, in that order of
// preference
func buildList(cfg *config.Config, file, listSel string, args []string) (*html.Node, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open list file: %w", err)
		}
		defer f.Close()
		return dom.ParseList(f, listSel)
	}

	items := cfg.Items
	if len(args) > 0 {
		items = args
	}
	if len(items) == 0 {
		return nil, errors.New("no items to sort: pass items as arguments, set items in the config, or use -file")
	}
	return dom.NewList("ul", "li", items), nil
}
