package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"orthoverlap/internal/config"
	"orthoverlap/internal/pipeline"
	"orthoverlap/internal/report"
	"orthoverlap/internal/tui"
)

func main() {
	configPath := flag.String("config", "orthoverlap.yaml", "YAML configuration file (defaults when missing)")
	first := flag.String("a", "", "First raster (overrides config)")
	second := flag.String("b", "", "Second raster (overrides config)")
	output := flag.String("o", "", "Output GeoJSON path (overrides config)")
	parallel := flag.Bool("parallel", false, "Scan both masks concurrently")
	view := flag.Bool("view", false, "Preview extents and intersection in the terminal after the run")
	show := flag.String("show", "", "Preview an existing GeoJSON or KML document and exit")
	initConfig := flag.String("init-config", "", "Write the default configuration to this path and exit")
	flag.Parse()

	if *initConfig != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *initConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *initConfig)
		return
	}

	if *show != "" {
		m, err := tui.NewFromFile(*show)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *show, err)
		}
		preview(m)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *first != "" {
		cfg.Inputs.First = *first
	}
	if *second != "" {
		cfg.Inputs.Second = *second
	}
	if *output != "" {
		cfg.Output.Path = *output
	}
	if *parallel {
		cfg.Processing.Parallel = true
	}

	res, err := pipeline.NewDriver(cfg, report.Stdio()).Execute()
	if err != nil {
		log.Fatalf("Overlap run failed: %v", err)
	}
	if *view {
		preview(tui.NewFromResult(res))
	}
}

func preview(m tui.Model) {
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
