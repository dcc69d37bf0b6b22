package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"potlcd/sim"
)

var (
	configPath = flag.String("config", "potlcd-sim.yaml", "Scenario file (defaults are used if missing)")
	duration   = flag.Duration("duration", 0, "Virtual time to run (overrides the scenario)")
	writeCfg   = flag.Bool("write-config", false, "Write the effective scenario to -config and exit")
	console    = flag.Bool("console", false, "Echo the firmware debug console")
	pressAt    = flag.Duration("press", -1, "Extra button press at this offset after setup")
)

func main() {
	flag.Parse()

	cfg, err := sim.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *pressAt >= 0 {
		cfg.Button.Presses = append(cfg.Button.Presses, *pressAt)
	}
	if *console {
		cfg.Debug = true
	}

	if *writeCfg {
		if err := cfg.Save(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *configPath)
		return
	}

	var out io.Writer
	if cfg.Debug {
		out = os.Stdout
	}
	s, err := sim.New(cfg, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := s.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: setup failed: %v\n", err)
		os.Exit(1)
	}

	// Show the display once per simulated second
	for elapsed := time.Duration(0); elapsed < cfg.Duration; elapsed += time.Second {
		step := min(time.Second, cfg.Duration-elapsed)
		s.Run(step)
		printDisplay(s, s.Report())
	}

	r := s.Report()
	fmt.Printf("\nelapsed=%s renders=%d toggles=%d ignored=%d latches=%d retriggers=%d\n",
		r.Elapsed, r.Renders, r.Toggles, r.Ignored, r.Latches, r.Retriggers)
	if r.Violations > 0 || r.ShortPulses > 0 {
		fmt.Printf("display timing: %d busy violations, %d short enable pulses\n", r.Violations, r.ShortPulses)
		os.Exit(2)
	}
}

func printDisplay(s *sim.Sim, r sim.Report) {
	cols := int(s.Config.Display.Cols)
	border := "+" + strings.Repeat("-", cols) + "+"
	fmt.Printf("t=%-10s %s\n", r.Elapsed.Round(time.Millisecond), border)
	for _, line := range r.Lines {
		fmt.Printf("%-12s |%-*s|\n", "", cols, line)
	}
	fmt.Printf("%-12s %s\n", "", border)
}
