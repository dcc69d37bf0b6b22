package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"potlcd/host/monitor"
	"potlcd/host/serial"
)

var (
	device  = flag.String("device", "", "Serial device path (default: first USB CDC port)")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	tags    = flag.String("tags", "", "Comma separated tags to print, e.g. EVT,LCD (default: all)")
	list    = flag.Bool("list", false, "List serial ports and exit")
	quiet   = flag.Bool("quiet", false, "Only print the summary")
	verbose = flag.Bool("verbose", false, "Print malformed lines with their parse error")
)

func main() {
	flag.Parse()

	if *list {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	path := *device
	if path == "" {
		found, err := serial.FindConsole()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		path = found
	}

	cfg := serial.DefaultConfig(path)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0

	dev := monitor.NewDevice()
	fmt.Printf("Attaching to console on %s...\n", path)
	if err := dev.ConnectWithConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filter := monitor.ParseFilter(*tags)
	stats := monitor.NewStats()
	start := time.Now()

	err := dev.Stream(ctx, func(l monitor.Line, err error) {
		stats.Add(l, err)
		if err != nil {
			if *verbose {
				fmt.Fprintf(os.Stderr, "%v: %s\n", err, l.Raw)
			}
			return
		}
		if !*quiet && filter.Match(l) {
			fmt.Println(l.Raw)
		}
	})
	if err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	fmt.Printf("\n--- %s on %s ---\n", time.Since(start).Round(time.Second), path)
	stats.WriteSummary(os.Stdout)
}
