// Command sr5900p talks to an SR5900P-class network label tape printer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hikalium/sr5900p/internal/label"
	"github.com/hikalium/sr5900p/internal/printer"
)

func main() {
	logLevel := parseLogLevel(envStr("SR5900P_LOG_LEVEL", "info"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "status":
		err = runStatus(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  sr5900p status  -printer <ip>
  sr5900p print   -printer <ip> -tcp-data <file>
  sr5900p analyze -tcp-data <file>`)
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	host := fs.String("printer", "", "IPv4 address of the printer")
	fs.Parse(args)
	if *host == "" {
		return fmt.Errorf("missing -printer")
	}

	status, err := printer.New(*host).Status()
	if err != nil {
		return err
	}
	fmt.Println(status)
	return nil
}

func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	host := fs.String("printer", "", "IPv4 address of the printer")
	path := fs.String("tcp-data", "", "raw dump of a TCP print stream")
	fs.Parse(args)
	if *host == "" || *path == "" {
		return fmt.Errorf("missing -printer or -tcp-data")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read tcp data: %w", err)
	}
	return printer.New(*host).PrintEncoded(data)
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	path := fs.String("tcp-data", "", "raw dump of a TCP print stream")
	fs.Parse(args)
	if *path == "" {
		return fmt.Errorf("missing -tcp-data")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read tcp data: %w", err)
	}
	res, err := label.Analyze(data)
	if err != nil {
		return err
	}
	fmt.Printf("commands: %d\n", res.NumCommands)
	fmt.Printf("data rows: %d\n", res.NumDataRows)
	if res.HasTapeLen {
		fmt.Printf("tape length: %d px\n", res.TapeLenPx)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
