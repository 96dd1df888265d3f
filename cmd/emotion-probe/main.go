package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/okian/emodetect/internal/probe"
)

func main() {
	var (
		baseURL = flag.String("url", probe.DefaultBaseURL, "Base URL of the service")
		file    = flag.String("file", "", "File with one statement per line")
		repeat  = flag.Int("repeat", probe.DefaultRepeat, "Times each statement is sent")
		workers = flag.Int("workers", runtime.NumCPU(), "Number of concurrent requests")
		timeout = flag.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every verified response")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	_ = godotenv.Load()
	if v := os.Getenv("EMODETECT_PROBE_URL"); v != "" && !isFlagSet("url") {
		*baseURL = v
	}

	if err := probe.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), probe.DefaultRunTime)
	defer cancel()

	_, err := probe.Run(ctx, &probe.Config{
		BaseURL: *baseURL,
		File:    *file,
		Repeat:  *repeat,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	})
	if err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
