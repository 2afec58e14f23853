package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/skillcard/internal/smoke"
)

// Default configuration constants.
const (
	defaultUsers     = 50
	defaultSkills    = 4
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 10 * time.Second
	defaultRunLimit  = 10 * time.Minute
	defaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed={username}"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one smoke run and returns the process exit code. Deferred
// cleanups, including closing the log file, finish before main exits.
func run(args []string) int {
	fs := flag.NewFlagSet("smoke", flag.ContinueOnError)
	var (
		baseURL = fs.String("url", "http://localhost:8001", "Base URL of the profile API")
		users   = fs.Int("users", defaultUsers, "Number of users to register")
		skills  = fs.Int("skills", defaultSkills, "Skills per user")
		workers = fs.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout = fs.Duration("timeout", defaultTimeout, "Per-request timeout")
		logFile = fs.String("log", "", "Also write logs to this file")
		verbose = fs.Bool("verbose", false, "Log every verified user")
		help    = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		smoke.ShowHelp()
		return 0
	}

	closer, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunLimit)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:       *baseURL,
		Users:         *users,
		SkillsPerUser: *skills,
		Workers:       *workers,
		Timeout:       *timeout,
		AvatarURL:     defaultAvatarURL,
		Verbose:       *verbose,
	}

	if _, err := smoke.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
