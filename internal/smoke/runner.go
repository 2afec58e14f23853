package smoke

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/skillcard/internal/adapters/backend"
	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/pkg/logger"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

// ErrSmokeFailed is returned when any user failed a step.
var ErrSmokeFailed = errors.New("smoke run failed")

// Run registers cfg.Users synthetic users, logs each in and verifies each
// profile. It returns the stats even when the run fails.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting skillcard smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("users", cfg.Users),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client, err := backend.New(cfg.BaseURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithLogger(log),
		backend.WithUserAgent("skillcard-smoke/1.0"),
	)
	if err != nil {
		return stats, fmt.Errorf("create client: %w", err)
	}

	users := generateUsers(cfg.Users, cfg.SkillsPerUser, cfg.AvatarURL)
	stats.UsersGenerated = len(users)

	var registered, registerFailed, loggedIn, loginFailed, verified, verifyFailed atomic.Int64

	workers := max(cfg.Workers, 1)
	userCh := make(chan model.RegistrationRequest, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range userCh {
				if ctx.Err() != nil {
					continue
				}
				if err := client.Register(ctx, u); err != nil {
					registerFailed.Add(1)
					log.Warn(ctx, "register failed", logger.String("username", u.Username), logger.Error(err))
					continue
				}
				registered.Add(1)

				creds := model.LoginCredentials{Username: u.Username, Password: u.Password}
				if _, err := client.Login(ctx, creds); err != nil {
					loginFailed.Add(1)
					log.Warn(ctx, "login failed", logger.String("username", u.Username), logger.Error(err))
					continue
				}
				loggedIn.Add(1)

				profile, err := client.GetProfile(ctx, u.Username)
				if err == nil {
					err = verifyProfile(u, profile)
				}
				if err != nil {
					verifyFailed.Add(1)
					log.Warn(ctx, "profile check failed", logger.String("username", u.Username), logger.Error(err))
					continue
				}
				verified.Add(1)

				if cfg.Verbose {
					log.Info(ctx, "user verified",
						logger.String("username", u.Username),
						logger.Int("skills", len(u.Skills)),
					)
				}
			}
		}()
	}

	for _, u := range users {
		select {
		case userCh <- u:
		case <-ctx.Done():
		}
	}
	close(userCh)
	wg.Wait()

	stats.Registered = int(registered.Load())
	stats.RegisterFailed = int(registerFailed.Load())
	stats.LoggedIn = int(loggedIn.Load())
	stats.LoginFailed = int(loginFailed.Load())
	stats.ProfilesVerified = int(verified.Load())
	stats.ProfilesFailed = int(verifyFailed.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSmokeFailed, err)
	}
	if stats.Failed() || stats.ProfilesVerified != stats.UsersGenerated {
		return stats, fmt.Errorf("%w: %d/%d users verified", ErrSmokeFailed, stats.ProfilesVerified, stats.UsersGenerated)
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, usersPerSecond float64
	if stats.UsersGenerated > 0 {
		successRate = float64(stats.ProfilesVerified) / float64(stats.UsersGenerated) * percentageMultiplier
	}
	if stats.Duration > 0 {
		usersPerSecond = float64(stats.UsersGenerated) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("usersGenerated", stats.UsersGenerated),
		logger.Int("registered", stats.Registered),
		logger.Int("registerFailed", stats.RegisterFailed),
		logger.Int("loggedIn", stats.LoggedIn),
		logger.Int("loginFailed", stats.LoginFailed),
		logger.Int("profilesVerified", stats.ProfilesVerified),
		logger.Int("profilesFailed", stats.ProfilesFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("usersPerSecond", usersPerSecond),
	)
}
