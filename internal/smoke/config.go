package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL       string        // Base URL of the remote profile API
	Users         int           // Number of synthetic users to register
	SkillsPerUser int           // Skills attached to each user
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // Per-request timeout
	AvatarURL     string        // Avatar template; "{username}" is substituted
	Verbose       bool          // Log every user
}

// Stats holds run statistics.
type Stats struct {
	UsersGenerated   int
	Registered       int
	RegisterFailed   int
	LoggedIn         int
	LoginFailed      int
	ProfilesVerified int
	ProfilesFailed   int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// Failed reports whether any step failed for any user.
func (s *Stats) Failed() bool {
	return s.RegisterFailed > 0 || s.LoginFailed > 0 || s.ProfilesFailed > 0
}
