package smoke

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/skillcard/internal/domain/model"
)

// smokePassword is shared by every synthetic user.
const smokePassword = "smoke-pass"

// levelSteps matches the form's 0.1 step on [0, 1].
const levelSteps = 10

var skillNames = []string{ //nolint:gochecknoglobals // static pool
	"Go", "SQL", "Kubernetes", "Terraform", "Rust", "TypeScript",
	"Observability", "Networking", "Security", "Testing",
}

var positions = []string{ //nolint:gochecknoglobals // static pool
	"Backend Engineer", "Frontend Engineer", "SRE", "Data Engineer", "Engineering Manager",
}

// generateUsers builds n registration requests with unique usernames.
func generateUsers(n, skillsPerUser int, avatarTemplate string) []model.RegistrationRequest {
	if skillsPerUser < 1 {
		skillsPerUser = 1
	}
	if skillsPerUser > len(skillNames) {
		skillsPerUser = len(skillNames)
	}

	users := make([]model.RegistrationRequest, n)
	for i := range users {
		username := "smoke-" + uuid.NewString()[:8]
		offset := randomInt(len(skillNames))

		skills := make([]model.Skill, skillsPerUser)
		for j := range skills {
			skills[j] = model.Skill{
				Name:  skillNames[(offset+j)%len(skillNames)],
				Level: float64(randomInt(levelSteps+1)) / levelSteps,
			}
		}

		users[i] = model.RegistrationRequest{
			Username:  username,
			Password:  smokePassword,
			Name:      "Smoke User " + username[len("smoke-"):],
			Position:  positions[randomInt(len(positions))],
			AvatarURL: strings.ReplaceAll(avatarTemplate, "{username}", username),
			Skills:    skills,
		}
	}
	return users
}

// randomInt returns a uniform int in [0, n).
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
