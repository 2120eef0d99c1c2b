package onboarding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"catan/internal/ports"
)

// MaxNameLength bounds display names chosen by players.
const MaxNameLength = 24

// ErrNoName rejects an empty or blank display name.
var ErrNoName = errors.New("No name specified")

// Result captures the outcome of onboarding.
type Result struct {
	DisplayName string
}

// Service handles post-auth onboarding and profile naming.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service.
// accounts must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		rng:      rng,
	}
}

// OnboardNewUser gives a newly created account a friendly display name so
// lobby notices never show a raw device id.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	name := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, "", name); err != nil {
		return Result{}, fmt.Errorf("failed to set display name: %w", err)
	}
	return Result{DisplayName: name}, nil
}

// Rename sets the display name shown to other players. The name is
// trimmed and truncated to MaxNameLength runes.
func (s *Service) Rename(ctx context.Context, userID, name string) (string, error) {
	if s.accounts == nil {
		return "", fmt.Errorf("onboarding service not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNoName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	if err := s.accounts.UpdateProfile(ctx, userID, "", name); err != nil {
		return "", fmt.Errorf("failed to set display name: %w", err)
	}
	return name, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Settler", "Trader", "Builder", "Shepherd", "Miner", "Farmer", "Sailor", "Knight", "Mason", "Woodcutter"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
