package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
	calls     []profileCall
}

type profileCall struct {
	userID      string
	username    string
	displayName string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.calls = append(f.calls, profileCall{userID: userID, username: username, displayName: displayName})
	return f.updateErr
}

func TestOnboardNewUser_SetsFriendlyName(t *testing.T) {
	accounts := &fakeAccountPort{}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.DisplayName == "" {
		t.Fatal("Expected a display name")
	}
	if len(accounts.calls) != 1 {
		t.Fatalf("Expected 1 profile update, got %d", len(accounts.calls))
	}
	call := accounts.calls[0]
	if call.userID != "user-1" || call.displayName != result.DisplayName || call.username != "" {
		t.Fatalf("Unexpected profile update %+v", call)
	}
}

func TestOnboardNewUser_IsDeterministicForSeed(t *testing.T) {
	a, _ := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7))).OnboardNewUser(context.Background(), "u")
	b, _ := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7))).OnboardNewUser(context.Background(), "u")
	if a.DisplayName != b.DisplayName {
		t.Fatalf("Expected identical names for identical seeds, got %q and %q", a.DisplayName, b.DisplayName)
	}
}

func TestOnboardNewUser_AccountFailureReturnsError(t *testing.T) {
	service := NewService(&fakeAccountPort{updateErr: errors.New("update failed")}, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when the profile update fails")
	}
}

func TestOnboardNewUser_NotConfigured(t *testing.T) {
	service := NewService(nil, nil)
	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error without an account port")
	}
}

func TestRename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "Ada", "Ada", nil},
		{"Trimmed", "  Ada Lovelace \t", "Ada Lovelace", nil},
		{"Blank", "   ", "", ErrNoName},
		{"Empty", "", "", ErrNoName},
		{"Truncated", strings.Repeat("é", MaxNameLength+5), strings.Repeat("é", MaxNameLength), nil},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			accounts := &fakeAccountPort{}
			service := NewService(accounts, rand.New(rand.NewSource(1)))

			got, err := service.Rename(context.Background(), "user-1", test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Rename error = %v, want %v", err, test.wantErr)
			}
			if got != test.want {
				t.Fatalf("Rename = %q, want %q", got, test.want)
			}
			if test.wantErr != nil && len(accounts.calls) != 0 {
				t.Fatalf("Expected no profile update on error, got %d", len(accounts.calls))
			}
			if test.wantErr == nil && accounts.calls[0].displayName != test.want {
				t.Fatalf("Stored %q, want %q", accounts.calls[0].displayName, test.want)
			}
		})
	}
}
