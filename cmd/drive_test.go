package cmd

import (
	"testing"

	"github.com/upv-tools/upv-cli/config"
	"github.com/upv-tools/upv-cli/drive"
)

func TestResolveAccount(t *testing.T) {
	cfg = &config.Config{DefaultUsername: "jperez", DefaultDomain: "ALUMNO"}

	tests := []struct {
		name       string
		args       []string
		wantUser   string
		wantDomain drive.Domain
		wantErr    bool
	}{
		{"all from config", nil, "jperez", drive.DomainAlumno, false},
		{"username overrides", []string{"mgarcia"}, "mgarcia", drive.DomainAlumno, false},
		{"both override", []string{"mgarcia", "upvnet"}, "mgarcia", drive.DomainUPVNet, false},
		{"bad domain", []string{"mgarcia", "STAFF"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, domain, err := resolveAccount(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveAccount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if user != tt.wantUser || domain != tt.wantDomain {
				t.Errorf("resolveAccount() = %q, %q; want %q, %q", user, domain, tt.wantUser, tt.wantDomain)
			}
		})
	}
}

func TestResolveAccount_NoUsernameAnywhere(t *testing.T) {
	cfg = &config.Config{DefaultDomain: "ALUMNO"}

	if _, _, err := resolveAccount(nil); err == nil {
		t.Error("expected error when no username is available")
	}
}

func TestResolveLetter(t *testing.T) {
	cfg = &config.Config{DefaultDrive: "W"}

	driveLetterFlag = ""
	letter, err := resolveLetter()
	if err != nil {
		t.Fatalf("resolveLetter() error = %v", err)
	}
	if letter != 'W' {
		t.Errorf("letter = %c, want W", letter)
	}

	driveLetterFlag = "x:"
	t.Cleanup(func() { driveLetterFlag = "" })
	letter, err = resolveLetter()
	if err != nil {
		t.Fatalf("resolveLetter() error = %v", err)
	}
	if letter != 'X' {
		t.Errorf("letter = %c, want X", letter)
	}
}
