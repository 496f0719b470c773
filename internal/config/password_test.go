package config

import (
	"testing"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{"default cost", "", "", 12, false},
		{"valid cost", "10", "", 10, false},
		{"cost too low", "9", "", 0, true},
		{"cost too high", "15", "", 0, true},
		{"non-numeric cost", "high", "", 0, true},
		{"pepper passthrough", "", "secret-pepper", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got config %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.BcryptCost != tt.wantCost {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tt.wantCost)
			}
			if cfg.Pepper != tt.pepper {
				t.Errorf("Pepper = %q, want %q", cfg.Pepper, tt.pepper)
			}
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !cfg.VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if cfg.VerifyPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	withPepper := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-a"}
	otherPepper := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-b"}

	hash, err := withPepper.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !withPepper.VerifyPassword("password123", hash) {
		t.Error("matching pepper rejected")
	}
	if otherPepper.VerifyPassword("password123", hash) {
		t.Error("different pepper accepted")
	}
}

func TestPasswordConfig_HashUniqueness(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cfg.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("bcrypt should salt each hash; identical hashes returned")
	}
}
