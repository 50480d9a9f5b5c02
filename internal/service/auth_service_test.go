package service

import (
	"testing"
	"time"

	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

func authTestConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.PasswordHash = string(hash)
	cfg.JWT.Secret = "segredo-de-teste"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func TestIssueAdminToken(t *testing.T) {
	s := NewAuthService(authTestConfig(t, "senha-forte"))

	token, err := s.IssueAdminToken("admin", "senha-forte")
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}

	claims, err := util.ParseJWT(token, "segredo-de-teste")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.Subject != "admin" {
		t.Errorf("Subject = %q, want admin", claims.Subject)
	}
}

func TestIssueAdminTokenDefaultsUsername(t *testing.T) {
	s := NewAuthService(authTestConfig(t, "senha-forte"))

	if _, err := s.IssueAdminToken("", "senha-forte"); err != nil {
		t.Errorf("empty username should fall back to the configured admin, got %v", err)
	}
}

func TestIssueAdminTokenRejectsWrongCredentials(t *testing.T) {
	s := NewAuthService(authTestConfig(t, "senha-forte"))

	if _, err := s.IssueAdminToken("admin", "senha-errada"); err != util.ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.IssueAdminToken("outro", "senha-forte"); err != util.ErrInvalidCredentials {
		t.Errorf("wrong username: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestIssueAdminTokenRejectsMissingHash(t *testing.T) {
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	s := NewAuthService(cfg)

	if _, err := s.IssueAdminToken("admin", "qualquer"); err != util.ErrInvalidCredentials {
		t.Errorf("missing hash: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct{ in, want string }{
		{"vídeo", "vídeo"},
		{"texto", "texto"},
		{"desconhecido", "texto"},
		{"", "texto"},
	}
	for _, tt := range tests {
		if got := normalizeFormat(tt.in); got != tt.want {
			t.Errorf("normalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
