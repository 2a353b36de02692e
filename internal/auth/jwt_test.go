package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken("maria@pdv", RoleAdmin, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := VerifyToken(token, "test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "maria@pdv" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("maria@pdv", RoleAdmin, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := VerifyToken(token, "outro-secret"); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := IssueToken("maria@pdv", RoleCashier, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := VerifyToken(token, "test-secret"); err == nil {
		t.Fatal("expected an expired token to fail")
	}
}

func TestParseBearerToken(t *testing.T) {
	cases := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"abc.def.ghi", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseBearerToken(tc.header); got != tc.expected {
			t.Fatalf("ParseBearerToken(%q): expected %q, got %q", tc.header, tc.expected, got)
		}
	}
}
