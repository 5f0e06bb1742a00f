package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)
	tok, err := svc.IssueJWT("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "user-1" || claims.Role != "user" {
		t.Fatalf("claims round trip: %+v", claims)
	}
	if claims.Issuer != "formhive" {
		t.Fatalf("issuer: %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAuthService("secret-a", time.Hour).IssueJWT("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewAuthService("secret-b", time.Hour).Parse(tok); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewAuthService("secret", time.Nanosecond)
	tok, err := svc.IssueJWT("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Parse(tok); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)
	if _, err := svc.Parse("not.a.token"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}
