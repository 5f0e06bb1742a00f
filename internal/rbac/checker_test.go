package rbac

import (
	"context"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	for _, p := range []string{"quiz:create", "quiz:edit-own", "response:submit", "user:change_password"} {
		if !c.Has("user", p) {
			t.Fatalf("user should have %s", p)
		}
	}
	for _, p := range []string{"users:list", "users:delete", "audit:search", "content:delete"} {
		if c.Has("user", p) {
			t.Fatalf("user must not have %s", p)
		}
	}

	// Admin wildcard covers everything, including unknown perms.
	for _, p := range []string{"quiz:create", "users:delete", "made:up"} {
		if !c.Has("admin", p) {
			t.Fatalf("admin should have %s", p)
		}
	}

	if c.Has("", "quiz:view") || c.Has("ghost", "quiz:view") {
		t.Fatal("unknown roles have no permissions")
	}
}

func TestAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("user", "users:list", "response:view-own") {
		t.Fatal("user has response:view-own")
	}
	if c.Any("user", "users:list", "users:delete") {
		t.Fatal("user has neither admin perm")
	}
}

func TestPrefixPattern(t *testing.T) {
	c := NewChecker(map[string][]string{"grader": {"response:*"}})
	if !c.Has("grader", "response:view-all") || !c.Has("grader", "response:export-all") {
		t.Fatal("prefix pattern should match response:*")
	}
	if c.Has("grader", "quiz:create") {
		t.Fatal("prefix pattern must not cross concerns")
	}
}

func TestRoleContext(t *testing.T) {
	ctx := context.Background()
	if got := RoleFromContext(ctx); got != "" {
		t.Fatalf("empty context role: %q", got)
	}
	ctx = WithRole(ctx, "admin")
	if got := RoleFromContext(ctx); got != "admin" {
		t.Fatalf("role round trip: %q", got)
	}
}
