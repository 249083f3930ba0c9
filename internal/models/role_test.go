package models

import "testing"

func TestParseRole(t *testing.T) {
	t.Parallel()

	if r, err := ParseRole("USER"); err != nil || r != RoleUser {
		t.Fatalf("ParseRole(USER): got (%v, %v)", r, err)
	}
	if r, err := ParseRole("ADMIN"); err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole(ADMIN): got (%v, %v)", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatal("ParseRole(root): expected error")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatal("ParseRole(empty): expected error")
	}
}

func TestRoleSatisfies(t *testing.T) {
	t.Parallel()

	if !RoleAdmin.Satisfies(RoleAdmin) {
		t.Fatal("ADMIN must satisfy ADMIN")
	}
	if !RoleAdmin.Satisfies(RoleUser) {
		t.Fatal("ADMIN must satisfy USER")
	}
	if !RoleUser.Satisfies(RoleUser) {
		t.Fatal("USER must satisfy USER")
	}
	if RoleUser.Satisfies(RoleAdmin) {
		t.Fatal("USER must not satisfy ADMIN")
	}
}
