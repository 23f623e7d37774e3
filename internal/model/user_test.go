package model

import "testing"

func TestRoleAtLeastMatrix(t *testing.T) {
	roles := []string{RoleUser, RoleManager, RoleAdmin}

	// roles is ordered weakest first, so a role meets every minimum at or
	// below its own index.
	for i, role := range roles {
		for j, minimum := range roles {
			if got, want := RoleAtLeast(role, minimum), i >= j; got != want {
				t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", role, minimum, got, want)
			}
		}
	}

	for _, tc := range [][2]string{{"auditor", RoleUser}, {RoleAdmin, "auditor"}, {"", ""}} {
		if RoleAtLeast(tc[0], tc[1]) {
			t.Errorf("RoleAtLeast(%q, %q) = true for an unknown role", tc[0], tc[1])
		}
	}
}

func TestValidatePasswordLength(t *testing.T) {
	short := "abcdefg"
	if err := ValidatePassword(short); err == nil {
		t.Errorf("ValidatePassword(%q) accepted a %d-character password", short, len(short))
	}
	if err := ValidatePassword(short + "h"); err != nil {
		t.Errorf("ValidatePassword(%q) = %v, want nil", short+"h", err)
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("ValidatePassword accepted an empty password")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleUser} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("owner") {
		t.Error("ValidRole(\"owner\") = true, want false")
	}
}
