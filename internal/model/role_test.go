package model

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"super_admin", RoleSuperAdmin, false},
		{"", 0, true},
		{"Admin", 0, true},
		{"root", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoleOrdering(t *testing.T) {
	if !RoleSuperAdmin.Meets(RoleAdmin) {
		t.Error("super_admin should meet admin requirement")
	}
	if !RoleSuperAdmin.Meets(RoleSuperAdmin) {
		t.Error("super_admin should meet super_admin requirement")
	}
	if !RoleAdmin.Meets(RoleAdmin) {
		t.Error("admin should meet admin requirement")
	}
	if RoleAdmin.Meets(RoleSuperAdmin) {
		t.Error("admin must not meet super_admin requirement")
	}
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"super_admin"` {
		t.Errorf("Marshal = %s, want %q", b, `"super_admin"`)
	}

	var r Role
	if err := json.Unmarshal([]byte(`"admin"`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r != RoleAdmin {
		t.Errorf("Unmarshal = %v, want %v", r, RoleAdmin)
	}

	if err := json.Unmarshal([]byte(`"owner"`), &r); err == nil {
		t.Error("expected error for unknown role name")
	}

	var invalid Role
	if _, err := json.Marshal(invalid); err == nil {
		t.Error("expected error marshalling zero role")
	}
}

func TestRoleScanValue(t *testing.T) {
	v, err := RoleAdmin.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "admin" {
		t.Errorf("Value = %v, want %q", v, "admin")
	}

	var r Role
	if err := r.Scan("super_admin"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if r != RoleSuperAdmin {
		t.Errorf("Scan = %v, want %v", r, RoleSuperAdmin)
	}

	if err := r.Scan([]byte("admin")); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if r != RoleAdmin {
		t.Errorf("Scan bytes = %v, want %v", r, RoleAdmin)
	}

	if err := r.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
