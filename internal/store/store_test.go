package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open("mongodb", ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			"bare dsn gains both params",
			"user:pass@tcp(localhost:3306)/fanfei",
			"user:pass@tcp(localhost:3306)/fanfei?clientFoundRows=true&parseTime=true",
		},
		{
			"existing params are extended",
			"user:pass@tcp(localhost:3306)/fanfei?parseTime=true",
			"user:pass@tcp(localhost:3306)/fanfei?parseTime=true&clientFoundRows=true",
		},
		{
			"operator settings are left alone",
			"user:pass@tcp(localhost:3306)/fanfei?parseTime=false&clientFoundRows=false",
			"user:pass@tcp(localhost:3306)/fanfei?parseTime=false&clientFoundRows=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mysqlDSN(tt.dsn); got != tt.want {
				t.Errorf("mysqlDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestCreateFirstAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &model.Admin{Username: "boss", PasswordHash: "x", Role: model.RoleSuperAdmin}
	if err := s.CreateFirstAdmin(ctx, first); err != nil {
		t.Fatalf("CreateFirstAdmin: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected ID to be populated")
	}

	// Any further bootstrap insert must fail, username novelty is irrelevant.
	second := &model.Admin{Username: "other", PasswordHash: "x", Role: model.RoleSuperAdmin}
	if err := s.CreateFirstAdmin(ctx, second); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	count, err := s.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

// Exactly one bootstrap insert may commit even when attempts run
// concurrently with distinct usernames, so no unique constraint can bail
// us out. Each dialect backs this differently: SQLite serializes on its
// single write connection (exercised here), MySQL gap-locks the scanned
// range, and PostgreSQL holds pg_advisory_xact_lock around the insert
// because READ COMMITTED lets both NOT EXISTS scans see an empty table.
func TestCreateFirstAdminConcurrentDistinctUsernames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const attempts = 8
	errs := make(chan error, attempts)
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			admin := &model.Admin{
				Username:     fmt.Sprintf("founder-%d", i),
				PasswordHash: "x",
				Role:         model.RoleSuperAdmin,
			}
			errs <- s.CreateFirstAdmin(ctx, admin)
		}(i)
	}
	start.Done()
	done.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("got %d successful bootstrap inserts, want exactly 1", ok)
	}
	if conflicts != attempts-1 {
		t.Errorf("got %d conflicts, want %d", conflicts, attempts-1)
	}

	count, err := s.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &model.Admin{Username: "editor", PasswordHash: "x", Role: model.RoleAdmin}
	if err := s.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	dup := &model.Admin{Username: "editor", PasswordHash: "y", Role: model.RoleAdmin}
	if err := s.CreateAdmin(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestGetAdminByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &model.Admin{Username: "editor", PasswordHash: "hash", Role: model.RoleAdmin}
	if err := s.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	got, err := s.GetAdminByUsername(ctx, "editor")
	if err != nil {
		t.Fatalf("GetAdminByUsername: %v", err)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("role = %v, want %v", got.Role, model.RoleAdmin)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("password_hash = %q, want %q", got.PasswordHash, "hash")
	}

	// Usernames are case-sensitive exact matches.
	if _, err := s.GetAdminByUsername(ctx, "Editor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestListAdminsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		a := &model.Admin{Username: name, PasswordHash: "x", Role: model.RoleAdmin}
		if err := s.CreateAdmin(ctx, a); err != nil {
			t.Fatalf("CreateAdmin(%s): %v", name, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	admins, err := s.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 3 {
		t.Fatalf("len = %d, want 3", len(admins))
	}
	if admins[0].Username != "three" || admins[2].Username != "one" {
		t.Errorf("unexpected order: %s, %s, %s",
			admins[0].Username, admins[1].Username, admins[2].Username)
	}
}

func TestSolutionCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sol := &model.Solution{Title: "Inspection", Description: "Power line inspection", Icon: "zap"}
	if err := s.CreateSolution(ctx, sol); err != nil {
		t.Fatalf("CreateSolution: %v", err)
	}

	sol.Description = "Automated power line inspection"
	if err := s.UpdateSolution(ctx, sol); err != nil {
		t.Fatalf("UpdateSolution: %v", err)
	}

	items, err := s.ListSolutions(ctx)
	if err != nil {
		t.Fatalf("ListSolutions: %v", err)
	}
	if len(items) != 1 || items[0].Description != "Automated power line inspection" {
		t.Errorf("unexpected list result: %+v", items)
	}

	if err := s.DeleteSolution(ctx, sol.ID); err != nil {
		t.Fatalf("DeleteSolution: %v", err)
	}
	if err := s.DeleteSolution(ctx, sol.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAssociationCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &model.Association{Name: "Low-Altitude Alliance", Type: "alliance", Logo: "logo.png"}
	if err := s.CreateAssociation(ctx, a); err != nil {
		t.Fatalf("CreateAssociation: %v", err)
	}

	got, err := s.GetAssociation(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAssociation: %v", err)
	}
	if got.Name != a.Name {
		t.Errorf("name = %q, want %q", got.Name, a.Name)
	}

	if _, err := s.GetAssociation(ctx, a.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	a.Website = "https://example.org"
	if err := s.UpdateAssociation(ctx, a); err != nil {
		t.Fatalf("UpdateAssociation: %v", err)
	}

	if err := s.DeleteAssociation(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAssociation: %v", err)
	}
}

func TestExhibitionApplications(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	apps := []model.ExhibitionApplication{
		{Exhibition: "Expo 2026", Company: "Aero One", ContactName: "Li"},
		{Exhibition: "Expo 2026", Company: "Skyline", ContactName: "Zhang"},
	}
	for i := range apps {
		if err := s.CreateExhibitionApplication(ctx, &apps[i]); err != nil {
			t.Fatalf("CreateExhibitionApplication: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, err := s.ListExhibitionApplications(ctx)
	if err != nil {
		t.Fatalf("ListExhibitionApplications: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Company != "Skyline" {
		t.Errorf("expected newest first, got %q", got[0].Company)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"UNIQUE constraint failed: admin_users.username", true},
		{"ERROR: duplicate key value violates unique constraint \"admin_users_username_key\"", true},
		{"Error 1062 (23000): Duplicate entry 'admin' for key 'username'", true},
		{"no such table: admin_users", false},
		{"", false},
	}
	for _, tt := range tests {
		var err error
		if tt.msg != "" {
			err = errors.New(tt.msg)
		}
		if got := isUniqueViolation(err); got != tt.want {
			t.Errorf("isUniqueViolation(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
