package core_test

import (
	"context"
	"testing"

	"retail-ledger/internal/core"
	"retail-ledger/internal/store/memory"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := core.NewUserService(memory.New())

	u, err := svc.Register(ctx, "  Manager@Example.com ", "Daniel Osei", "manager", "managerpass1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "manager@example.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}
	if u.PasswordHash == "managerpass1" {
		t.Error("password must be stored hashed")
	}

	login, role, err := svc.Authenticate(ctx, "MANAGER@example.com", "managerpass1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if login.FullName != "Daniel Osei" {
		t.Errorf("full name = %q, want Daniel Osei", login.FullName)
	}
	if role != core.RoleAdmin {
		t.Errorf("role = %s, want admin (manager designation)", role)
	}

	if _, _, err := svc.Authenticate(ctx, "manager@example.com", "wrongpass"); core.KindOf(err) != core.KindValidation {
		t.Errorf("bad password: kind = %s, want %s", core.KindOf(err), core.KindValidation)
	}
	if _, _, err := svc.Authenticate(ctx, "nobody@example.com", "managerpass1"); core.KindOf(err) != core.KindNotFound {
		t.Errorf("unknown user: kind = %s, want %s", core.KindOf(err), core.KindNotFound)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := core.NewUserService(memory.New())

	if _, err := svc.Register(ctx, "", "Name", "staff", "longenough"); err == nil {
		t.Error("missing email should fail")
	}
	if _, err := svc.Register(ctx, "a@b.com", "", "staff", "longenough"); err == nil {
		t.Error("missing full name should fail")
	}
	if _, err := svc.Register(ctx, "a@b.com", "Name", "staff", "short"); err == nil {
		t.Error("short password should fail")
	}
}
