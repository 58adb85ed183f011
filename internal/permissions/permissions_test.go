package permissions

import (
	"context"
	"errors"
	"testing"
)

func TestSetAllowed(t *testing.T) {
	set := NewSet(" Access  Content ", "")
	if !set.Allowed("access content") {
		t.Fatal("expected normalized permission to match")
	}
	if set.Allowed("administer nodes") {
		t.Fatal("expected missing permission to be denied")
	}
	if !NewSet("*").Allowed("anything at all") {
		t.Fatal("expected wildcard to allow")
	}
	if (Set{}).Allowed("access content") {
		t.Fatal("expected empty set to deny")
	}
}

func TestRequireWithoutCheckerAllows(t *testing.T) {
	if err := Require(context.Background(), AdministerCarousel); err != nil {
		t.Fatalf("expected nil error without checker, got %v", err)
	}
}

func TestRequireDenied(t *testing.T) {
	ctx := WithPermissions(context.Background(), AccessContent)
	err := Require(ctx, AdministerCarousel)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	var permErr Error
	if !errors.As(err, &permErr) || permErr.Permission != AdministerCarousel {
		t.Fatalf("expected permission error for %q, got %v", AdministerCarousel, err)
	}
}

func TestWithAccountInstallsChecker(t *testing.T) {
	account := StaticAccount{AccountID: "7", Permissions: NewSet(AdministerCarousel)}
	ctx := WithAccount(context.Background(), account)

	if got := AccountFromContext(ctx); got == nil || got.ID() != "7" {
		t.Fatalf("expected account 7 on context, got %v", got)
	}
	if !Allowed(ctx, AdministerCarousel) {
		t.Fatal("expected account permission to be honoured")
	}
	if Allowed(ctx, AdministerNodes) {
		t.Fatal("expected missing account permission to be denied")
	}
}

func TestWithAccountKeepsExistingChecker(t *testing.T) {
	ctx := WithChecker(context.Background(), CheckerFunc(func(string) bool { return false }))
	ctx = WithAccount(ctx, StaticAccount{Permissions: NewSet("*")})
	if Allowed(ctx, AccessContent) {
		t.Fatal("expected explicit checker to win over account")
	}
}

func TestOperationAccess(t *testing.T) {
	cases := []struct {
		name    string
		account StaticAccount
		entity  Entity
		want    bool
	}{
		{"administer nodes", StaticAccount{AccountID: "1", Permissions: NewSet(AdministerNodes)}, Entity{Type: "node"}, true},
		{"edit field", StaticAccount{AccountID: "1", Permissions: NewSet("edit field_tabs")}, Entity{Type: "node"}, true},
		{"no grants", StaticAccount{AccountID: "1", Permissions: NewSet(AccessContent)}, Entity{Type: "node", OwnerID: "1"}, false},
		{"other field", StaticAccount{AccountID: "1", Permissions: NewSet("edit field_other")}, Entity{Type: "node"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OperationAccess(tc.account, tc.entity, "field_tabs"); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
	if OperationAccess(nil, Entity{}, "field_tabs") {
		t.Fatal("expected nil account to be denied")
	}
}

func TestOperationAccessOwnerFallback(t *testing.T) {
	calls := 0
	account := &ownerAccount{id: "9", grant: func(permission string) bool {
		calls++
		// the first pass over the grant list refuses everything
		return calls > len(OperationPermissions("field_tabs")) && permission == "edit own field_tabs"
	}}

	if !OperationAccess(account, Entity{Type: "node", OwnerID: "9"}, "field_tabs") {
		t.Fatal("expected owner with edit own to be allowed")
	}

	calls = 0
	if OperationAccess(account, Entity{Type: "user", OwnerID: "9"}, "field_tabs") {
		t.Fatal("expected user entities to skip the owner fallback")
	}

	calls = 0
	if OperationAccess(account, Entity{Type: "node", OwnerID: "3"}, "field_tabs") {
		t.Fatal("expected non-owner to be denied")
	}
}

type ownerAccount struct {
	id    string
	grant func(string) bool
}

func (a *ownerAccount) ID() string                           { return a.id }
func (a *ownerAccount) HasPermission(permission string) bool { return a.grant(permission) }

func TestAddAccess(t *testing.T) {
	cases := []struct {
		name  string
		perms []string
		req   AddRequest
		want  bool
	}{
		{"type permissions granted", []string{"create paragraph content text"}, AddRequest{Mode: AccessModeTypePermissions, Bundle: "text"}, true},
		{"type permissions denied", []string{AccessContent}, AddRequest{Mode: AccessModeTypePermissions, Bundle: "text"}, false},
		{"private fields bypass", []string{AccessPrivateFields}, AddRequest{Mode: AccessModeFieldPermissions, FieldPermissionType: "private"}, true},
		{"custom field granted", []string{"create field_tabs"}, AddRequest{Mode: AccessModeFieldPermissions, FieldName: "field_tabs", FieldPermissionType: "custom"}, true},
		{"custom field denied", nil, AddRequest{Mode: AccessModeFieldPermissions, FieldName: "field_tabs", FieldPermissionType: "custom"}, false},
		{"private field denied", []string{"create field_tabs"}, AddRequest{Mode: AccessModeFieldPermissions, FieldName: "field_tabs", FieldPermissionType: "private"}, false},
		{"public field", nil, AddRequest{Mode: AccessModeFieldPermissions}, true},
		{"default access content", []string{AccessContent}, AddRequest{}, true},
		{"default denied", nil, AddRequest{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			account := StaticAccount{Permissions: NewSet(tc.perms...)}
			if got := AddAccess(account, tc.req); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseAccessMode(t *testing.T) {
	if ParseAccessMode(" Type_Permissions ") != AccessModeTypePermissions {
		t.Fatal("expected type permissions mode")
	}
	if ParseAccessMode("unknown") != AccessModeContent {
		t.Fatal("expected default mode")
	}
}
