package permissions

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

const (
	AccessContent          = "access content"
	BypassNodeAccess       = "bypass node access"
	AdministerNodes        = "administer nodes"
	AdministerParagraphs   = "administer paragraphs_item fields"
	AccessPrivateFields    = "access private fields"
	AdministerCarousel     = "administer bootstrap simple carousel"
	createParagraphPrefix  = "create paragraph content "
	createFieldPrefix      = "create "
	editFieldPrefix        = "edit "
	editOwnFieldPrefix     = "edit own "
	userEntityType         = "user"
	wildcardPermission     = "*"
	contextCheckerKey      = contextKey("bootstrap.permissions.checker")
	contextAccountKey      = contextKey("bootstrap.permissions.account")
	fieldPermissionCustom  = "custom"
	fieldPermissionPrivate = "private"
)

var ErrPermissionDenied = errors.New("permissions: denied")

type Error struct {
	Permission string
}

func (e Error) Error() string {
	if strings.TrimSpace(e.Permission) == "" {
		return "permission denied"
	}
	return "permission denied: " + e.Permission
}

func (e Error) Unwrap() error {
	return ErrPermissionDenied
}

type Checker interface {
	Allowed(permission string) bool
}

type CheckerFunc func(permission string) bool

func (fn CheckerFunc) Allowed(permission string) bool {
	return fn(permission)
}

// Set is a static list of granted permissions. "*" grants everything.
type Set map[string]struct{}

func NewSet(perms ...string) Set {
	set := Set{}
	for _, perm := range perms {
		if normalized := normalizePermission(perm); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}

func (s Set) Allowed(permission string) bool {
	normalized := normalizePermission(permission)
	if len(s) == 0 || normalized == "" {
		return false
	}
	if _, ok := s[normalized]; ok {
		return true
	}
	_, ok := s[wildcardPermission]
	return ok
}

// HasPermission lets a Set stand in for an account in tests and fixtures.
func (s Set) HasPermission(permission string) bool {
	return s.Allowed(permission)
}

type Permissioner interface {
	HasPermission(permission string) bool
}

type contextKey string

// WithChecker stores a permission checker on the context.
func WithChecker(ctx context.Context, checker Checker) context.Context {
	if ctx == nil || checker == nil {
		return ctx
	}
	return context.WithValue(ctx, contextCheckerKey, checker)
}

// WithPermissions stores a static permission set on the context.
func WithPermissions(ctx context.Context, perms ...string) context.Context {
	if ctx == nil || len(perms) == 0 {
		return ctx
	}
	return WithChecker(ctx, NewSet(perms...))
}

// WithAccount stores the viewing account on the context. The account also
// becomes the permission checker unless one is already present.
func WithAccount(ctx context.Context, account interfaces.Account) context.Context {
	if ctx == nil || account == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, contextAccountKey, account)
	if ctx.Value(contextCheckerKey) == nil {
		ctx = context.WithValue(ctx, contextCheckerKey, CheckerFunc(account.HasPermission))
	}
	return ctx
}

// AccountFromContext returns the account stored by WithAccount.
func AccountFromContext(ctx context.Context) interfaces.Account {
	if ctx == nil {
		return nil
	}
	account, _ := ctx.Value(contextAccountKey).(interfaces.Account)
	return account
}

// CheckerFromContext returns the configured permission checker if available.
func CheckerFromContext(ctx context.Context) Checker {
	if ctx == nil {
		return nil
	}
	switch typed := ctx.Value(contextCheckerKey).(type) {
	case Checker:
		return typed
	case Permissioner:
		return CheckerFunc(typed.HasPermission)
	default:
		return nil
	}
}

// Allowed reports whether the permission is granted. Contexts without a
// checker are treated as trusted internal callers.
func Allowed(ctx context.Context, permission string) bool {
	checker := CheckerFromContext(ctx)
	normalized := normalizePermission(permission)
	if checker == nil || normalized == "" {
		return true
	}
	return checker.Allowed(normalized)
}

// Require enforces a permission requirement when a checker is available on the context.
func Require(ctx context.Context, permission string) error {
	if Allowed(ctx, permission) {
		return nil
	}
	return Error{Permission: normalizePermission(permission)}
}

func normalizePermission(permission string) string {
	return strings.ToLower(strings.Join(strings.Fields(permission), " "))
}
