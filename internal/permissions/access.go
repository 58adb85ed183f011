package permissions

import (
	"strings"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// Entity identifies the host entity owning a paragraphs field.
type Entity struct {
	Type    string
	ID      string
	OwnerID string
}

// OperationPermissions lists the grants that unlock item operations on a field.
func OperationPermissions(fieldName string) []string {
	return []string{
		BypassNodeAccess,
		AdministerNodes,
		AdministerParagraphs,
		createFieldPrefix + fieldName,
		editFieldPrefix + fieldName,
		editOwnFieldPrefix + fieldName,
	}
}

// OperationAccess reports whether account may see the add/operation links
// of fieldName on entity. Owners holding "edit own <field>" qualify on any
// entity type except user accounts.
func OperationAccess(account interfaces.Account, entity Entity, fieldName string) bool {
	if account == nil {
		return false
	}
	for _, permission := range OperationPermissions(fieldName) {
		if account.HasPermission(permission) {
			return true
		}
	}
	if entity.Type == userEntityType {
		return false
	}
	owner := strings.TrimSpace(entity.OwnerID)
	return owner != "" && owner == account.ID() && account.HasPermission(editOwnFieldPrefix+fieldName)
}

// AccessMode selects which grant guards the add-component form.
type AccessMode string

const (
	AccessModeContent          AccessMode = "access_content"
	AccessModeTypePermissions  AccessMode = "type_permissions"
	AccessModeFieldPermissions AccessMode = "field_permissions"
)

// ParseAccessMode maps a configuration value onto an AccessMode, defaulting
// to AccessModeContent.
func ParseAccessMode(value string) AccessMode {
	switch mode := AccessMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case AccessModeTypePermissions, AccessModeFieldPermissions:
		return mode
	default:
		return AccessModeContent
	}
}

// AddRequest describes an attempt to add a paragraph of Bundle to FieldName.
// FieldPermissionType is the field's permission policy: "custom", "private"
// or empty for public fields.
type AddRequest struct {
	Mode                AccessMode
	Bundle              string
	FieldName           string
	FieldPermissionType string
}

// AddAccess reports whether account may open the add-component form.
func AddAccess(account interfaces.Account, req AddRequest) bool {
	if account == nil {
		return false
	}
	switch req.Mode {
	case AccessModeTypePermissions:
		return account.HasPermission(createParagraphPrefix + req.Bundle)
	case AccessModeFieldPermissions:
		if account.HasPermission(AccessPrivateFields) {
			return true
		}
		switch strings.ToLower(strings.TrimSpace(req.FieldPermissionType)) {
		case fieldPermissionCustom:
			return account.HasPermission(createFieldPrefix + req.FieldName)
		case fieldPermissionPrivate:
			return false
		default:
			return true
		}
	default:
		return account.HasPermission(AccessContent)
	}
}

// StaticAccount is a fixed account used by fixtures, tests and the example server.
type StaticAccount struct {
	AccountID   string
	Permissions Set
}

var _ interfaces.Account = StaticAccount{}

func (a StaticAccount) ID() string { return a.AccountID }

func (a StaticAccount) HasPermission(permission string) bool {
	return a.Permissions.Allowed(permission)
}

// Anonymous returns an account holding only "access content".
func Anonymous() StaticAccount {
	return StaticAccount{Permissions: NewSet(AccessContent)}
}
