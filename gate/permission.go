// Package gate names operations on resources as "resource:action"
// permissions and expands them into the wildcard rules that may cover them.
package gate

import "strings"

// Permission represents an action on a resource type.
// Format: "resource:action" (e.g., "produits:create", "achats:list")
type Permission string

// NewPermission creates a permission from resource type and action.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType string, action Action) {
	res, act, ok := strings.Cut(string(p), ":")
	if !ok {
		return "", ""
	}
	return res, Action(act)
}

const (
	WildcardAll   = "*"
	PermissionAll Permission = "*:*"
)

// Candidates lists the rules that may cover p, most specific first:
// exact, "res:*", "*:action", "*:*".
func (p Permission) Candidates() []Permission {
	res, act := p.Parse()
	if res == "" {
		return []Permission{PermissionAll}
	}
	return []Permission{
		p,
		NewPermission(res, WildcardAll),
		NewPermission(WildcardAll, act),
		PermissionAll,
	}
}
