// Package policy decides which API operations require an authenticated
// caller.
package policy

import (
	"fmt"
	"sort"

	"github.com/diewo77/go-videoshop/gate"
)

// Level is the protection applied to a permission.
type Level string

const (
	Public        Level = "public"
	Authenticated Level = "authenticated"
)

// Resources served under /api.
const (
	ResourceClients   = "clients"
	ResourceProducts  = "produits"
	ResourceVendors   = "vendeurs"
	ResourceSales     = "ventes"
	ResourcePurchases = "achats"
	ResourceDashboard = "dashboard"
)

// Table maps permission rules ("res:action", "res:*", "*:action", "*:*") to a
// level. Lookups fall back to Authenticated when nothing matches.
type Table struct {
	rules map[gate.Permission]Level
}

func NewTable() *Table {
	return &Table{rules: make(map[gate.Permission]Level)}
}

// DefaultTable leaves reads public unless protectReads is set. Writes always
// need a caller.
func DefaultTable(protectReads bool) *Table {
	t := NewTable()
	read := Public
	if protectReads {
		read = Authenticated
	}
	for _, a := range gate.Actions {
		if a.IsRead() {
			t.Set(gate.NewPermission(gate.WildcardAll, a), read)
		}
	}
	t.Set(gate.PermissionAll, Authenticated)
	return t
}

// Set registers or replaces a rule.
func (t *Table) Set(rule gate.Permission, level Level) *Table {
	t.rules[rule] = level
	return t
}

// Level resolves the most specific rule covering resource:action.
func (t *Table) Level(resource string, action gate.Action) Level {
	for _, c := range gate.NewPermission(resource, action).Candidates() {
		if lvl, ok := t.rules[c]; ok {
			return lvl
		}
	}
	return Authenticated
}

// Rules returns the table as sorted "rule=level" lines for startup logs.
func (t *Table) Rules() []string {
	out := make([]string, 0, len(t.rules))
	for p, l := range t.rules {
		out = append(out, fmt.Sprintf("%s=%s", p, l))
	}
	sort.Strings(out)
	return out
}
