package gate_test

import (
	"testing"

	"github.com/diewo77/go-videoshop/gate"
)

func TestPermission_NewPermission(t *testing.T) {
	perm := gate.NewPermission("produits", gate.ActionCreate)
	if perm != "produits:create" {
		t.Errorf("expected 'produits:create', got '%s'", perm)
	}
}

func TestPermission_Parse(t *testing.T) {
	res, act := gate.Permission("achats:view").Parse()
	if res != "achats" || act != gate.ActionView {
		t.Errorf("unexpected parse result '%s' '%s'", res, act)
	}
	res, act = gate.Permission("invalid").Parse()
	if res != "" || act != "" {
		t.Errorf("expected empty strings, got '%s' and '%s'", res, act)
	}
}

func TestPermission_Candidates(t *testing.T) {
	got := gate.NewPermission("clients", gate.ActionView).Candidates()
	want := []gate.Permission{"clients:view", "clients:*", "*:view", "*:*"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAction_IsRead(t *testing.T) {
	var reads []gate.Action
	for _, a := range gate.Actions {
		if a.IsRead() {
			reads = append(reads, a)
		}
	}
	if len(gate.Actions) != 5 || len(reads) != 2 || reads[0] != gate.ActionList || reads[1] != gate.ActionView {
		t.Errorf("unexpected read actions %v of %v", reads, gate.Actions)
	}
}

func TestPermission_CandidatesMalformed(t *testing.T) {
	got := gate.Permission("invalid").Candidates()
	if len(got) != 1 || got[0] != gate.PermissionAll {
		t.Errorf("got %v", got)
	}
}
