package permission

import "testing"

func TestHasCapability(t *testing.T) {
	tests := []struct {
		name  string
		value int
		bit   int
		want  bool
	}{
		{"Read on full access", BitAll, BitRead, true},
		{"Update on read-only", BitRead, BitUpdate, false},
		{"Delete on read+delete", BitRead | BitDelete, BitDelete, true},
		{"All on full access", BitAll, BitAll, true},
		{"All on partial", BitRead | BitCreate, BitAll, false},
		{"Anything on deny", Deny, BitRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCapability(tt.value, tt.bit); got != tt.want {
				t.Errorf("HasCapability(%d, %d) = %v, want %v", tt.value, tt.bit, got, tt.want)
			}
		})
	}
}

func TestToggleCapability_All(t *testing.T) {
	// Full access toggles down to deny, anything else toggles up to full.
	if got := ToggleCapability(BitAll, BitAll); got != Deny {
		t.Errorf("toggle ALL on 15 = %d, want 0", got)
	}
	for _, v := range []int{Deny, BitRead, BitRead | BitUpdate, 14} {
		if got := ToggleCapability(v, BitAll); got != BitAll {
			t.Errorf("toggle ALL on %d = %d, want 15", v, got)
		}
	}

	// Double ALL-toggle round-trips only the two fixed points.
	for _, v := range []int{Deny, BitAll} {
		if got := ToggleCapability(ToggleCapability(v, BitAll), BitAll); got != v {
			t.Errorf("double ALL toggle on %d = %d, want %d", v, got, v)
		}
	}
	// Any other start lands on 0 or 15 after the second toggle.
	for v := 1; v < BitAll; v++ {
		got := ToggleCapability(ToggleCapability(v, BitAll), BitAll)
		if got != Deny && got != BitAll {
			t.Errorf("double ALL toggle on %d = %d, want 0 or 15", v, got)
		}
	}
}

func TestToggleCapability_SingleBitSelfInverse(t *testing.T) {
	bits := []int{BitRead, BitCreate, BitUpdate, BitDelete}
	for v := 0; v <= BitAll; v++ {
		for _, b := range bits {
			if got := ToggleCapability(ToggleCapability(v, b), b); got != v {
				t.Errorf("double toggle of bit %d on %d = %d, want %d", b, v, got, v)
			}
		}
	}
}

func TestToggleCapability_Markers(t *testing.T) {
	for v := -1; v <= BitAll; v++ {
		if got := ToggleCapability(v, Deny); got != Deny {
			t.Errorf("toggle DENY on %d = %d, want 0", v, got)
		}
		if got := ToggleCapability(v, Inherit); got != Inherit {
			t.Errorf("toggle INHERIT on %d = %d, want -1", v, got)
		}
	}
}

// A value of Inherit carries no bits of its own: flipping a CRUD bit on it
// must behave as if starting from Deny and never leave the value domain.
func TestToggleCapability_SingleBitFromInherit(t *testing.T) {
	bits := []int{BitRead, BitCreate, BitUpdate, BitDelete}
	for _, b := range bits {
		got := ToggleCapability(Inherit, b)
		if got != b {
			t.Errorf("toggle bit %d on INHERIT = %d, want %d", b, got, b)
		}
		if !ValidValue(got) {
			t.Errorf("toggle bit %d on INHERIT produced out-of-domain value %d", b, got)
		}
	}
}

func TestCascadeToChildren_SingleBit(t *testing.T) {
	children := []Permission{
		{ID: 11, Name: "Inventario", Endpoint: "inventario", ParentID: 1},
		{ID: 12, Name: "Entradas", Endpoint: "entradas", ParentID: 1},
		{ID: 13, Name: "Salidas", Endpoint: "salidas", ParentID: 1},
	}
	values := map[int]int{11: Deny, 12: BitRead, 13: BitAll}

	// Parent gained UPDATE: every child must carry it afterwards.
	parentValue := BitRead | BitUpdate
	got := CascadeToChildren(parentValue, BitUpdate, children, values)
	for _, child := range children {
		if !HasCapability(got[child.ID], BitUpdate) {
			t.Errorf("child %d missing UPDATE after cascade: value %d", child.ID, got[child.ID])
		}
	}
	// Unrelated bits survive.
	if !HasCapability(got[12], BitRead) {
		t.Errorf("cascade clobbered READ on child 12: value %d", got[12])
	}

	// Parent lost UPDATE: every child must lose it too.
	got = CascadeToChildren(BitRead, BitUpdate, children, values)
	for _, child := range children {
		if HasCapability(got[child.ID], BitUpdate) {
			t.Errorf("child %d kept UPDATE after clearing cascade: value %d", child.ID, got[child.ID])
		}
	}
}

func TestCascadeToChildren_All(t *testing.T) {
	children := []Permission{
		{ID: 21, ParentID: 2},
		{ID: 22, ParentID: 2},
		{ID: 23, ParentID: 2},
	}
	values := map[int]int{21: Deny, 22: BitRead | BitCreate, 23: Inherit}

	got := CascadeToChildren(BitAll, BitAll, children, values)
	for _, child := range children {
		if got[child.ID] != BitAll {
			t.Errorf("child %d = %d after parent ALL, want 15", child.ID, got[child.ID])
		}
	}

	got = CascadeToChildren(Deny, BitAll, children, values)
	for _, child := range children {
		if got[child.ID] != Deny {
			t.Errorf("child %d = %d after parent DENY, want 0", child.ID, got[child.ID])
		}
	}
}

func TestCascadeToChildren_InheritChildStaysInDomain(t *testing.T) {
	children := []Permission{
		{ID: 11, Name: "Inventario", Endpoint: "inventario", ParentID: 1},
	}
	values := map[int]int{11: Inherit}

	// Clearing a bit on an inheriting child lands on Deny, not below it.
	got := CascadeToChildren(Deny, BitRead, children, values)
	if got[11] != Deny {
		t.Errorf("clearing cascade onto INHERIT child = %d, want 0", got[11])
	}
	if !ValidValue(got[11]) {
		t.Errorf("cascade produced out-of-domain value %d", got[11])
	}

	// Setting a bit resolves the inherit base to Deny first.
	got = CascadeToChildren(BitRead, BitRead, children, values)
	if got[11] != BitRead {
		t.Errorf("setting cascade onto INHERIT child = %d, want %d", got[11], BitRead)
	}
}

func TestCascadeToChildren_UnknownIDUntouched(t *testing.T) {
	children := []Permission{{ID: 31, ParentID: 3}}
	values := map[int]int{31: BitRead, 99: BitAll}

	got := CascadeToChildren(BitAll, BitAll, children, values)
	if _, ok := got[99]; ok {
		t.Error("cascade produced a value for an id outside the catalog")
	}
	if got[31] != BitAll {
		t.Errorf("child 31 = %d, want 15", got[31])
	}
	// Input map not corrupted.
	if values[31] != BitRead || values[99] != BitAll {
		t.Error("cascade mutated its input values")
	}
}

func TestValidValue(t *testing.T) {
	for v := -1; v <= BitAll; v++ {
		if !ValidValue(v) {
			t.Errorf("ValidValue(%d) = false, want true", v)
		}
	}
	for _, v := range []int{-2, 16, 100} {
		if ValidValue(v) {
			t.Errorf("ValidValue(%d) = true, want false", v)
		}
	}
}
