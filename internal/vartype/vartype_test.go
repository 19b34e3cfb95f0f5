// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import "testing"

func TestNewVariable(t *testing.T) {
	t.Run("new variable is set and holds the value", func(t *testing.T) {
		v := NewVariable[int64](1705298400)
		if !v.IsSet() {
			t.Fatal("expected variable to be set")
		}
		if v.Value() != 1705298400 {
			t.Errorf("expected value to be %d, got %d", 1705298400, v.Value())
		}
		if v.String() != "1705298400" {
			t.Errorf("expected string to be %q, got %q", "1705298400", v.String())
		}
	})
	t.Run("zero value variable is unset and renders the placeholder", func(t *testing.T) {
		var v VarInt64
		if v.IsSet() {
			t.Fatal("expected variable to be unset")
		}
		if v.String() != Placeholder {
			t.Errorf("expected string to be %q, got %q", Placeholder, v.String())
		}
	})
}

func TestNonZero(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		isset bool
	}{
		{"zero epoch is unset", 0, false},
		{"positive epoch is set", 1705298400, true},
		{"negative epoch is set", -1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NonZero(tc.value)
			if v.IsSet() != tc.isset {
				t.Errorf("expected isset to be %t, got %t", tc.isset, v.IsSet())
			}
		})
	}
}

func TestVariable_SetReset(t *testing.T) {
	var v VarFloat64
	v.Set(12.5)
	if !v.IsSet() || v.Value() != 12.5 {
		t.Fatalf("expected variable to be set to 12.5, got %v (set: %t)", v.Value(), v.IsSet())
	}
	v.Reset()
	if v.IsSet() || v.Value() != 0 {
		t.Errorf("expected variable to be reset, got %v (set: %t)", v.Value(), v.IsSet())
	}
}
