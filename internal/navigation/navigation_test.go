package navigation

import "testing"

func TestSelect(t *testing.T) {
	if got := Select(false); got != StackAuth {
		t.Errorf("Select(false) = %v, want StackAuth", got)
	}
	if got := Select(true); got != StackAuthenticated {
		t.Errorf("Select(true) = %v, want StackAuthenticated", got)
	}
}

func TestStackString(t *testing.T) {
	if StackAuth.String() != "auth" {
		t.Errorf("Unexpected name: %s", StackAuth)
	}
	if StackAuthenticated.String() != "authenticated" {
		t.Errorf("Unexpected name: %s", StackAuthenticated)
	}
}
