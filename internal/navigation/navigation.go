// Package navigation decides which screen stack the host mounts. The
// selection is a pure function of the session's authentication flag so
// the host can swap stacks atomically whenever the flag changes.
package navigation

// Stack identifies a mounted screen graph.
type Stack int

const (
	// StackAuth holds the login and signup screens.
	StackAuth Stack = iota
	// StackAuthenticated holds the place screens.
	StackAuthenticated
)

func (s Stack) String() string {
	switch s {
	case StackAuth:
		return "auth"
	case StackAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Select returns the stack for the given authentication state.
func Select(isAuthenticated bool) Stack {
	if isAuthenticated {
		return StackAuthenticated
	}
	return StackAuth
}
