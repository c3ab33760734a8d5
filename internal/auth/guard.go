package auth

import "net/url"

// SessionState is the lifecycle state of a console session.
type SessionState int

const (
	StateLoading SessionState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// LoginPath is the login surface of the console.
const LoginPath = "/login"

// DecisionKind is what the router should do with a navigation.
type DecisionKind int

const (
	DecisionWait DecisionKind = iota
	DecisionRedirect
	DecisionRender
)

// Decision is the outcome of Guard.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Guard decides a navigation to requested given the session state.
func Guard(state SessionState, requested string) Decision {
	switch state {
	case StateAuthenticated:
		return Decision{Kind: DecisionRender, Location: requested}
	case StateUnauthenticated:
		return Decision{Kind: DecisionRedirect, Location: LoginURL(requested, false)}
	default:
		return Decision{Kind: DecisionWait}
	}
}

// LoginURL builds the login location remembering next and the expired flag.
func LoginURL(next string, expired bool) string {
	q := url.Values{}
	if expired {
		q.Set("expired", "1")
	}
	if next != "" && next != LoginPath {
		q.Set("next", next)
	}
	if len(q) == 0 {
		return LoginPath
	}
	return LoginPath + "?" + q.Encode()
}

// SafeNext returns next, re-encoded, when it is a local path, else fallback.
func SafeNext(next, fallback string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && next[1] == '/') {
		return fallback
	}
	for i := 0; i < len(next); i++ {
		if b := next[i]; b < 0x20 || b == 0x7f || b == '\\' {
			return fallback
		}
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == LoginPath {
		return fallback
	}
	return u.RequestURI()
}
