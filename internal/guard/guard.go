// Package guard decides whether a protected view may render for a given
// session. Decide is a pure function of its inputs and must be re-evaluated
// on every navigation, never cached.
package guard

import "github.com/veriflow/kyc-server/internal/model"

// Action is the kind of decision the guard reached.
type Action int

const (
	// Render allows the protected content.
	Render Action = iota
	// ShowLoading suspends rendering while the session is still resolving.
	// This is not a redirect.
	ShowLoading
	// RedirectLogin sends an anonymous client to the login page, preserving
	// the originally requested destination.
	RedirectLogin
	// RedirectHome sends an authenticated client without the required role
	// back to the home page.
	RedirectHome
)

// Decision is the guard's verdict for a single navigation.
type Decision struct {
	Action Action
	// Location is the redirect target for redirect actions.
	Location string
	// ReturnTo is the originally requested path, carried so the caller can
	// return there after a successful login.
	ReturnTo string
}

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decide evaluates the session against an optionally required role.
// requiredRole is the zero value when any authenticated identity suffices.
func Decide(sess model.Session, requiredRole model.Role, requestedPath string) Decision {
	if sess.IsResolving {
		return Decision{Action: ShowLoading}
	}

	if !sess.Authenticated() {
		return Decision{Action: RedirectLogin, Location: loginPath, ReturnTo: requestedPath}
	}

	if requiredRole != "" && sess.Current.Role != requiredRole {
		return Decision{Action: RedirectHome, Location: homePath}
	}

	return Decision{Action: Render}
}
