package services

import (
	"net/url"
	"strings"
)

// Destination is the single navigation decision the redirect policy emits.
// There is no ambient "forced to complete profile" flag anywhere: callers
// thread this value through explicitly.
type Destination int

const (
	Stay Destination = iota
	GoAuth
	GoOnboarding
	GoForceProfileEdit
	GoDashboard
)

const (
	PathAuth             = "/auth"
	PathAuthVerify       = "/auth/verify"
	PathOnboarding       = "/onboarding"
	PathForceProfileEdit = "/force-profile/edit"
	PathDashboard        = "/dashboard"
	PathProfileEdit      = "/profile/edit"
)

// Path returns the navigation target, or "" for Stay.
func (destination Destination) Path() string {
	switch destination {
	case GoAuth:
		return PathAuth
	case GoOnboarding:
		return PathOnboarding
	case GoForceProfileEdit:
		return PathForceProfileEdit
	case GoDashboard:
		return PathDashboard
	default:
		return ""
	}
}

func (destination Destination) String() string {
	switch destination {
	case GoAuth:
		return "auth"
	case GoOnboarding:
		return "onboarding"
	case GoForceProfileEdit:
		return "force-profile-edit"
	case GoDashboard:
		return "dashboard"
	default:
		return "stay"
	}
}

// AuthRedirectPath builds the login destination preserving the originally
// requested path for the post-login return.
func AuthRedirectPath(originalPath string) string {
	trimmed := strings.TrimSpace(originalPath)
	if trimmed == "" || !strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "//") {
		return PathAuth
	}
	values := url.Values{}
	values.Set("redirect", trimmed)
	return PathAuth + "?" + values.Encode()
}

// Decide runs the navigation state machine for one mount: given where the
// client is, whether a session exists and the completion verdict, it returns
// the single next destination. It never redirects a path to itself.
func Decide(currentPath string, authenticated bool, verdict CompletionVerdict) Destination {
	path := normalizePath(currentPath)

	if !authenticated {
		if isAuthPath(path) {
			return Stay
		}
		return GoAuth
	}

	// Admin accounts bypass profile-completion gating entirely.
	if verdict.Role == RoleAdmin {
		return Stay
	}

	if verdict.Role == RoleUnset {
		if isOnboardingPath(path) || isAuthPath(path) {
			return Stay
		}
		return GoOnboarding
	}

	if !verdict.Complete {
		if forcedRedirectExemptPath(path) {
			return Stay
		}
		return GoForceProfileEdit
	}

	// Complete profiles have no business on the funnel pages.
	if isOnboardingPath(path) || isForceProfilePath(path) || isAuthPath(path) {
		return GoDashboard
	}
	return Stay
}

// PostLoginDestination decides where a user lands right after authenticating.
// Unlike Decide it ignores path exemptions: the user is leaving the auth
// screen no matter what.
func PostLoginDestination(verdict CompletionVerdict) Destination {
	switch {
	case verdict.Role == RoleAdmin:
		return GoDashboard
	case verdict.Role == RoleUnset:
		return GoOnboarding
	case !verdict.Complete:
		return GoForceProfileEdit
	default:
		return GoDashboard
	}
}

// forcedRedirectExemptPath lists where the incomplete -> force-profile-edit
// transition must not fire: the user is either already fixing the profile or
// moving through auth/onboarding.
func forcedRedirectExemptPath(path string) bool {
	return isForceProfilePath(path) ||
		isOnboardingPath(path) ||
		isAuthPath(path) ||
		path == "/profile" || strings.HasPrefix(path, "/profile/")
}

func isAuthPath(path string) bool {
	return path == PathAuth || strings.HasPrefix(path, PathAuth+"/")
}

func isOnboardingPath(path string) bool {
	return path == PathOnboarding || strings.HasPrefix(path, PathOnboarding+"/")
}

func isForceProfilePath(path string) bool {
	return path == PathForceProfileEdit || strings.HasPrefix(path, "/force-profile/")
}

func normalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
