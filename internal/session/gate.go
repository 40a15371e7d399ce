package session

type Requirement string

const (
	RequireNone      Requirement = ""
	RequireSession   Requirement = "session"
	RequireAnonymous Requirement = "anonymous"
	RequireGuest     Requirement = "guest"
)

type Decision string

const (
	Pending           Decision = "pending"
	Allow             Decision = "allow"
	RedirectLogin     Decision = "redirect_login"
	RedirectDashboard Decision = "redirect_dashboard"
)

func (d Decision) Location() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectDashboard:
		return "/dashboard"
	default:
		return ""
	}
}

// Gate decides whether a page may render for the visitor. Nothing is decided
// before the session has been hydrated, so a returning customer is never
// bounced to the login page while their session is still loading.
func Gate(c *Context, need Requirement) Decision {
	if !c.Hydrated() {
		return Pending
	}

	s := c.Get()
	switch need {
	case RequireSession:
		if s == nil {
			return RedirectLogin
		}
	case RequireAnonymous:
		if s != nil {
			return RedirectDashboard
		}
	case RequireGuest:
		if s == nil {
			return RedirectLogin
		}
		if !s.IsGuest() {
			return RedirectDashboard
		}
	}
	return Allow
}
