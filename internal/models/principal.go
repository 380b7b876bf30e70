package models

// EnvAdminID is the synthetic subject used for the environment-configured
// admin account. It never resolves to a stored user document.
const EnvAdminID = "admin_user"

// Principal is the authenticated actor performing a request, resolved
// either from the environment admin credential or from a stored user.
type Principal struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// IsEnvAdmin reports whether the principal is the environment admin
// rather than a stored user.
func (p *Principal) IsEnvAdmin() bool {
	return p.ID == EnvAdminID
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p.Role == "admin"
}
