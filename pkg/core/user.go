package core

// Profile is the signed-in user's account data.
// ID is backend-assigned and treated opaquely.
type Profile struct {
	ID       ID     `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
}

// ProfileInput is the full profile form state sent on update.
type ProfileInput struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Credentials are sent on login and register.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the login/register response.
type AuthResult struct {
	Token string `json:"token"`
}
