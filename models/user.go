package models

// User is the authenticated account as the server exposes it to the client.
// The password never travels back from the server and is not part of this
// struct.
type User struct {
	// ID is the server-side identifier of the user.
	ID int64 `json:"id" validate:"required"`

	// Name is the display name entered at registration.
	Name string `json:"name"`

	// Email is the login identifier of the user.
	Email string `json:"email" validate:"required"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both login and register. Token is the opaque
// bearer credential used for every subsequent call.
type AuthResponse struct {
	User  *User  `json:"user" validate:"required"`
	Token string `json:"token" validate:"required"`
}

// CurrentUserResponse is returned by GET /api/auth/me.
type CurrentUserResponse struct {
	User *User `json:"user" validate:"required"`
}
