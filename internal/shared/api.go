// Package shared holds the JSON request and response bodies of the HTTP API.
// Both the server handlers and the API client use these types, so the wire
// format is defined in exactly one place.
package shared

// AuthRequest is the body of POST /auth/signup and POST /auth/signin.
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the body of a successful POST /auth/signin.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// EditUserRequest is the body of PATCH /users. Absent fields stay unchanged.
type EditUserRequest struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// CreateBookmarkRequest is the body of POST /bookmarks.
type CreateBookmarkRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link" binding:"required"`
}

// EditBookmarkRequest is the body of PATCH /bookmarks/:id. Absent fields
// stay unchanged.
type EditBookmarkRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
