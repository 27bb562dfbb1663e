// Package client is the Go client of the bookmarker HTTP API.
//
// Client wraps every route of the server and decodes replies into the
// server's models and the shared request/response types. Any non-2xx reply
// comes back as *APIError; a 401 additionally matches ErrUnauthorized with
// errors.Is. Transport failures wrap ErrUnavailable.
//
// TokenStore persists the access token returned by SignIn so later CLI
// invocations can reuse it.
package client
