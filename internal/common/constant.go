package common

// Cookie and header names shared by the HTTP boundary and its clients.
const (
	AccessTokenCookieName  = "token"
	RefreshTokenCookieName = "refreshToken"
	RefreshTokenHeaderName = "x-refresh-token"
)

// Roles known to the CRM front end. The column is an open string, these are
// only the values seeded by the admin tooling.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)
