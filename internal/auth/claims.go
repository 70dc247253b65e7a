package auth

import "khola-chithi/engine/internal/constants"

// Common interface for the three authentication sources.
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
	HasPermission(action string) bool
}

type JWTClaims struct {
	UserUUID  string
	RoleValue constants.Role
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Role() string {
	return string(c.RoleValue)
}
func (c *JWTClaims) Source() string            { return "JWT" }
func (c *JWTClaims) HasPermission(string) bool { return true }

type APIKeyClaims struct {
	UserUUID  string
	RoleValue constants.Role
}

func (c *APIKeyClaims) UserID() string { return c.UserUUID }
func (c *APIKeyClaims) Role() string {
	return string(c.RoleValue)
}
func (c *APIKeyClaims) Source() string            { return "API_KEY" }
func (c *APIKeyClaims) HasPermission(string) bool { return true }

type SessionClaims struct {
	UserUUID  string
	RoleValue constants.Role
	SessionID string
}

func (c *SessionClaims) UserID() string { return c.UserUUID }
func (c *SessionClaims) Role() string {
	return string(c.RoleValue)
}
func (c *SessionClaims) Source() string            { return "SESSION" }
func (c *SessionClaims) HasPermission(string) bool { return true }
