package model

import "github.com/google/uuid"

const (
	RoleAdmin  = "ADMIN"
	RoleOps    = "OPS"
	RoleClient = "CLIENT"
)

// Principal is the authenticated caller extracted from the access token.
// Client-role principals are tenant-scoped to their own ClientID.
type Principal struct {
	UserID   uuid.UUID
	ClientID *uuid.UUID
	Roles    []string
}

func (p Principal) hasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool  { return p.hasRole(RoleAdmin) }
func (p Principal) IsOps() bool    { return p.hasRole(RoleOps) }
func (p Principal) IsClient() bool { return p.hasRole(RoleClient) }

// CanAccessClient reports whether the principal may read rows owned by the
// given client. Admin and ops see everything.
func (p Principal) CanAccessClient(clientID uuid.UUID) bool {
	if p.IsAdmin() || p.IsOps() {
		return true
	}
	return p.ClientID != nil && *p.ClientID == clientID
}
