package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor ID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Actor ID
}

// ActorRole is the role carried by the caller identity.
type ActorRole string

const (
	RoleAdmin    ActorRole = "admin"
	RoleManager  ActorRole = "manager"
	RoleOperator ActorRole = "operator"
)

// Actor identifies who performs an operation. It is resolved by the identity
// collaborator and passed explicitly into every core operation.
type Actor struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Role        ActorRole `json:"role"`
}

// IsAdmin reports whether the actor holds the administrative role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequestMetadata is optional client information recorded on audit logs.
type RequestMetadata struct {
	ClientIP  string `json:"clientIP,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}
