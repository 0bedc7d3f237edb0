package role

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RolePermission binds a bitmask value to one permisos-catalog entry.
type RolePermission struct {
	PermissionID int `bson:"permission_id" json:"permission_id"`
	Value        int `bson:"value" json:"value"`
}

// Role groups users under a named permission set. The set is replaced as a
// whole by SavePermissions, never patched entry by entry.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Permissions []RolePermission   `bson:"permissions" json:"permissions"`
	IsSystem    bool               `bson:"is_system" json:"is_system"` // Prevent deletion of system roles
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Value returns the bitmask held on a catalog entry, Deny when unset.
func (r *Role) Value(permissionID int) int {
	for _, p := range r.Permissions {
		if p.PermissionID == permissionID {
			return p.Value
		}
	}
	return 0
}

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SavePermissionsRequest replaces the role's full permission set.
type SavePermissionsRequest struct {
	Permissions []RolePermission `json:"permissions"`
}

// ToggleRequest flips one capability bit on one catalog entry; toggling a
// módulo cascades to its sub-permisos.
type ToggleRequest struct {
	PermissionID int `json:"permission_id"`
	Bit          int `json:"bit"`
}
