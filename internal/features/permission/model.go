package permission

// Permission is one entry of the capability catalog. An entry with ParentID 0
// is a módulo mapped to a navigable route segment; any other ParentID points
// at its módulo, making the entry a sub-permiso (tree depth is capped at two
// levels).
type Permission struct {
	ID       int    `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Endpoint string `bson:"endpoint" json:"endpoint"`
	ParentID int    `bson:"parent_id" json:"parent_id"`
	Active   bool   `bson:"active" json:"active"`
}

// IsModule reports whether the entry is a top-level módulo.
func (p Permission) IsModule() bool {
	return p.ParentID == 0
}

// ModuleTree is a módulo with its sub-permisos, as served to the role editor.
type ModuleTree struct {
	Permission `bson:",inline"`
	Children   []Permission `json:"children"`
}

// CreatePermissionRequest is the payload for catalog creation.
type CreatePermissionRequest struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	ParentID int    `json:"parent_id"`
}
