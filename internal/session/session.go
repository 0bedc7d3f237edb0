// Package session holds the client-visible session snapshot: the shape
// serialized into the "usuario" cookie at login and read back by the page
// gate. The snapshot is a cache of server truth used for navigation only;
// every API call is re-authorized server-side.
package session

import (
	"encoding/json"
	"errors"
	"net/url"
	"time"
)

// ErrCorruptSnapshot marks a usuario cookie that does not decode into a
// usable session. The only recovery is a forced logout.
var ErrCorruptSnapshot = errors.New("session snapshot is corrupt")

// Cookie names shared by the auth feature and the page gate.
const (
	TokenCookie = "token"
	UserCookie  = "usuario"
)

// AdminRole is the role that sees every planeación, approves submissions and
// bypasses catalog checks.
const AdminRole = "administrador"

// SubGrant is the capability value held on a sub-permiso.
type SubGrant struct {
	Endpoint string `json:"endpoint"`
	Value    int    `json:"value"`
}

// ModuleGrant is the capability value held on a módulo plus its sub-permisos,
// keyed by endpoint segment.
type ModuleGrant struct {
	Endpoint    string              `json:"endpoint"`
	Value       int                 `json:"value"`
	SubPermisos map[string]SubGrant `json:"sub_permisos,omitempty"`
}

// Session is the user snapshot carried in the usuario cookie.
type Session struct {
	UserID      string                 `json:"user_id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	RoleID      string                 `json:"role_id"`
	RoleName    string                 `json:"role_name"`
	Permissions map[string]ModuleGrant `json:"permissions"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

// Parse decodes a serialized snapshot. A snapshot that does not decode, or
// decodes without a user id, is corrupt: the caller must clear the session
// artifacts and treat the request as unauthenticated.
func Parse(raw string) (*Session, error) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, ErrCorruptSnapshot
	}
	var s Session
	if err := json.Unmarshal([]byte(decoded), &s); err != nil {
		return nil, err
	}
	if s.UserID == "" {
		return nil, ErrCorruptSnapshot
	}
	return &s, nil
}

// Serialize encodes the snapshot for cookie storage. The JSON is
// percent-encoded: quotes, commas and spaces are not legal cookie bytes
// (RFC 6265), and Go's HTTP stack drops cookie values that carry them.
func (s *Session) Serialize() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(b)), nil
}
