// File: internal/user/model.go
package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RoleData is the free-form role profile a client registers for a user. It is
// stored as a JSON text column and round-trips untouched.
type RoleData map[string]any

// Value implements the driver.Valuer interface for RoleData.
func (d RoleData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal role data: %w", err)
	}
	return string(raw), nil
}

// Scan implements the sql.Scanner interface for RoleData.
func (d *RoleData) Scan(value any) error {
	if value == nil {
		*d = RoleData{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for RoleData: %T", value)
	}
	if len(raw) == 0 {
		*d = RoleData{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

// User binds an externally issued identifier to a role and its profile blob.
// IDs come from the identity provider, not from this service.
type User struct {
	ID       string   `gorm:"type:varchar(64);primaryKey" json:"id"`
	Role     string   `gorm:"type:varchar(32);not null;index" json:"role"`
	RoleData RoleData `gorm:"type:text" json:"roleData"`
}

func (User) TableName() string {
	return "users"
}
