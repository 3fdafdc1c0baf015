package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is one change made through the admin API
type Entry struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// Who
	Actor string `json:"actor" gorm:"type:text;index"`
	Role  string `json:"role,omitempty" gorm:"type:text"`

	// What
	TenantID string `json:"tenant_id,omitempty" gorm:"type:text;index"`
	Method   string `json:"method" gorm:"type:text;not null"`
	Route    string `json:"route" gorm:"type:text;not null;index"` // matched pattern, e.g. /tenants/:id/deactivate
	Path     string `json:"path" gorm:"type:text"`
	Status   int    `json:"status"`

	// Request metadata
	IPAddress string            `json:"ip_address,omitempty" gorm:"type:text"`
	UserAgent string            `json:"user_agent,omitempty" gorm:"type:text"`
	Duration  int64             `json:"duration_ms" gorm:"type:bigint"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Filter narrows List. Limit defaults to 50.
type Filter struct {
	TenantID string
	Actor    string
	Since    *time.Time
	Limit    int
}
