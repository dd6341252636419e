package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is the jsonb metadata column
type JSON = datatypes.JSONMap

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionStaffCreate        = "staff.create"
	AuditActionRequestCreate      = "request.create"
	AuditActionRequestRefuse      = "request.refuse"
	AuditActionRequestAccept      = "request.accept"
	AuditActionRequestExpire      = "request.expire"
	AuditActionBusinessHourCreate = "business_hour.create"
	AuditActionBusinessHourUpdate = "business_hour.update"
	AuditActionBusinessHourDelete = "business_hour.delete"
	AuditActionDoctorCreate       = "doctor.create"
	AuditActionDoctorUpdate       = "doctor.update"
	AuditActionDoctorDelete       = "doctor.delete"
	AuditActionPatientDelete      = "patient.delete"
)
