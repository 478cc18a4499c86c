package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Project is a case study shown on the public dashboard.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID            string            `bun:"id,pk" json:"id"`
	Title         string            `bun:"title,notnull" json:"title"`
	Description   string            `bun:"description,notnull" json:"description"`
	Category      string            `bun:"category,notnull" json:"category"`
	IconName      string            `bun:"icon_name,notnull" json:"iconName"`
	Stats         map[string]string `bun:"stats,type:json" json:"stats"`
	Technologies  []string          `bun:"technologies,type:json" json:"technologies"`
	WhatIs        string            `bun:"what_is" json:"whatIs,omitempty"`
	ForWho        string            `bun:"for_who" json:"forWho,omitempty"`
	ProblemSolved string            `bun:"problem_solved" json:"problemSolved,omitempty"`
	Result        string            `bun:"result" json:"result,omitempty"`
	Details       []ProjectDetail   `bun:"rel:has-many,join:id=project_id" json:"details,omitempty"`
	IsActive      bool              `bun:"is_active,notnull" json:"isActive"`
	DisplayOrder  int               `bun:"display_order,notnull,default:0" json:"displayOrder"`
	CreatedAt     time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time         `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ProjectDetail is one markdown-lite block attached to a project.
type ProjectDetail struct {
	bun.BaseModel `bun:"table:project_details,alias:pd"`

	ID            string    `bun:"id,pk" json:"id"`
	ProjectID     string    `bun:"project_id,notnull" json:"projectId"`
	ProjectDetail string    `bun:"project_detail,notnull" json:"projectDetail"`
	DisplayOrder  int       `bun:"display_order,notnull,default:0" json:"displayOrder"`
	IsActive      bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// CompanyValue is one of the values listed in the identity section.
type CompanyValue struct {
	bun.BaseModel `bun:"table:company_values,alias:cv"`

	ID           string    `bun:"id,pk" json:"id"`
	Title        string    `bun:"title,notnull" json:"title"`
	Description  string    `bun:"description,notnull" json:"description"`
	IconName     string    `bun:"icon_name,notnull" json:"iconName"`
	DisplayOrder int       `bun:"display_order,notnull,default:0" json:"displayOrder"`
	IsActive     bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ContactMessage stores a submission of the public contact form.
type ContactMessage struct {
	bun.BaseModel `bun:"table:contact_messages,alias:cm"`

	ID          int64     `bun:"id,pk,autoincrement"`
	ContactName string    `bun:"contact_name,notnull"`
	CompanyName string    `bun:"company_name,notnull"`
	Email       string    `bun:"email,notnull"`
	Phone       string    `bun:"phone,notnull"`
	Comments    string    `bun:"comments"`
	Delivered   bool      `bun:"delivered,notnull,default:false"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AdminSession backs the admin_auth_token cookie.
type AdminSession struct {
	bun.BaseModel `bun:"table:admin_sessions,alias:s"`

	ID        string    `bun:"id,pk"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s AdminSession) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AuditLog captures immutable change history for admin operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	ProjectID  string    `bun:"project_id"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
