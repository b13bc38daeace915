package model

import (
	"time"
)

// Project is a persisted application project the assistant works on.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PackageName string    `json:"package_name"`
	VersionName string    `json:"version_name"`
	VersionCode int       `json:"version_code"`
	MinSdk      int       `json:"min_sdk"`
	TargetSdk   int       `json:"target_sdk"`
	ThemeColor  string    `json:"theme_color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot renders the project's identifying fields for prompt grounding.
func (p *Project) Snapshot() map[string]string {
	return map[string]string{
		"id":           p.ID,
		"name":         p.Name,
		"package_name": p.PackageName,
		"version_name": p.VersionName,
	}
}
