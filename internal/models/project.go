package models

import (
	"fmt"
	"time"
)

// ProjectType classifies the listed artifact.
type ProjectType string

const (
	ProjectCLI ProjectType = "cli"
	ProjectGUI ProjectType = "gui"
	ProjectWeb ProjectType = "web"
)

func ParseProjectType(s string) (ProjectType, error) {
	switch ProjectType(s) {
	case ProjectCLI, ProjectGUI, ProjectWeb:
		return ProjectType(s), nil
	}
	return "", fmt.Errorf("invalid project type %q", s)
}

// MinProjectPriceCents is the listing floor: $1.
const MinProjectPriceCents = 100

// Project is a seller's listed artifact. Immutable after creation.
type Project struct {
	ID           int64       `json:"id"`
	SellerID     int64       `json:"seller_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	PriceCents   int64       `json:"price_cents"`
	ProjectType  ProjectType `json:"project_type"`
	LanguageTags string      `json:"language_tags"`
	FilePath     string      `json:"file_path,omitempty"` // opaque handle into file storage
	CreatedAt    time.Time   `json:"created_at"`
}
