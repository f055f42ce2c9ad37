package models

import "time"

// SiteSettings holds the editable knobs on the settings page.
type SiteSettings struct {
	SiteName string

	// FooterHTML is sanitized before storage (see system/htmlsanitize).
	FooterHTML string

	// QuotaTotalBytes is the fixed capacity the usage meter measures
	// against. Zero means "use the configured default".
	QuotaTotalBytes int64

	UpdatedAt     *time.Time
	UpdatedByName string
}

// DefaultSiteName is used when settings have not been customized.
const DefaultSiteName = "Easy Web File Workbench"

// DefaultFooterHTML is the default footer text.
const DefaultFooterHTML = "Powered by Easy Web File Workbench"

// DefaultQuotaTotalBytes is the fixed quota the usage meter renders
// against when no override is configured (10 GB).
const DefaultQuotaTotalBytes int64 = 10 << 30
