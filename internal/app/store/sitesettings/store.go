// Package sitesettingsstore holds the singleton site settings in memory.
package sitesettingsstore

import (
	"sync"
	"time"

	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
)

// Store wraps the single settings value behind a mutex.
type Store struct {
	mu       sync.RWMutex
	settings models.SiteSettings
}

// New creates a store holding the default settings.
func New() *Store {
	return &Store{
		settings: models.SiteSettings{
			SiteName:        models.DefaultSiteName,
			FooterHTML:      models.DefaultFooterHTML,
			QuotaTotalBytes: models.DefaultQuotaTotalBytes,
		},
	}
}

// SetQuota overrides the quota at boot without marking the settings as
// edited. Non-positive values are ignored.
func (s *Store) SetQuota(totalBytes int64) {
	if totalBytes <= 0 {
		return
	}
	s.mu.Lock()
	s.settings.QuotaTotalBytes = totalBytes
	s.mu.Unlock()
}

// Get returns the current settings.
func (s *Store) Get() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateInput holds the editable fields from the settings form.
// FooterHTML must already be sanitized by the caller.
type UpdateInput struct {
	SiteName        string
	FooterHTML      string
	QuotaTotalBytes int64
	UpdatedByName   string
}

// Update applies the form input, keeping defaults for blank fields.
func (s *Store) Update(input UpdateInput) models.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.SiteName != "" {
		s.settings.SiteName = input.SiteName
	}
	s.settings.FooterHTML = input.FooterHTML
	if s.settings.FooterHTML == "" {
		s.settings.FooterHTML = models.DefaultFooterHTML
	}
	if input.QuotaTotalBytes > 0 {
		s.settings.QuotaTotalBytes = input.QuotaTotalBytes
	}

	now := time.Now().UTC()
	s.settings.UpdatedAt = &now
	s.settings.UpdatedByName = input.UpdatedByName
	return s.settings
}
