package store

import (
	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// PageResult is one page of the filtered and sorted alert view.
type PageResult struct {
	Alerts     []*models.Alert `json:"alerts"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"` // filtered count
}

// Filtered returns the current filtered and sorted view, unpaginated.
func (s *AlertStore) Filtered() []*models.Alert {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredLocked()
}

func (s *AlertStore) filteredLocked() []*models.Alert {
	now := s.now()
	out := make([]*models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if matches(a, s.filters, now) {
			out = append(out, a)
		}
	}
	sortAlerts(out, s.sortBy, s.sortDir)
	return out
}

// Page returns the current page of the filtered and sorted view.
// Requesting a page past the end returns an empty alert slice with the
// correct page metadata.
func (s *AlertStore) Page() PageResult {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.filteredLocked()
	total := len(filtered)
	totalPages := (total + s.pageSize - 1) / s.pageSize

	start := (s.page - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageResult{
		Alerts:     filtered[start:end],
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}
