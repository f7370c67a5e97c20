package store

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes            int            `json:"notes"`
	Visible          int            `json:"visible"`
	SelectedCategory string         `json:"selected_category"`
	SearchQuery      string         `json:"search_query,omitempty"`
	Loading          bool           `json:"loading"`
	Error            string         `json:"error,omitempty"`
	Counts           map[string]int `json:"counts"`
	StorageType      string         `json:"storage_type"`
	Subscribers      int            `json:"subscribers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	errMsg, _ := s.Error()

	storageType := "none"
	if s.storage != nil {
		storageType = "storage"
		if comp, ok := s.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}

	filter := s.Filter()
	return StoreState{
		Notes:            s.Total(),
		Visible:          len(s.Filtered()),
		SelectedCategory: string(filter.Category),
		SearchQuery:      filter.Query,
		Loading:          s.IsLoading(),
		Error:            errMsg,
		Counts:           s.CountsByCategory(),
		StorageType:      storageType,
		Subscribers:      s.broker.len(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
