// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"path/filepath"

	"github.com/ssargent/bdirkit/pkg/storage"
)

// DefaultRecordStoreFactory opens a pebble-backed storage.RecordStore
type DefaultRecordStoreFactory struct{}

// NewRecordStoreFactory creates a new record store factory
func NewRecordStoreFactory() RecordStoreFactory {
	return &DefaultRecordStoreFactory{}
}

// CreateRecordStore opens dataDir/records
func (f *DefaultRecordStoreFactory) CreateRecordStore(dataDir string) (RecordStoreCloser, error) {
	store, err := storage.NewRecordStore(filepath.Join(dataDir, "records"))
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(ctx context.Context, store IRecordStore, config ServerConfig) error {
	return StartServer(ctx, store, config)
}
