// Package api provides interfaces for dependency injection
package api

import "context"

// RecordStoreFactory opens the record archive
type RecordStoreFactory interface {
	// CreateRecordStore opens the archive under dataDir. The returned
	// closer releases it.
	CreateRecordStore(dataDir string) (RecordStoreCloser, error)
}

// RecordStoreCloser is an IRecordStore that holds resources
type RecordStoreCloser interface {
	IRecordStore
	Close() error
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, store IRecordStore, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
