// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/bdirkit/pkg/api" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	recordStoreFactory api.RecordStoreFactory
	serverFactory      api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		recordStoreFactory: api.NewRecordStoreFactory(),
		serverFactory:      api.NewServerFactory(),
	}
}

// GetRecordStoreFactory returns the record store factory
func (c *Container) GetRecordStoreFactory() api.RecordStoreFactory {
	return c.recordStoreFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetRecordStoreFactory allows overriding the record store factory (for testing)
func (c *Container) SetRecordStoreFactory(factory api.RecordStoreFactory) {
	c.recordStoreFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
