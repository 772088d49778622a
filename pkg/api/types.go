package api

import (
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/interchange"
	"github.com/ssargent/bdirkit/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidationResult is the payload of the validate endpoint
type ValidationResult struct {
	Valid   bool                `json:"valid"`
	Purpose bdir.Purpose        `json:"purpose"`
	Errors  map[string]string   `json:"errors,omitempty"`
	Summary interchange.Summary `json:"summary"`
}

// StoredRecord is returned when a record is archived
type StoredRecord struct {
	Meta    storage.Meta        `json:"meta"`
	Summary interchange.Summary `json:"summary"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port           int
	Bind           string
	APIKey         string
	DataDir        string
	DefaultPurpose bdir.Purpose // used when a validate request names none
	HeaderOnly     bool         // decode default when header_only is absent
	MaxBodyBytes   int64        // request body limit, DefaultMaxBodyBytes when zero
	Logger         *slog.Logger
}

// DefaultMaxBodyBytes bounds uploaded records. Image data dominates and the
// representation length field is 32 bits, but real records are far smaller.
const DefaultMaxBodyBytes = 32 << 20

// IRecordStore defines the record archive operations the API needs
type IRecordStore interface {
	Put(modality bdir.Modality, data []byte) (ksuid.KSUID, storage.Meta, error)
	Get(id ksuid.KSUID) ([]byte, error)
	Meta(id ksuid.KSUID) (storage.Meta, error)
	Delete(id ksuid.KSUID) error
}
