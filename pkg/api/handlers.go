package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/hengadev/errsx"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/interchange"
	"github.com/ssargent/bdirkit/pkg/storage"
)

// Server holds the API server state
type Server struct {
	store   IRecordStore
	config  ServerConfig
	metrics *Metrics
	log     *slog.Logger
}

// NewServer creates a new API server
func NewServer(store IRecordStore, config ServerConfig, metrics *Metrics) *Server {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	if config.DefaultPurpose == "" {
		config.DefaultPurpose = bdir.PurposeAuth
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// readRecord resolves the modality selector and reads the request body. It
// has already answered the request when ok is false.
func (s *Server) readRecord(w http.ResponseWriter, r *http.Request) (sel interchange.Selector, data []byte, ok bool) {
	sel, err := interchange.ParseSelector(chi.URLParam(r, "modality"), r.URL.Query().Get("version"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return sel, nil, false
	}

	data, err = io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Record exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return sel, nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return sel, nil, false
	}
	if len(data) == 0 {
		sendError(w, "Request body is empty", http.StatusBadRequest)
		return sel, nil, false
	}

	s.metrics.ObserveRecordSize(string(sel.Modality), len(data))
	return sel, data, true
}

func (s *Server) decode(sel interchange.Selector, data []byte, headerOnly bool) (*interchange.Decoded, error) {
	start := time.Now()
	d, err := interchange.Decode(data, sel, bdir.DecodeOptions{HeaderOnly: headerOnly, Logger: s.log})
	s.metrics.RecordCodecOperation("decode", string(sel.Modality), err == nil, time.Since(start))
	return d, err
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	headerOnly := s.config.HeaderOnly
	if v := r.URL.Query().Get("header_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			sendError(w, "Invalid header_only value", http.StatusBadRequest)
			return
		}
		headerOnly = b
	}

	sel, data, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	d, err := s.decode(sel, data, headerOnly)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to decode record: %v", err), http.StatusUnprocessableEntity)
		return
	}
	sendSuccess(w, d.Summary())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	purpose := s.config.DefaultPurpose
	if v := r.URL.Query().Get("purpose"); v != "" {
		p, err := bdir.ParsePurpose(v)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		purpose = p
	}

	sel, data, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	d, err := s.decode(sel, data, false)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to decode record: %v", err), http.StatusUnprocessableEntity)
		return
	}

	start := time.Now()
	err = d.Validate(purpose)
	s.metrics.RecordCodecOperation("validate", string(sel.Modality), err == nil, time.Since(start))

	result := ValidationResult{Valid: err == nil, Purpose: purpose, Summary: d.Summary()}
	if err != nil {
		errs, isMap := err.(errsx.Map)
		if !isMap {
			sendError(w, fmt.Sprintf("Failed to validate record: %v", err), http.StatusUnprocessableEntity)
			return
		}
		result.Errors = fieldErrors(errs)
		fields := make([]string, 0, len(result.Errors))
		for field := range result.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		s.metrics.RecordValidationFailures(string(sel.Modality), fields)
	}
	sendSuccess(w, result)
}

func fieldErrors(errs errsx.Map) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = fmt.Sprint(err)
	}
	return out
}

func (s *Server) handleStoreRecord(w http.ResponseWriter, r *http.Request) {
	sel, data, ok := s.readRecord(w, r)
	if !ok {
		return
	}
	d, err := s.decode(sel, data, false)
	if err != nil {
		sendError(w, fmt.Sprintf("Refusing to store undecodable record: %v", err), http.StatusUnprocessableEntity)
		return
	}

	start := time.Now()
	_, meta, err := s.store.Put(sel.Modality, data)
	s.metrics.RecordStorageOperation("put", err == nil, time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to store record: %v", err), http.StatusInternalServerError)
		return
	}
	s.log.Info("stored record", "id", meta.ID, "modality", meta.Modality, "size", meta.Size)
	sendSuccess(w, StoredRecord{Meta: meta, Summary: d.Summary()})
}

// storageError answers a failed archive lookup.
func storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "Record not found", http.StatusNotFound)
	default:
		sendError(w, fmt.Sprintf("Storage error: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		storageError(w, err)
		return
	}

	start := time.Now()
	data, err := s.store.Get(id)
	s.metrics.RecordStorageOperation("get", err == nil, time.Since(start))
	if err != nil {
		storageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleGetMeta(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		storageError(w, err)
		return
	}

	start := time.Now()
	meta, err := s.store.Meta(id)
	s.metrics.RecordStorageOperation("meta", err == nil, time.Since(start))
	if err != nil {
		storageError(w, err)
		return
	}
	sendSuccess(w, meta)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		storageError(w, err)
		return
	}

	start := time.Now()
	err = s.store.Delete(id)
	s.metrics.RecordStorageOperation("delete", err == nil, time.Since(start))
	if err != nil {
		storageError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"deleted": id.String()})
}
