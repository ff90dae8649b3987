// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrArtifactNotFound is returned by Load when no artifact exists at the path.
var ErrArtifactNotFound = errors.New("artifact not found")

// Metadata describes a stored artifact.
type Metadata struct {
	// ModelKind is the estimator family (e.g., "RandomForestClassifier").
	ModelKind string `json:"model_kind"`

	// Version is the model version tag.
	Version string `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// TrainSamples and TestSamples are the split sizes used for training.
	TrainSamples int `json:"train_samples"`
	TestSamples  int `json:"test_samples"`

	// Accuracy is the held-out accuracy.
	Accuracy float64 `json:"accuracy"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// envelope is the on-disk format.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

// FileStore persists a single artifact at a fixed path.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a store for the artifact at path, creating the parent
// directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("artifact path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the artifact location.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether an artifact has been saved.
func (s *FileStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := os.Stat(s.path)
	return err == nil
}

// Save serializes data and atomically replaces any existing artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *FileStore) Save(data interface{}, meta Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()        //nolint:errcheck // already failing
			_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		}
	}()

	if err := gob.NewEncoder(tmp).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	committed = true
	return nil
}

// Load decodes the stored artifact into target and returns its metadata.
func (s *FileStore) Load(target interface{}) (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, err := s.readEnvelope()
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != env.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", env.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	return &env.Metadata, nil
}

// Metadata returns the stored artifact's metadata without decoding the payload.
func (s *FileStore) Metadata() (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, err := s.readEnvelope()
	if err != nil {
		return nil, err
	}
	return &env.Metadata, nil
}

// Delete removes the artifact. Deleting a missing artifact is not an error.
func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (s *FileStore) readEnvelope() (*envelope, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return &env, nil
}
