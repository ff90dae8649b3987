// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package storage provides durable persistence for the trained classifier artifact.
//
// The artifact is serialized using Go's gob encoding, checksummed with SHA-256
// and gzip-compressed inside a small envelope that carries its metadata.
//
// # Atomicity
//
// Save writes to a temporary file in the artifact's directory, syncs it and
// renames it over the configured path. Readers therefore observe either the
// previous artifact or the new one, never a partial write.
//
// # Absence
//
// Load returns ErrArtifactNotFound when no artifact has been saved yet, which
// the classifier's startup step uses to decide whether to train.
package storage
