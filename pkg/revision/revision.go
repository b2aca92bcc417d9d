// Package revision records the saved revisions of an editor session as a
// content-addressed chain: each revision is hashed over the saved file and its parent's
// hash, so saving identical content on top of the same parent yields the same revision.
package revision

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/papercomputeco/buildx/pkg/workspace"
)

// Revision is a single saved state of a file.
type Revision struct {
	// Hash is the content-addressed identifier (SHA-256, hex-encoded)
	Hash string `json:"hash"`

	// ParentHash links to the previous revision. Nil for the first save.
	ParentHash *string `json:"parent_hash"`

	// File is the record that was persisted
	File workspace.FileContent `json:"file"`

	// SavedAt is not part of the hash
	SavedAt time.Time `json:"saved_at"`
}

type hashInput struct {
	Parent string                `json:"parent,omitempty"`
	File   workspace.FileContent `json:"file"`
}

// New creates a revision of file on top of parent.
func New(file workspace.FileContent, parent *Revision) *Revision {
	r := &Revision{
		File:    file,
		SavedAt: time.Now(),
	}

	if parent != nil {
		h := parent.Hash
		r.ParentHash = &h
	}

	r.Hash = r.computeHash()
	return r
}

func (r *Revision) computeHash() string {
	in := hashInput{File: r.File}
	if r.ParentHash != nil {
		in.Parent = *r.ParentHash
	}

	// Struct field order makes the encoding deterministic
	data, err := json.Marshal(in)
	if err != nil {
		panic("failed to marshal revision hash input: " + err.Error())
	}

	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 characters of the hash.
func (r *Revision) Short() string {
	if len(r.Hash) <= 12 {
		return r.Hash
	}
	return r.Hash[:12]
}
