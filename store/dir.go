/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir is a directory-backed Interface implementation used by the CLI to
// keep drift baselines between invocations. Keys are hex-encoded into
// filenames so arbitrary key strings stay filesystem-safe.
type Dir struct {
	root string
}

// NewDir returns a store rooted at dir, creating it if needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Dir{root: dir}, nil
}

const fileSuffix = ".v"

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, hex.EncodeToString([]byte(key))+fileSuffix)
}

// Get implements Interface.
func (d *Dir) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %q: %w", key, err)
	}
	return b, true, nil
}

// Put implements Interface.
func (d *Dir) Put(_ context.Context, key string, value []byte) error {
	tmp := d.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	if err := os.Rename(tmp, d.path(key)); err != nil {
		return fmt.Errorf("committing %q: %w", key, err)
	}
	return nil
}

// List implements Interface.
func (d *Dir) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		raw, err := hex.DecodeString(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			continue // not one of ours
		}
		if key := string(raw); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
