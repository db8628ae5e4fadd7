/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package store provides the key/value abstraction injected into components
// that need to remember state between runs, such as drift baselines. The
// evaluation core itself stays stateless; callers choose an implementation.
package store

import "context"

// Interface is a minimal get/put/list contract over opaque keys.
type Interface interface {
	// Get returns the value for key, with false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error
	// List returns all keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
