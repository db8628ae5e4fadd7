/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStores(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}

	stores := []struct {
		name string
		s    Interface
	}{{
		name: "memory",
		s:    NewMemory(),
	}, {
		name: "dir",
		s:    dir,
	}}

	for _, tt := range stores {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := tt.s.Get(ctx, "absent"); err != nil || ok {
				t.Fatalf("Get(absent) = ok=%v err=%v, want miss", ok, err)
			}

			if err := tt.s.Put(ctx, "baseline/gemini-2.5-flash", []byte(`{"r":0.91}`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := tt.s.Put(ctx, "baseline/claude-sonnet-4", []byte(`{"r":0.88}`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := tt.s.Put(ctx, "other/key", []byte("x")); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, ok, err := tt.s.Get(ctx, "baseline/gemini-2.5-flash")
			if err != nil || !ok {
				t.Fatalf("Get() = ok=%v err=%v, want hit", ok, err)
			}
			if string(got) != `{"r":0.91}` {
				t.Errorf("Get() = %q", got)
			}

			// Overwrite replaces.
			if err := tt.s.Put(ctx, "baseline/gemini-2.5-flash", []byte(`{"r":0.93}`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, _, _ = tt.s.Get(ctx, "baseline/gemini-2.5-flash")
			if string(got) != `{"r":0.93}` {
				t.Errorf("Get() after overwrite = %q", got)
			}

			keys, err := tt.s.List(ctx, "baseline/")
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			want := []string{"baseline/claude-sonnet-4", "baseline/gemini-2.5-flash"}
			if diff := cmp.Diff(want, keys); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
