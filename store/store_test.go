/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package store_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/config"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
	"dirpx.dev/renf/registry"
	"dirpx.dev/renf/resolver"
	"dirpx.dev/renf/store"
)

func newRegistry(t *testing.T) apis.Registry {
	t.Helper()
	reg, err := registry.New(config.DefaultConfig(), resolver.New())
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return reg
}

func sqrt2Handle(t *testing.T, reg apis.Registry) *field.Field {
	t.Helper()
	p, err := poly.Parse("a^2 - 2", "a")
	if err != nil {
		t.Fatalf("poly.Parse: %v", err)
	}
	b, err := ball.Parse("[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("ball.Parse: %v", err)
	}
	f, err := reg.GetOrCreate(apis.Embedding{Polynomial: p, Variable: "a", Approx: b})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	return f
}

func TestSnapshot(t *testing.T) {
	reg := newRegistry(t)
	f := sqrt2Handle(t, reg)
	e, err := f.Encode("a + 1/2")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec, err := store.Snapshot(e)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if rec.Polynomial != "a^2 - 2" {
		t.Fatalf("Polynomial = %q, want %q", rec.Polynomial, "a^2 - 2")
	}
	if rec.Variable != "a" {
		t.Fatalf("Variable = %q, want %q", rec.Variable, "a")
	}
	if len(rec.Coefficients) != 2 || rec.Coefficients[0] != "1/2" || rec.Coefficients[1] != "1" {
		t.Fatalf("Coefficients = %v, want [1/2 1]", rec.Coefficients)
	}
	if rec.Interval == "" {
		t.Fatalf("Interval must not be empty")
	}

	if _, err := store.Snapshot(nil); !errors.Is(err, store.ErrNilElement) {
		t.Fatalf("Snapshot(nil): want ErrNilElement, got %v", err)
	}
}

func TestRestore_CanonicalHandle(t *testing.T) {
	reg := newRegistry(t)
	f := sqrt2Handle(t, reg)
	e, err := f.Encode("a + 1/2")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec, err := store.Snapshot(e)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	got, err := store.Restore(reg, rec)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	// Same registry: same canonical handle, equal element.
	if got.Field() != f {
		t.Fatalf("restored element landed on a different handle")
	}
	if ok, err := got.Equal(e); err != nil || !ok {
		t.Fatalf("restored element differs: ok=%v err=%v", ok, err)
	}

	if _, err := store.Restore(nil, rec); !errors.Is(err, store.ErrNilRegistry) {
		t.Fatalf("Restore(nil): want ErrNilRegistry, got %v", err)
	}
}

func TestRestore_FreshRegistryInteroperates(t *testing.T) {
	// Serialize from one registry, restore twice into a fresh one: both
	// restored elements must share a handle and interoperate.
	src := newRegistry(t)
	f := sqrt2Handle(t, src)
	g := f.Gen()
	one := f.One()
	gPlusOne, err := g.Add(one)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	recG, err := store.Snapshot(g)
	if err != nil {
		t.Fatalf("Snapshot(g): %v", err)
	}
	recSum, err := store.Snapshot(gPlusOne)
	if err != nil {
		t.Fatalf("Snapshot(g+1): %v", err)
	}

	dst := newRegistry(t)
	a, err := store.Restore(dst, recG)
	if err != nil {
		t.Fatalf("Restore(g): %v", err)
	}
	b, err := store.Restore(dst, recSum)
	if err != nil {
		t.Fatalf("Restore(g+1): %v", err)
	}
	if a.Field() != b.Field() {
		t.Fatalf("independently restored elements landed on distinct handles")
	}
	diff, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if ok, err := diff.Equal(a.Field().One()); err != nil || !ok {
		t.Fatalf("(g+1) - g != 1 after restore: ok=%v err=%v", ok, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg := newRegistry(t)
	f := sqrt2Handle(t, reg)
	e1, err := f.Encode("a + 1")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	e2, err := f.Encode("-22/7")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var buf bytes.Buffer
	if err := store.Save(&buf, e1, e2); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recs, err := store.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Load: got %d records, want 2", len(recs))
	}

	restored, err := store.RestoreAll(reg, recs)
	if err != nil {
		t.Fatalf("RestoreAll: %v", err)
	}
	for i, want := range []*field.Element{e1, e2} {
		if ok, err := restored[i].Equal(want); err != nil || !ok {
			t.Fatalf("record %d differs after round trip: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestSaveLoadFile(t *testing.T) {
	reg := newRegistry(t)
	f := sqrt2Handle(t, reg)
	e, err := f.Encode("a - 3")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "elements.yaml")
	if err := store.SaveFile(path, e); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	recs, err := store.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("LoadFile: got %d records, want 1", len(recs))
	}
	got, err := store.Restore(reg, recs[0])
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if ok, err := got.Equal(e); err != nil || !ok {
		t.Fatalf("file round trip differs: ok=%v err=%v", ok, err)
	}
}

func TestRestore_BadRecords(t *testing.T) {
	reg := newRegistry(t)

	if _, err := store.Restore(reg, store.Record{Polynomial: "???", Variable: "a", Interval: "[1.4 +/- 0.1]"}); err == nil {
		t.Fatalf("bad polynomial must fail")
	}
	if _, err := store.Restore(reg, store.Record{Polynomial: "a^2 - 2", Variable: "a", Interval: "oops"}); err == nil {
		t.Fatalf("bad interval must fail")
	}
	if _, err := store.Restore(reg, store.Record{
		Polynomial: "a^2 - 2", Variable: "a", Interval: "[1.4 +/- 0.1]",
		Coefficients: []string{"x", "1"},
	}); err == nil {
		t.Fatalf("bad coefficient must fail")
	}
}
