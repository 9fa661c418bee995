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

// Package store persists field elements as YAML records and restores them
// through a registry, so independently serialized elements of the same
// mathematical field deserialize onto the identical canonical handle.
//
// The persisted form is textual and exact: the defining polynomial, the
// generator variable, an isolating-interval string, and the element's
// rational coefficient vector. Coefficients round-trip losslessly; the
// interval is re-validated against the polynomial's root set on restore.
package store

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
	"dirpx.dev/renf/utils/decimal"
)

var (
	// ErrNilRegistry is returned when restoring without a registry.
	ErrNilRegistry = errors.New("renf(store): nil registry provided")
	// ErrNilElement is returned when snapshotting a nil element.
	ErrNilElement = errors.New("renf(store): nil element provided")
)

// Record is the persisted form of one field element.
type Record struct {
	// Polynomial is the defining polynomial in the generator variable,
	// e.g. "a^2 - 2".
	Polynomial string `yaml:"polynomial"`
	// Variable is the generator symbol.
	Variable string `yaml:"variable"`
	// Interval is the isolating-interval string in "[c +/- r]" syntax.
	Interval string `yaml:"interval"`
	// Coefficients is the element's exact rational coefficient vector in the
	// power basis, ascending degree.
	Coefficients []string `yaml:"coefficients"`
}

// Snapshot captures an element as a Record.
func Snapshot(e *field.Element) (Record, error) {
	if e == nil {
		return Record{}, ErrNilElement
	}
	f := e.Field()
	coeffs := e.Coefficients()
	out := make([]string, len(coeffs))
	for i, c := range coeffs {
		out[i] = c.RatString()
	}
	return Record{
		Polynomial:   f.MinimalPolynomial().String(f.Variable()),
		Variable:     f.Variable(),
		Interval:     f.IsolatingBall().String(),
		Coefficients: out,
	}, nil
}

// Restore re-enters the registry with the record's field descriptor and
// encodes the stored coefficient vector against the canonical handle. Two
// independently restored elements of the same mathematical field share the
// identical handle.
func Restore(reg apis.Registry, rec Record) (*field.Element, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	p, err := poly.Parse(rec.Polynomial, rec.Variable)
	if err != nil {
		return nil, fmt.Errorf("renf(store): bad polynomial: %w", err)
	}
	b, err := ball.Parse(rec.Interval)
	if err != nil {
		return nil, fmt.Errorf("renf(store): bad interval: %w", err)
	}
	f, err := reg.GetOrCreate(apis.Embedding{Polynomial: p, Variable: rec.Variable, Approx: b})
	if err != nil {
		return nil, err
	}
	coeffs := make([]*big.Rat, len(rec.Coefficients))
	for i, s := range rec.Coefficients {
		if coeffs[i], err = decimal.Parse(s); err != nil {
			return nil, fmt.Errorf("renf(store): bad coefficient %q: %w", s, err)
		}
	}
	return f.Encode(coeffs)
}

// Save writes the elements as a YAML document to w.
func Save(w io.Writer, elems ...*field.Element) error {
	recs := make([]Record, len(elems))
	for i, e := range elems {
		rec, err := Snapshot(e)
		if err != nil {
			return err
		}
		recs[i] = rec
	}
	data, err := yaml.Marshal(recs)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load reads a YAML document of records from r.
func Load(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var recs []Record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// RestoreAll restores every record through the registry.
func RestoreAll(reg apis.Registry, recs []Record) ([]*field.Element, error) {
	out := make([]*field.Element, len(recs))
	for i, rec := range recs {
		e, err := Restore(reg, rec)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// SaveFile writes the elements to a YAML file, creating directories as needed.
func SaveFile(path string, elems ...*field.Element) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, elems...)
}

// LoadFile reads records from a YAML file.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
