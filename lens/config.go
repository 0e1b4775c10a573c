// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lens

import (
	"bytes"
	"encoding/json"

	"github.com/lenscaustics/causticlens/lenserr"
	"github.com/lenscaustics/causticlens/march"
)

// defaultImageWidth is the physical width (user units) a target image
// is assumed to span when MetersPerPixel is left at its zero value
// (spec.md §6: "default imgWidth/(W+1) with imgWidth=0.1").
const defaultImageWidth = 0.1

// Config is the closed set of options spec.md §6 enumerates, following
// the teacher's inp.Data/inp.SolverData convention: a plain
// JSON-tagged struct with a SetDefault method and a Validate method
// that performs PostProcess-style cross-field checks.
type Config struct {
	Iterations       int     `json:"iterations"`
	RefractiveIndex  float64 `json:"refractive_index"`
	SolidifyOffset   float64 `json:"solidify_offset"`
	InnerTolerance   float64 `json:"inner_tolerance"`
	InnerMaxSweeps   int     `json:"inner_max_sweeps"`
	Omega            float64 `json:"omega"`
	MetersPerPixel   float64 `json:"meters_per_pixel"`
	FocalDistance    float64 `json:"focal_distance"`

	// RelaxCallbackEvery is the sweep cadence for the cooperative yield
	// point (spec.md §5, §9 "a caller-configurable cadence (default
	// every 100 sweeps)").
	RelaxCallbackEvery int `json:"relax_callback_every"`

	// QuadraticFormB selects which transcription of the Time-Step
	// Controller's coefficient B is used (spec.md §9, Open Question 1).
	QuadraticFormB march.BForm `json:"quadratic_form_b"`

	// Verbose gates the façade's own io.Pf lattice-build line. The
	// io.Pfgrey diagnostic lines printed by the relax, transport and
	// height stages are printed whatever its value.
	Verbose bool `json:"verbose"`
}

// SetDefault fills every field with the default spec.md §6 specifies.
// MetersPerPixel is left at 0 here since its default depends on the
// target image's width, which is not known until GenerateLens is
// called; resolveMetersPerPixel fills it in at that point.
func (c *Config) SetDefault() {
	c.Iterations = 4
	c.RefractiveIndex = 1.49
	c.SolidifyOffset = 10
	c.InnerTolerance = 1e-5
	c.InnerMaxSweeps = 10000
	c.Omega = 1.99
	c.MetersPerPixel = 0
	c.FocalDistance = 1.0
	c.RelaxCallbackEvery = 100
	c.QuadraticFormB = march.BFormAsGiven
	c.Verbose = false
}

// Validate performs the BadConfig checks of spec.md §7.
func (c *Config) Validate() error {
	switch {
	case c.Iterations < 1:
		return lenserr.New(lenserr.BadConfig, "iterations must be >= 1, got %d", c.Iterations)
	case c.RefractiveIndex <= 1:
		return lenserr.New(lenserr.BadConfig, "refractive_index must be > 1, got %v", c.RefractiveIndex)
	case c.SolidifyOffset <= 0:
		return lenserr.New(lenserr.BadConfig, "solidify_offset must be > 0, got %v", c.SolidifyOffset)
	case c.InnerTolerance <= 0:
		return lenserr.New(lenserr.BadConfig, "inner_tolerance must be > 0, got %v", c.InnerTolerance)
	case c.InnerMaxSweeps < 1:
		return lenserr.New(lenserr.BadConfig, "inner_max_sweeps must be >= 1, got %d", c.InnerMaxSweeps)
	case c.Omega <= 1 || c.Omega >= 2:
		return lenserr.New(lenserr.BadConfig, "omega must satisfy 1<omega<2, got %v", c.Omega)
	case c.FocalDistance <= 0:
		return lenserr.New(lenserr.BadConfig, "focal_distance must be > 0, got %v", c.FocalDistance)
	}
	return nil
}

// resolveMetersPerPixel returns c.MetersPerPixel if set, else the
// spec.md §6 default of imgWidth/(W+1) with imgWidth=0.1.
func (c *Config) resolveMetersPerPixel(w int) float64 {
	if c.MetersPerPixel > 0 {
		return c.MetersPerPixel
	}
	return defaultImageWidth / float64(w+1)
}

// DecodeConfig reads a Config from JSON, rejecting unknown fields so
// the config stays a closed record (spec.md §9). Fields absent from
// the JSON document keep the defaults already present in c; callers
// typically call c.SetDefault() before DecodeConfig.
func DecodeConfig(data []byte, c *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return lenserr.New(lenserr.BadConfig, "decode config: %v", err)
	}
	return nil
}
