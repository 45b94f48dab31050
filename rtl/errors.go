// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl

// ConfigError reports an invalid construction-time parameter (a bit width,
// counter bound or stage count outside its legal range). It is only ever
// returned by constructors, never while ticking.
//
type ConfigError string

func (e ConfigError) Error() string { return "rtl: " + string(e) }

// Violation reports an input combination that the modeled hardware leaves
// undefined. A Violation is advisory: the design that detects it still picks
// the same deterministic next state every time and keeps ticking. Designs
// surface Violations through their OnAnomaly callback.
//
type Violation string

func (e Violation) Error() string { return "rtl: protocol violation: " + string(e) }
