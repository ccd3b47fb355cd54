// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/nn"
	"github.com/born-ml/pixelnet/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time checks that Backend implements the interfaces the
// pipeline stages rely on.
var (
	_ tensor.Backend    = (*Backend)(nil)
	_ nn.ReLUBackend    = (*Backend)(nil)
	_ nn.SigmoidBackend = (*Backend)(nil)
)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
