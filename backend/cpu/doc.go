// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - gonum BLAS (SGEMM/DGEMM) for matrix products
//   - Float32 and Float64 support, integer kernels where they make sense
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/pixelnet/backend/cpu"
//	    "github.com/born-ml/pixelnet/nn"
//	    "github.com/born-ml/pixelnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 28, 28}, backend)
//	    y := nn.NewPixelRescale[*cpu.Backend]().Forward(x)
//	}
package cpu
