// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for pixelnet pipelines.
//
// # Overview
//
// Tensors are the data that flows between pipeline stages:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for Add
//   - Zero-copy Reshape views
//   - Pure operations: results never alias or modify their inputs
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/pixelnet/tensor"
//	    "github.com/born-ml/pixelnet/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    pixels := tensor.Full[uint8](tensor.Shape{1, 28, 28}, 255, backend)
//	    x := tensor.Cast[uint8, float32](pixels)
//	    scaled := x.DivScalar(255) // all 1.0
//	}
package tensor
