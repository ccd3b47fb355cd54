// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the pipeline stages of a pixelnet classifier.
//
// # Overview
//
// Every stage implements Module: a pure Forward transform plus a declared
// OutputShape, which Sequential uses to reject incompatible stages when
// the pipeline is assembled rather than when data first flows.
//
// Available stages:
//   - Rescale: divides by a constant (255 for pixel intensities)
//   - Flatten: collapses non-batch dimensions
//   - Linear and Dense: affine layers, Dense with an optional activation
//   - ReLU, Sigmoid, Softmax
//
// # Basic Usage
//
//	type B = *cpu.Backend
//	backend := cpu.New()
//
//	hidden, _ := nn.NewDense(784, 128, nn.ActivationReLU, backend, nil)
//	output, _ := nn.NewDense(128, 10, nn.ActivationSigmoid, backend, nil)
//
//	model, err := nn.NewSequential[B](tensor.Shape{28, 28},
//	    nn.NewPixelRescale[B](), nn.NewFlatten[B](), hidden, output)
//	if err != nil {
//	    // a stage cannot consume its predecessor's output
//	}
//	scores, err := model.Apply(pixels) // [batch, 10]
package nn
