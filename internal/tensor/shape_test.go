package tensor

import (
	"testing"
)

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
		name  string
	}{
		{Float32, 4, "float32"},
		{Float64, 8, "float64"},
		{Int32, 4, "int32"},
		{Int64, 8, "int64"},
		{Uint8, 1, "uint8"},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.name, got, tt.size)
		}
		if got := tt.dtype.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}

	if DataTypeOf[uint8]() != Uint8 || DataTypeOf[float32]() != Float32 {
		t.Error("DataTypeOf returned the wrong runtime type")
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		elements int
		strides  []int
		str      string
	}{
		{"scalar", Shape{}, 1, []int{}, "()"},
		{"vector", Shape{10}, 10, []int{1}, "(10,)"},
		{"image", Shape{28, 28}, 784, []int{28, 1}, "(28, 28)"},
		{"batch", Shape{2, 28, 28}, 1568, []int{784, 28, 1}, "(2, 28, 28)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.NumElements(); got != tt.elements {
				t.Errorf("NumElements() = %d, want %d", got, tt.elements)
			}
			strides := tt.shape.ComputeStrides()
			if len(strides) != len(tt.strides) {
				t.Fatalf("ComputeStrides() = %v, want %v", strides, tt.strides)
			}
			for i := range strides {
				if strides[i] != tt.strides[i] {
					t.Errorf("ComputeStrides() = %v, want %v", strides, tt.strides)
				}
			}
			if got := tt.shape.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{1, 28, 28}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Shape{28, 0}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestShapeCloneAndBatch(t *testing.T) {
	s := Shape{28, 28}
	c := s.Clone()
	c[0] = 1
	if s[0] != 28 {
		t.Error("Clone() must not alias the original")
	}

	assertEqualShape(t, Shape{32, 28, 28}, s.WithBatch(32), "WithBatch")
	assertEqualShape(t, Shape{28, 28}, s, "WithBatch must not modify receiver")
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{4, 10}, Shape{1, 10}, Shape{4, 10}, true, false},
		{Shape{4, 10}, Shape{10}, Shape{4, 10}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) expected error", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			continue
		}
		assertEqualShape(t, tt.want, got, "BroadcastShapes")
		if broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
		}
	}
}

func TestRawTensorView(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), []float32{1, 2, 3, 4, 5, 6})

	view, err := raw.View(Shape{6})
	if err != nil {
		t.Fatal(err)
	}
	view.AsFloat32()[0] = 9
	if raw.AsFloat32()[0] != 9 {
		t.Error("View() must share the buffer")
	}

	if _, err := raw.View(Shape{5}); err == nil {
		t.Error("View() with wrong element count must fail")
	}

	clone := raw.Clone()
	clone.AsFloat32()[1] = 42
	if raw.AsFloat32()[1] != 2 {
		t.Error("Clone() must deep copy")
	}
}

func TestRawTensorDTypeGuard(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Uint8, CPU)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on a uint8 tensor must panic")
		}
	}()
	_ = raw.AsFloat32()
}
