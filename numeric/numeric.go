// SPDX-License-Identifier: MIT

// Package numeric defines the element and index type sets shared by every
// sparse format in this module, plus explicit, fallible conversions between
// them.
//
// Purpose:
//   - Fix the element type at compile time through type parameters.
//   - Make every narrowing conversion an explicit call that returns ErrCast
//     instead of silently wrapping or truncating.
//
// Complexity quicksheet:
//   - KindOf / IsSigned: O(1); Cast: O(1); CastSlice / ToInt32: O(n).
package numeric

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrCast is returned when a value cannot be represented in the target type
// (overflow, NaN/Inf to integer, fractional float to integer).
var ErrCast = errors.New("numeric: value not representable in target type")

// Signed is the set of signed integer element types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types. They are accepted for index
// arrays only and are normalized to int32 on ingestion.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the set of floating-point element types.
type Float interface {
	~float32 | ~float64
}

// Scalar is the set of element types a sparse matrix may store.
type Scalar interface {
	Signed | Float
}

// Index is the set of integer types accepted for indices/indptr arrays.
type Index interface {
	Signed | Unsigned
}

// Kind is a compact tag of a Scalar's underlying representation.
// The numeric values are part of the snapshot wire format; do not reorder.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindFloat32
	KindFloat64
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindInt:     "int",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

// String returns the Go name of the underlying type.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// Size returns the encoded width in bytes (int is always encoded as 8 bytes).
func (k Kind) Size() int {
	switch k {
	case KindInt8:
		return 1
	case KindInt16:
		return 2
	case KindInt32, KindFloat32:
		return 4
	case KindInt64, KindInt, KindFloat64:
		return 8
	default:
		return 0
	}
}

// bounds returns the inclusive integer range of an integer kind.
func (k Kind) bounds() (lo, hi int64) {
	switch k {
	case KindInt8:
		return math.MinInt8, math.MaxInt8
	case KindInt16:
		return math.MinInt16, math.MaxInt16
	case KindInt32:
		return math.MinInt32, math.MaxInt32
	case KindInt:
		return math.MinInt, math.MaxInt
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// KindOf returns the Kind of T's underlying type. Named types such as
// `type Celsius float64` resolve to their underlying kind.
// Complexity: O(1).
func KindOf[T Scalar]() Kind {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Int:
		return KindInt
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// TypeName returns the Go type name of T (named types keep their own name).
func TypeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// IsSigned reports whether the index type I can hold negative values.
func IsSigned[I Index]() bool {
	return ^I(0) < 0
}

// Cast converts v from S to T, failing with ErrCast when the value does not
// survive the conversion.
//
// Implementation:
//   - Stage 1: float targets accept any finite value; a finite float64 that
//     overflows float32 is rejected.
//   - Stage 2: integer targets reject NaN/±Inf, fractional floats and values
//     outside the target's range.
//
// Complexity: O(1).
func Cast[S, T Scalar](v S) (T, error) {
	var zero T
	src, dst := KindOf[S](), KindOf[T]()

	if dst.IsFloat() {
		out := T(v)
		if dst == KindFloat32 && src.IsFloat() {
			f := float64(v)
			if !math.IsInf(f, 0) && !math.IsNaN(f) && math.IsInf(float64(out), 0) {
				return zero, fmt.Errorf("%w: %v overflows %s", ErrCast, v, dst)
			}
		}

		return out, nil
	}

	lo, hi := dst.bounds()
	if src.IsFloat() {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return zero, fmt.Errorf("%w: %v is not an integer", ErrCast, v)
		}
		// -lo == hi+1 is a power of two and therefore exact in float64.
		if f < float64(lo) || f >= -float64(lo) {
			return zero, fmt.Errorf("%w: %v overflows %s", ErrCast, v, dst)
		}

		return T(v), nil
	}

	i := int64(v)
	if i < lo || i > hi {
		return zero, fmt.Errorf("%w: %d overflows %s", ErrCast, i, dst)
	}

	return T(v), nil
}

// CastSlice converts every element of src, reporting the first failing position.
// Complexity: O(n) time, O(n) space.
func CastSlice[S, T Scalar](src []S) ([]T, error) {
	out := make([]T, len(src))
	for i, v := range src {
		c, err := Cast[S, T](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

// ToInt32 normalizes an index array of any integer type to int32.
// The result is always a fresh slice.
// Complexity: O(n) time, O(n) space.
func ToInt32[I Index](src []I) ([]int32, error) {
	signed := IsSigned[I]()
	out := make([]int32, len(src))
	for i, v := range src {
		if signed {
			x := int64(v)
			if x < math.MinInt32 || x > math.MaxInt32 {
				return nil, fmt.Errorf("index %d: %w: %d overflows int32", i, ErrCast, x)
			}
		} else if uint64(v) > math.MaxInt32 {
			return nil, fmt.Errorf("index %d: %w: %d overflows int32", i, ErrCast, uint64(v))
		}
		out[i] = int32(v)
	}

	return out, nil
}
