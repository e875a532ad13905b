package tsgraph

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
)

// jsonAPI is the shared jsoniter configuration used for canonical
// ToString rendering; compatible with encoding/json tag semantics.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// RegisterBuiltinScalars registers the scalar TypeMetas that ship with
// the package: bool, int64, float64, string and EngineTime. Host
// applications call this once against their Registry before constructing
// any AnyValue or TSType; user-defined scalar types are registered the
// same way via RegisterScalar.
func RegisterBuiltinScalars(r *Registry) error {
	if _, err := RegisterScalar[bool](r, FlagEquatable|FlagComparable|FlagHashable|FlagTriviallyCopyable, ScalarOps{
		TypeName: "bool",
		Equals:   func(a, b any) bool { return a.(bool) == b.(bool) },
		Less: func(a, b any) (bool, bool) {
			av, bv := a.(bool), b.(bool)
			return !av && bv, true
		},
		Hash: func(a any) (uint64, bool) {
			if a.(bool) {
				return 1, true
			}
			return 0, true
		},
		ToString: func(a any) string { return strconv.FormatBool(a.(bool)) },
	}); err != nil {
		return err
	}

	if _, err := RegisterScalar[int64](r, FlagEquatable|FlagComparable|FlagHashable|FlagTriviallyCopyable|FlagArithmetic|FlagIntegral, ScalarOps{
		TypeName: "int64",
		Equals:   func(a, b any) bool { return a.(int64) == b.(int64) },
		Less:     func(a, b any) (bool, bool) { return a.(int64) < b.(int64), true },
		Hash: func(a any) (uint64, bool) {
			return xxhash.Sum64String(strconv.FormatInt(a.(int64), 10)), true
		},
		ToString: func(a any) string { return strconv.FormatInt(a.(int64), 10) },
		Arithmetic: &ArithmeticOps{
			Add: func(a, b any) (any, error) { return a.(int64) + b.(int64), nil },
			Sub: func(a, b any) (any, error) { return a.(int64) - b.(int64), nil },
			Mul: func(a, b any) (any, error) { return a.(int64) * b.(int64), nil },
			Div: func(a, b any) (any, error) {
				if b.(int64) == 0 {
					return nil, ErrEmptyValue
				}
				return a.(int64) / b.(int64), nil
			},
		},
	}); err != nil {
		return err
	}

	if _, err := RegisterScalar[float64](r, FlagEquatable|FlagComparable|FlagHashable|FlagTriviallyCopyable|FlagArithmetic, ScalarOps{
		TypeName: "float64",
		Equals:   func(a, b any) bool { return a.(float64) == b.(float64) },
		Less:     func(a, b any) (bool, bool) { return a.(float64) < b.(float64), true },
		Hash: func(a any) (uint64, bool) {
			return xxhash.Sum64String(strconv.FormatFloat(a.(float64), 'g', -1, 64)), true
		},
		ToString: func(a any) string { return strconv.FormatFloat(a.(float64), 'g', -1, 64) },
		Arithmetic: &ArithmeticOps{
			Add: func(a, b any) (any, error) { return a.(float64) + b.(float64), nil },
			Sub: func(a, b any) (any, error) { return a.(float64) - b.(float64), nil },
			Mul: func(a, b any) (any, error) { return a.(float64) * b.(float64), nil },
			Div: func(a, b any) (any, error) { return a.(float64) / b.(float64), nil },
		},
	}); err != nil {
		return err
	}

	if _, err := RegisterScalar[string](r, FlagEquatable|FlagComparable|FlagHashable, ScalarOps{
		TypeName: "string",
		Equals:   func(a, b any) bool { return a.(string) == b.(string) },
		Less:     func(a, b any) (bool, bool) { return a.(string) < b.(string), true },
		Hash:     func(a any) (uint64, bool) { return xxhash.Sum64String(a.(string)), true },
		ToString: func(a any) string { return a.(string) },
	}); err != nil {
		return err
	}

	if _, err := RegisterScalar[EngineTime](r, FlagEquatable|FlagComparable|FlagHashable|FlagTriviallyCopyable, ScalarOps{
		TypeName: "EngineTime",
		Equals:   func(a, b any) bool { return a.(EngineTime) == b.(EngineTime) },
		Less:     func(a, b any) (bool, bool) { return a.(EngineTime) < b.(EngineTime), true },
		Hash: func(a any) (uint64, bool) {
			return xxhash.Sum64String(strconv.FormatInt(int64(a.(EngineTime)), 10)), true
		},
		ToString: func(a any) string { return a.(EngineTime).String() },
		ToNative: func(a any) (any, error) { return a.(EngineTime).Time(), nil },
		FromNative: func(native any) (any, error) {
			t, ok := native.(time.Time)
			if !ok {
				return nil, ErrTypeMismatch
			}
			return NewEngineTime(t), nil
		},
	}); err != nil {
		return err
	}

	return nil
}

// toJSONString renders v as compact JSON using the shared jsoniter
// configuration, falling back to fmt's %v if the value cannot be
// marshaled (e.g. it holds a function or channel).
func toJSONString(v any) string {
	b, err := jsonAPI.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
