package block

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// ErrUnknownParameter is returned when a settings map names a parameter the
// block does not declare.
var ErrUnknownParameter = errors.New("unknown parameter")

// Descriptor is the metadata attached to a parameter at construction time.
type Descriptor struct {
	Name    string // settings key, e.g. "n_samples_max"
	Display string // human readable name, e.g. "max samples"
	Unit    string // physical unit, e.g. "ms", "S/s"
	Doc     string
	Visible bool
}

// Parameter is the read/write handle exposed to the settings collaborator.
type Parameter interface {
	Descriptor() Descriptor
	Get() any
	Set(v any) error
}

// Annotated couples a parameter's current value with its descriptor.
// Blocks read and write Value directly; everything else goes through the
// Parameter interface on *Annotated.
type Annotated[T any] struct {
	Value T
	Meta  Descriptor
}

func (a *Annotated[T]) Descriptor() Descriptor { return a.Meta }

func (a *Annotated[T]) Get() any { return a.Value }

// Set converts v to T and stores it. Integer targets reject fractional
// values, overflow and sign changes. Float targets store the nearest
// representable value and reject only overflow. Complex targets accept any
// real or complex number.
func (a *Annotated[T]) Set(v any) error {
	tv, err := coerce[T](v)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Meta.Name, err)
	}
	a.Value = tv
	return nil
}

// ParamError reports a settings failure for one block parameter.
type ParamError struct {
	Block string
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("block %q parameter %q: %v", e.Block, e.Param, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Lookup returns the parameter with the given settings key.
func Lookup(b Block, name string) (Parameter, bool) {
	for _, p := range b.Parameters() {
		if p.Descriptor().Name == name {
			return p, true
		}
	}
	return nil, false
}

// Apply sets every entry of settings on b and then validates the block.
// It is all-or-nothing: on any failure the previous values are restored.
func Apply(b Block, settings map[string]any) error {
	if len(settings) == 0 {
		if v, ok := b.(Validator); ok {
			return v.Validate()
		}
		return nil
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type saved struct {
		p   Parameter
		old any
	}
	restore := make([]saved, 0, len(keys))
	rollback := func() {
		for i := len(restore) - 1; i >= 0; i-- {
			_ = restore[i].p.Set(restore[i].old)
		}
	}

	for _, k := range keys {
		p, ok := Lookup(b, k)
		if !ok {
			rollback()
			return &ParamError{Block: b.Name(), Param: k, Err: ErrUnknownParameter}
		}
		old := p.Get()
		if err := p.Set(settings[k]); err != nil {
			rollback()
			return &ParamError{Block: b.Name(), Param: k, Err: err}
		}
		restore = append(restore, saved{p: p, old: old})
	}
	if v, ok := b.(Validator); ok {
		if err := v.Validate(); err != nil {
			rollback()
			return fmt.Errorf("block %q: %w", b.Name(), err)
		}
	}
	return nil
}

func coerce[T any](v any) (T, error) {
	var zero T
	if tv, ok := v.(T); ok {
		return tv, nil
	}
	if v == nil {
		return zero, errors.New("nil value")
	}
	typ := reflect.TypeOf(&zero).Elem()
	src := reflect.ValueOf(v)
	dst := reflect.New(typ).Elem()

	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := asInt(src)
		if !ok || dst.OverflowInt(i) {
			return zero, fmt.Errorf("cannot represent %v (%T) as %s", v, v, typ)
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := asUint(src)
		if !ok || dst.OverflowUint(u) {
			return zero, fmt.Errorf("cannot represent %v (%T) as %s", v, v, typ)
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, ok := asFloat(src)
		if !ok || (!math.IsInf(f, 0) && dst.OverflowFloat(f)) {
			return zero, fmt.Errorf("cannot represent %v (%T) as %s", v, v, typ)
		}
		dst.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		var c complex128
		if src.Kind() == reflect.Complex64 || src.Kind() == reflect.Complex128 {
			c = src.Complex()
		} else if f, ok := asFloat(src); ok {
			c = complex(f, 0)
		} else {
			return zero, fmt.Errorf("cannot represent %v (%T) as %s", v, v, typ)
		}
		dst.SetComplex(c)
	default:
		if !src.Type().ConvertibleTo(typ) || src.Kind() != dst.Kind() {
			return zero, fmt.Errorf("expected %s, got %T", typ, v)
		}
		dst.Set(src.Convert(typ))
	}
	return dst.Interface().(T), nil
}

func asInt(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func asUint(v reflect.Value) (uint64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() < 0 {
			return 0, false
		}
		return uint64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
	return 0, false
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
