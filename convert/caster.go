package convert

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"proto-schematic/internal/common"
	"proto-schematic/proto"
	"proto-schematic/utils"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrInputType            = errors.New("input value has the wrong type")
)

var (
	contextType = reflect.TypeFor[proto.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Converter turns a field Input value into its Output value.
type Converter interface {
	Convert(input any, ctx proto.Context) (any, error)
}

// ConverterFunc adapts an untyped function to Converter.
type ConverterFunc func(input any, ctx proto.Context) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(input any, ctx proto.Context) (any, error) {
	return f(input, ctx)
}

// Func adapts a typed conversion to Converter. Inputs of another type are
// rejected with ErrInputType.
func Func[In, Out any](fn func(In, proto.Context) (Out, error)) Converter {
	return ConverterFunc(func(input any, ctx proto.Context) (any, error) {
		in, ok := input.(In)
		if !ok {
			return nil, fmt.Errorf("%w: got %T, want %s", ErrInputType, input, reflect.TypeFor[In]())
		}

		return fn(in, ctx)
	})
}

// Caster describes a conversion function inspected by ParseCaster.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasContext   bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects fn and returns a Caster if it is a valid conversion.
//
// Supports signatures:
//   - func(src In) Out
//   - func(src In) (Out, error)
//   - func(src In, ctx proto.Context) Out
//   - func(src In, ctx proto.Context) (Out, error)
func ParseCaster(fn any) (Caster, error) {
	if fn == nil {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()

	if fnType.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	if fnType.IsVariadic() || fnType.NumIn() == 0 || fnType.NumIn() > 2 || fnType.NumOut() == 0 {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}
	caster.PackageAlias, caster.Name = funcName(fnVal)

	if fnType.NumIn() == 2 {
		if fnType.In(1) != contextType {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasContext = true
	}

	switch fnType.NumOut() {
	case 1:
		return caster, nil
	case 2:
		if !isError(fnType.Out(1)) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasErr = true

		return caster, nil
	default:
		return Caster{}, ErrIsNotACaster
	}
}

func funcName(fnVal reflect.Value) (alias, name string) {
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	if fnPC == nil {
		return "", ""
	}

	pkg, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	return common.PkgAlias(pkg), name
}

// FuncCall returns "alias.Name" for named functions.
func (c Caster) FuncCall() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

// Convert implements Converter by calling the inspected function.
func (c Caster) Convert(input any, ctx proto.Context) (any, error) {
	in, err := c.argument(input)
	if err != nil {
		return nil, err
	}

	args := []reflect.Value{in}
	if c.HasContext {
		ctxVal := reflect.New(contextType).Elem()
		if ctx != nil {
			ctxVal.Set(reflect.ValueOf(ctx))
		}

		args = append(args, ctxVal)
	}

	out := c.fn.Call(args)

	if c.HasErr {
		if errVal := out[1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}

	return out[0].Interface(), nil
}

func (c Caster) argument(input any) (reflect.Value, error) {
	if input == nil {
		switch c.Src.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
			return reflect.Zero(c.Src), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: got nil, want %s", ErrInputType, c.Src)
		}
	}

	in := reflect.ValueOf(input)
	if !in.Type().AssignableTo(c.Src) {
		return reflect.Value{}, fmt.Errorf("%w: got %s, want %s", ErrInputType, in.Type(), c.Src)
	}

	return in, nil
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}
