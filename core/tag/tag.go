package tag

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const tagName = "default"

// Error types for tag processing
var (
	ErrTargetMustBePointer = errors.New("target must be a pointer to a struct")
	ErrUnsupportedType     = errors.New("unsupported type")
)

// FieldError wraps a parse failure with the dotted path of the field
type FieldError struct {
	Path  string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: default %q: %v", e.Path, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ApplyDefaults sets zero-valued fields of the struct pointed to by target
// from their `default` tags. Nested structs and non-nil struct pointers are
// walked; fields that already hold a value are left alone.
//
// Example:
//
//	type ServerConfig struct {
//	    Addr    string        `default:":8080"`
//	    Timeout time.Duration `default:"5s"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTargetMustBePointer
	}
	return applyStruct(v.Elem(), "")
}

func applyStruct(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		switch {
		case fv.Kind() == reflect.Struct && !isTextUnmarshaler(fv):
			if err := applyStruct(fv, path); err != nil {
				return err
			}
			continue
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
			if !fv.IsNil() {
				if err := applyStruct(fv.Elem(), path); err != nil {
					return err
				}
			}
			continue
		}

		value, ok := field.Tag.Lookup(tagName)
		if !ok || !fv.IsZero() {
			continue
		}
		if err := parse(fv, value); err != nil {
			return &FieldError{Path: path, Value: value, Err: err}
		}
	}
	return nil
}

func isTextUnmarshaler(v reflect.Value) bool {
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

// parse sets v from its textual default
func parse(v reflect.Value, s string) error {
	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(s))
	}

	s = strings.TrimSpace(s)
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return ErrUnsupportedType
		}
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		v.Set(reflect.ValueOf(parts).Convert(v.Type()))
	default:
		return ErrUnsupportedType
	}
	return nil
}
