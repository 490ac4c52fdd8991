package configuration

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
	timeType            = reflect.TypeOf(time.Time{})
)

func GetBool(config IConfiguration, key string) bool {
	v, _ := TryGetBool(config, key)
	return v
}

func TryGetBool(config IConfiguration, key string) (bool, bool) {
	v, ok := config.TryGet(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}

func GetInt64(config IConfiguration, key string) int64 {
	nv, _ := TryGetInt64(config, key)
	return nv
}

func TryGetInt64(config IConfiguration, key string) (int64, bool) {
	v, ok := config.TryGet(key)
	if !ok {
		return 0, false
	}
	nv, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return nv, true
}

func TryGetUint64(config IConfiguration, key string) (uint64, bool) {
	v, ok := config.TryGet(key)
	if !ok {
		return 0, false
	}
	nv, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return nv, true
}

func TryGetFloat64(config IConfiguration, key string) (float64, bool) {
	v, ok := config.TryGet(key)
	if !ok {
		return 0, false
	}
	nv, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return nv, true
}

// Get binds the section at path to a new T, fields that cannot be bound keep their zero value.
func Get[T any](root IConfiguration, path string) T {
	ty := reflect.TypeOf((*T)(nil)).Elem()
	return GetByType(ty, root, path).(T)
}

func GetByType(ty reflect.Type, root IConfiguration, path string) any {
	val := reflect.New(ty).Elem()
	_ = fillValue(val, root, path)
	return val.Interface()
}

// Fill binds the section at path into out, which must be a non-nil pointer.
func Fill(root IConfiguration, path string, out any) error {
	pv := reflect.ValueOf(out)
	if pv.Kind() != reflect.Pointer || pv.IsNil() {
		return fmt.Errorf("configuration: fill target must be a non-nil pointer, got %T", out)
	}
	return fillValue(pv.Elem(), root, path)
}

func fillValue(val reflect.Value, config IConfiguration, key string) error {
	ty := val.Type()

	if ty != timeType && reflect.PointerTo(ty).Implements(textUnmarshalerType) {
		if v, ok := config.TryGet(key); ok {
			if err := val.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("configuration: key %s: %w", key, err)
			}
		}
		return nil
	}

	if ty == durationType {
		if v, ok := config.TryGet(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("configuration: key %s: %w", key, err)
			}
			val.SetInt(int64(d))
		}
		return nil
	}

	switch ty.Kind() {
	case reflect.String:
		if v, ok := config.TryGet(key); ok {
			val.SetString(v)
		}
	case reflect.Bool:
		if v, ok := TryGetBool(config, key); ok {
			val.SetBool(v)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, ok := TryGetInt64(config, key); ok {
			val.SetInt(v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v, ok := TryGetUint64(config, key); ok {
			val.SetUint(v)
		}
	case reflect.Float32, reflect.Float64:
		if v, ok := TryGetFloat64(config, key); ok {
			val.SetFloat(v)
		}
	case reflect.Map:
		return fillMap(ty, val, config, key)
	case reflect.Pointer:
		pv := reflect.New(ty.Elem())
		if err := fillValue(pv.Elem(), config, key); err != nil {
			return err
		}
		val.Set(pv)
	case reflect.Slice:
		section := config.GetSection(key)
		children := section.GetChildren()
		slice := reflect.MakeSlice(ty, 0, children.Len())
		for i := 0; i < children.Len(); i++ {
			sv := reflect.New(ty.Elem()).Elem()
			if err := fillValue(sv, section, strconv.Itoa(i)); err != nil {
				return err
			}
			slice = reflect.Append(slice, sv)
		}
		val.Set(slice)
	case reflect.Struct:
		return fillStruct(ty, val, config, key)
	default:
		return fmt.Errorf("configuration: unsupported type %v at key %s", ty, key)
	}
	return nil
}

func fillMap(ty reflect.Type, val reflect.Value, config IConfiguration, key string) error {
	mapSection := config.GetSection(key)
	m := reflect.MakeMap(ty)
	for _, child := range mapSection.GetChildren() {
		mKey := child.GetKey()
		k := reflect.New(ty.Key()).Elem()
		switch ty.Key().Kind() {
		case reflect.String:
			k.SetString(mKey)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v, err := strconv.ParseInt(mKey, 10, 64)
			if err != nil {
				return fmt.Errorf("configuration: map key %s: %w", mKey, err)
			}
			k.SetInt(v)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v, err := strconv.ParseUint(mKey, 10, 64)
			if err != nil {
				return fmt.Errorf("configuration: map key %s: %w", mKey, err)
			}
			k.SetUint(v)
		default:
			return fmt.Errorf("configuration: unsupported map key type %v", ty.Key())
		}

		v := reflect.New(ty.Elem()).Elem()
		if err := fillValue(v, mapSection, mKey); err != nil {
			return err
		}
		m.SetMapIndex(k, v)
	}
	val.Set(m)
	return nil
}

func fillStruct(ty reflect.Type, val reflect.Value, config IConfiguration, key string) error {
	if ty == timeType {
		if v, ok := config.TryGet(key); ok {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("configuration: key %s: %w", key, err)
			}
			val.Set(reflect.ValueOf(t))
		}
		return nil
	}

	section := config
	if len(key) > 0 {
		section = config.GetSection(key)
	}

	vs := reflect.New(ty).Elem()
	vs.Set(val)
	for i := 0; i < ty.NumField(); i++ {
		ft := ty.Field(i)
		if !ft.IsExported() {
			continue
		}

		fName := ft.Tag.Get("snow")
		if fName == "" {
			fName = ft.Name
		}
		if err := fillValue(vs.Field(i), section, fName); err != nil {
			return err
		}
	}

	val.Set(vs)
	return nil
}
