package document

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/kailas-cloud/redisearch/internal/schema"
	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

var (
	geoPointType = reflect.TypeFor[GeoPoint]()
	timeType     = reflect.TypeFor[time.Time]()
)

// Populate fills the tagged struct pointed to by dst from a stored hash.
// The id goes to the `id` field; attributes missing from fields are left
// untouched. sch supplies tag separators and vector element types.
func Populate(sch *schema.Schema, id string, fields map[string]string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("populate: %T is not a non-nil pointer: %w", dst, ErrInvalidDocument)
	}
	meta, err := structMeta(dst)
	if err != nil {
		return err
	}
	v := indirect(rv)

	if meta.idIdx != -1 && id != "" {
		if err := setScalar(v.Field(meta.idIdx), id); err != nil {
			return fmt.Errorf("populate id: %w", err)
		}
	}
	for _, name := range meta.names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		f, _ := sch.Field(name)
		if err := setAttribute(v.Field(meta.attrs[name]), f, raw); err != nil {
			return fmt.Errorf("populate %q: %w", name, err)
		}
	}
	return nil
}

func setAttribute(fv reflect.Value, f field.Field, raw string) error {
	if fv.Kind() == reflect.Pointer {
		elem := reflect.New(fv.Type().Elem())
		if err := setAttribute(elem.Elem(), f, raw); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}

	switch fv.Type() {
	case geoPointType:
		p, err := DecodeGeo(raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(p))
		return nil
	case timeType:
		secs, err := DecodeFloat(raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(time.Unix(int64(secs), 0).UTC()))
		return nil
	}

	if fv.Kind() == reflect.Slice {
		return setSlice(fv, f, raw)
	}
	return setScalar(fv, raw)
}

func setSlice(fv reflect.Value, f field.Field, raw string) error {
	switch fv.Type().Elem().Kind() {
	case reflect.String:
		fv.Set(reflect.ValueOf(DecodeTags(raw, tagSeparator(f))).Convert(fv.Type()))
		return nil
	case reflect.Uint8:
		fv.SetBytes([]byte(raw))
		return nil
	case reflect.Float32, reflect.Float64:
		vals, err := decodeVector(f, raw)
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(fv.Type(), len(vals), len(vals))
		for i, x := range vals {
			out.Index(i).SetFloat(x)
		}
		fv.Set(out)
		return nil
	default:
		return fmt.Errorf("unsupported slice %s: %w", fv.Type(), ErrInvalidDocument)
	}
}

func decodeVector(f field.Field, raw string) ([]float64, error) {
	elem := field.Float32
	switch vf := f.(type) {
	case field.Vector:
		elem = vf.ElementType()
	case *field.Vector:
		elem = vf.ElementType()
	}
	if elem == field.Float64 {
		return DecodeVectorFloat64(raw)
	}
	narrow, err := DecodeVectorFloat32(raw)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(narrow))
	for i, x := range narrow {
		out[i] = float64(x)
	}
	return out, nil
}

func tagSeparator(f field.Field) string {
	switch tf := f.(type) {
	case field.Tag:
		return tf.EffectiveSeparator()
	case *field.Tag:
		return tf.EffectiveSeparator()
	case field.Text, *field.Text:
		return " "
	}
	return ""
}

func setScalar(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		fv.SetBool(DecodeBool(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			f, ferr := DecodeFloat(raw)
			if ferr != nil {
				return ferr
			}
			n = int64(f)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("decode unsigned %q: %w", raw, err)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := DecodeFloat(raw)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s: %w", fv.Type(), ErrInvalidDocument)
	}
	return nil
}
