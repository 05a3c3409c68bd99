package document

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

// GeoPoint is a longitude/latitude pair stored as "lon,lat".
type GeoPoint struct {
	Lon float64
	Lat float64
}

// String returns the engine's "lon,lat" form.
func (p GeoPoint) String() string {
	return formatFloat(p.Lon) + "," + formatFloat(p.Lat)
}

// Encode stringifies value for field f as FT.ADD expects it.
func Encode(f field.Field, value any) (string, error) {
	switch ft := f.(type) {
	case field.Vector:
		return encodeVector(ft, value)
	case *field.Vector:
		return encodeVector(*ft, value)
	case field.Geo, *field.Geo:
		return encodeGeo(f.Name(), value)
	case field.Tag:
		return encodeTag(ft, value)
	case *field.Tag:
		return encodeTag(*ft, value)
	case field.Numeric, *field.Numeric:
		return encodeNumeric(f.Name(), value)
	default:
		return encodeText(value), nil
	}
}

func encodeVector(f field.Vector, value any) (string, error) {
	switch v := value.(type) {
	case []float32:
		if f.ElementType() == field.Float64 {
			wide := make([]float64, len(v))
			for i, x := range v {
				wide[i] = float64(x)
			}
			return VectorFloat64(wide), nil
		}
		return VectorFloat32(v), nil
	case []float64:
		if f.ElementType() == field.Float64 {
			return VectorFloat64(v), nil
		}
		narrow := make([]float32, len(v))
		for i, x := range v {
			narrow[i] = float32(x)
		}
		return VectorFloat32(narrow), nil
	case []byte:
		return string(v), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field %q: unsupported vector value %T: %w", f.Name(), value, ErrInvalidDocument)
	}
}

// VectorFloat32 encodes v as a little-endian FLOAT32 blob.
func VectorFloat32(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// VectorFloat64 encodes v as a little-endian FLOAT64 blob.
func VectorFloat64(v []float64) string {
	buf := make([]byte, len(v)*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return string(buf)
}

func encodeGeo(name string, value any) (string, error) {
	switch v := value.(type) {
	case GeoPoint:
		return v.String(), nil
	case *GeoPoint:
		return v.String(), nil
	case [2]float64:
		return GeoPoint{Lon: v[0], Lat: v[1]}.String(), nil
	case []float64:
		if len(v) != 2 {
			return "", fmt.Errorf("field %q: geo needs [lon, lat], got %d values: %w", name, len(v), ErrInvalidDocument)
		}
		return GeoPoint{Lon: v[0], Lat: v[1]}.String(), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field %q: unsupported geo value %T: %w", name, value, ErrInvalidDocument)
	}
}

func encodeTag(f field.Tag, value any) (string, error) {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, f.EffectiveSeparator()), nil
	case string:
		return v, nil
	default:
		s, ok := scalar(value)
		if !ok {
			return "", fmt.Errorf("field %q: unsupported tag value %T: %w", f.Name(), value, ErrInvalidDocument)
		}
		return s, nil
	}
}

func encodeNumeric(name string, value any) (string, error) {
	if t, ok := value.(time.Time); ok {
		return strconv.FormatInt(t.Unix(), 10), nil
	}
	if s, ok := value.(string); ok {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return "", fmt.Errorf("field %q: %q is not numeric: %w", name, s, ErrInvalidDocument)
		}
		return s, nil
	}
	s, ok := scalar(value)
	if !ok {
		return "", fmt.Errorf("field %q: unsupported numeric value %T: %w", name, value, ErrInvalidDocument)
	}
	return s, nil
}

func encodeText(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, " ")
	case fmt.Stringer:
		return v.String()
	}
	if s, ok := scalar(value); ok {
		return s
	}
	return fmt.Sprint(value)
}

// scalar formats numbers, booleans and strings. Booleans become "1"/"0".
func scalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return formatFloat(v), true
	default:
		return "", false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
