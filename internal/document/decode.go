package document

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecodeFloat parses a stored numeric attribute.
func DecodeFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("decode numeric %q: %w", s, err)
	}
	return f, nil
}

// DecodeBool parses an attribute written from a bool.
func DecodeBool(s string) bool { return s == "1" || strings.EqualFold(s, "true") }

// DecodeTags splits a stored tag attribute; an empty sep means ",".
func DecodeTags(s, sep string) []string {
	if s == "" {
		return nil
	}
	if sep == "" {
		sep = ","
	}
	return strings.Split(s, sep)
}

// DecodeGeo parses a stored "lon,lat" attribute.
func DecodeGeo(s string) (GeoPoint, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return GeoPoint{}, fmt.Errorf("decode geo %q: missing separator", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("decode geo %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("decode geo %q: %w", s, err)
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

// DecodeVectorFloat32 reverses VectorFloat32.
func DecodeVectorFloat32(blob string) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("decode vector: %d bytes is not a FLOAT32 blob", len(blob))
	}
	b := []byte(blob)
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

// DecodeVectorFloat64 reverses VectorFloat64.
func DecodeVectorFloat64(blob string) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("decode vector: %d bytes is not a FLOAT64 blob", len(blob))
	}
	b := []byte(blob)
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}
