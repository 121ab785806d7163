package geo

import (
	"math"
	"strings"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

const (
	// SearchPrecision is the geohash length sent to the events provider.
	SearchPrecision = 8
	// MaxPrecision is the conventional longest geohash. Encode does not enforce it.
	MaxPrecision = 12
)

const bitsPerChar = 5

// Encode turns a coordinate pair into a geohash of exactly precision chars.
// Bits alternate between longitude and latitude, longitude first. A bit is 1
// when the value is >= the midpoint of the current range.
// Out of range input is rejected, never clamped.
func Encode(lat, lon float64, precision int) (string, error) {
	if precision < 1 {
		return "", domain.ErrValidationMeta("invalid geohash precision", map[string]string{
			"precision": "must be >= 1",
		})
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return "", domain.ErrValidationMeta("invalid coordinate", map[string]string{
			"lat": "must be within [-90, 90]",
		})
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return "", domain.ErrValidationMeta("invalid coordinate", map[string]string{
			"lon": "must be within [-180, 180]",
		})
	}

	latRange := [2]float64{-90, 90}
	lonRange := [2]float64{-180, 180}

	var sb strings.Builder
	sb.Grow(precision)

	even := true
	bit := 0
	idx := 0
	for sb.Len() < precision {
		if even {
			idx = idx<<1 | split(lon, &lonRange)
		} else {
			idx = idx<<1 | split(lat, &latRange)
		}
		even = !even

		bit++
		if bit == bitsPerChar {
			sb.WriteByte(base32[idx])
			bit = 0
			idx = 0
		}
	}
	return sb.String(), nil
}

// split halves r around its midpoint, keeping the half that contains v.
func split(v float64, r *[2]float64) int {
	mid := (r[0] + r[1]) / 2
	if v >= mid {
		r[0] = mid
		return 1
	}
	r[1] = mid
	return 0
}
