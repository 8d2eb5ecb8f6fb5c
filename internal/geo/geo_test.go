package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_ZeroAtSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Distance(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	d2 := Distance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InEpsilon(t, d1, d2, 1e-6)
}

func TestDistance_KnownValue(t *testing.T) {
	// Bangalore -> Chennai, roughly 290 km by great circle.
	d := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290_000, d, 5_000)
}

func TestValidateCoordinate(t *testing.T) {
	assert.NoError(t, ValidateCoordinate(12.9716, 77.5946))
	assert.NoError(t, ValidateCoordinate(-90, 180))

	assert.Error(t, ValidateCoordinate(math.NaN(), 77.5946))
	assert.Error(t, ValidateCoordinate(12.9716, math.Inf(1)))
	assert.Error(t, ValidateCoordinate(91, 0))
	assert.Error(t, ValidateCoordinate(0, -181))
}

func TestClassify_Boundaries(t *testing.T) {
	const r = 100.0

	assert.Equal(t, Classification{DistanceMeters: 0, Zone: ZoneGreen}, Classify(0, r))

	onRadius := Classify(r, r)
	assert.Equal(t, ZoneGreen, onRadius.Zone)
	assert.False(t, onRadius.OutOfRange)

	justOut := Classify(math.Nextafter(r, 2*r), r)
	assert.Equal(t, ZoneOrange, justOut.Zone)
	assert.True(t, justOut.OutOfRange)

	onDouble := Classify(2*r, r)
	assert.Equal(t, ZoneOrange, onDouble.Zone)
	assert.True(t, onDouble.OutOfRange)

	beyond := Classify(math.Nextafter(2*r, 3*r), r)
	assert.Equal(t, ZoneRed, beyond.Zone)
	assert.True(t, beyond.OutOfRange)
}

func TestClassify_DefaultsRadius(t *testing.T) {
	// 150 m with a missing (zero) radius must behave like the 100 m default.
	cls := Classify(150, 0)
	assert.Equal(t, ZoneOrange, cls.Zone)
	assert.True(t, cls.OutOfRange)
}
