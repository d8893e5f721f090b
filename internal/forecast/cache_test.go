package forecast

import (
	"testing"
	"time"

	"roadcast/internal/types"
)

func TestNewKey_RoundsCoordinates(t *testing.T) {
	target := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	a := NewKey(types.NewCoords(12.97161, 77.59462), target)
	b := NewKey(types.NewCoords(12.96789, 77.59111), target)
	if a != b {
		t.Errorf("keys for nearby coordinates differ: %+v vs %+v", a, b)
	}

	far := NewKey(types.NewCoords(13.05, 77.59462), target)
	if a == far {
		t.Errorf("keys for distant coordinates collide: %+v", a)
	}
}

func TestNewKey_UsesUTCHour(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, 6, 15, 20, 5, 0, 0, ist) // 14:35 UTC

	key := NewKey(types.NewCoords(12.97, 77.59), local)
	if key.Hour != 14 {
		t.Errorf("key hour = %d, want 14", key.Hour)
	}
}

func TestNewKey_HourSeparatesEntries(t *testing.T) {
	coord := types.NewCoords(12.97, 77.59)
	t1 := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 6, 15, 15, 0, 0, 0, time.UTC)

	if NewKey(coord, t1) == NewKey(coord, t2) {
		t.Error("keys for different hours collide")
	}
}

func TestCache_GetPut(t *testing.T) {
	cache := NewCache()
	key := NewKey(types.NewCoords(12.97, 77.59), time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC))

	if _, ok := cache.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}

	sample := types.WeatherSample{Code: 61, TemperatureC: 24.5, PrecipitationMm: 1.2}
	cache.Put(key, sample)

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("cache missed a stored key")
	}
	if got != sample {
		t.Errorf("cache returned %+v, want %+v", got, sample)
	}
	if cache.Len() != 1 {
		t.Errorf("cache length = %d, want 1", cache.Len())
	}
}
