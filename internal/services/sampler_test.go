package services

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/justzen0/random-walker/internal/domain"
)

func TestSamplePointInDiskStaysInsideRadius(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const radiusKm = 1.5

	for i := 0; i < 5000; i++ {
		p, err := SamplePointInDisk(rng, kolkata, radiusKm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("sample %d is not a valid point: %v", i, err)
		}
		if d := domain.HaversineMeters(kolkata, p); d > radiusKm*1000+1e-6 {
			t.Fatalf("sample %d is %.3f m from center, radius is %.0f m", i, d, radiusKm*1000)
		}
	}
}

func TestSamplePointInDiskIsUniformByArea(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const (
		n        = 20000
		radiusKm = 2.0
	)

	var inner, north int
	for i := 0; i < n; i++ {
		p, err := SamplePointInDisk(rng, kolkata, radiusKm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if domain.HaversineMeters(kolkata, p) <= radiusKm*1000/2 {
			inner++
		}
		if p.Lat > kolkata.Lat {
			north++
		}
	}

	// the inner half-radius disk holds a quarter of the area
	if got := float64(inner) / n; math.Abs(got-0.25) > 0.02 {
		t.Fatalf("fraction within r/2 = %.3f, want ~0.25", got)
	}
	if got := float64(north) / n; math.Abs(got-0.5) > 0.02 {
		t.Fatalf("fraction north of center = %.3f, want ~0.5", got)
	}
}

func TestSamplePointInDiskZeroRadius(t *testing.T) {
	p, err := SamplePointInDisk(constRand(0.7), kolkata, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != kolkata {
		t.Fatalf("got %v, want center %v", p, kolkata)
	}
}

func TestSamplePointInDiskExactDistance(t *testing.T) {
	// U1 = 1 puts the point on the rim; U2 = 0 points due north.
	seq := &seqRand{vals: []float64{1, 0}}
	p, err := SamplePointInDisk(seq, kolkata, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := domain.HaversineMeters(kolkata, p); math.Abs(d-1000) > 1e-6 {
		t.Fatalf("distance = %.9f m, want 1000", d)
	}
	if math.Abs(p.Lon-kolkata.Lon) > 1e-9 || p.Lat <= kolkata.Lat {
		t.Fatalf("expected a point due north, got %v", p)
	}
}

func TestSamplePointInDiskWrapsAntimeridian(t *testing.T) {
	center := domain.GeoPoint{Lat: -16.5, Lon: 179.999}
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 1000; i++ {
		p, err := SamplePointInDisk(rng, center, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Lon < -180 || p.Lon > 180 {
			t.Fatalf("longitude %v not wrapped", p.Lon)
		}
	}
}

func TestSamplePointInDiskRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		center domain.GeoPoint
		radius float64
	}{
		{"negative radius", kolkata, -1},
		{"nan radius", kolkata, math.NaN()},
		{"latitude out of range", domain.GeoPoint{Lat: 91, Lon: 0}, 1},
		{"nan center", domain.GeoPoint{Lat: math.NaN(), Lon: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SamplePointInDisk(constRand(0.5), tt.center, tt.radius)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSamplePointInDiskDeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewPCG(11, 12))
	b := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 10; i++ {
		pa, _ := SamplePointInDisk(a, kolkata, 1)
		pb, _ := SamplePointInDisk(b, kolkata, 1)
		if pa != pb {
			t.Fatalf("draw %d differs: %v vs %v", i, pa, pb)
		}
	}
}

// seqRand replays vals in order.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}
