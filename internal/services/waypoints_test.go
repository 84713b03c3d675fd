package services

import (
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestReduceWaypoints(t *testing.T) {
	tests := []struct {
		name     string
		path     []int
		maxCount int
		want     []int
	}{
		{"empty", nil, 23, nil},
		{"single", []int{7}, 23, []int{7}},
		{"fits", seq(23), 23, seq(23)},
		{"stride lands on last", seq(9), 5, []int{0, 2, 4, 6, 8}},
		{"last appended", seq(10), 4, []int{0, 3, 6, 9}},
		{"last appended after stride", seq(11), 4, []int{0, 4, 8, 10}},
		{"just over the limit", seq(25), 23, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}},
		{"endpoints only", seq(50), 2, []int{0, 49}},
		{"limit below two", seq(5), 1, []int{0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceWaypoints(tt.path, tt.maxCount)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ReduceWaypoints(%d items, %d) = %v, want %v", len(tt.path), tt.maxCount, got, tt.want)
			}
		})
	}
}

func TestReduceWaypointsProperties(t *testing.T) {
	for n := 2; n <= 200; n++ {
		for _, k := range []int{2, 3, 5, 10, 23} {
			path := seq(n)
			got := ReduceWaypoints(path, k)

			if len(got) > k {
				t.Fatalf("n=%d k=%d: %d entries exceed limit", n, k, len(got))
			}
			if got[0] != 0 || got[len(got)-1] != n-1 {
				t.Fatalf("n=%d k=%d: endpoints not kept: %v", n, k, got)
			}
			for i := 1; i < len(got); i++ {
				if got[i] <= got[i-1] {
					t.Fatalf("n=%d k=%d: order not preserved: %v", n, k, got)
				}
			}
			if again := ReduceWaypoints(got, k); !reflect.DeepEqual(again, got) {
				t.Fatalf("n=%d k=%d: not idempotent: %v then %v", n, k, got, again)
			}
		}
	}
}
