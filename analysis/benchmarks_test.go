package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPositionBucket(t *testing.T) {
	tests := []struct {
		pos  float64
		want PositionBucket
	}{
		{1.0, Bucket1},
		{1.5, Bucket1},
		{1.51, Bucket2},
		{2.5, Bucket2},
		{2.51, Bucket3},
		{3.5, Bucket3},
		{3.51, Bucket4To5},
		{5.5, Bucket4To5},
		{5.51, Bucket6To10},
		{10.5, Bucket6To10},
		{10.51, Bucket11To20},
		{47.3, Bucket11To20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPositionBucket(tt.pos), "position %v", tt.pos)
	}
}

func TestBenchmarkCTRPerBucket(t *testing.T) {
	assert.Equal(t, 0.30, BenchmarkCTR(Bucket1))
	assert.Equal(t, 0.15, BenchmarkCTR(Bucket2))
	assert.Equal(t, 0.10, BenchmarkCTR(Bucket3))
	assert.Equal(t, 0.065, BenchmarkCTR(Bucket4To5))
	assert.Equal(t, 0.035, BenchmarkCTR(Bucket6To10))
	assert.Equal(t, 0.01, BenchmarkCTR(Bucket11To20))
}

func TestBelowAverageBelowBenchmark(t *testing.T) {
	for _, b := range []PositionBucket{Bucket1, Bucket2, Bucket3, Bucket4To5, Bucket6To10, Bucket11To20} {
		assert.Less(t, BelowAverageCTR(b), BenchmarkCTR(b), "bucket %s", b)
	}
}

func TestBrandHealthLevel(t *testing.T) {
	assert.Equal(t, HealthHealthy, BrandHealthLevel(0))
	assert.Equal(t, HealthHealthy, BrandHealthLevel(39.9))
	assert.Equal(t, HealthWarning, BrandHealthLevel(40))
	assert.Equal(t, HealthWarning, BrandHealthLevel(59.9))
	assert.Equal(t, HealthCritical, BrandHealthLevel(60))
	assert.Equal(t, HealthCritical, BrandHealthLevel(95))
}
