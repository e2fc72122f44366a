package analysis

// PositionBucket is a band of average positions sharing a CTR benchmark.
type PositionBucket string

const (
	Bucket1      PositionBucket = "1"
	Bucket2      PositionBucket = "2"
	Bucket3      PositionBucket = "3"
	Bucket4To5   PositionBucket = "4-5"
	Bucket6To10  PositionBucket = "6-10"
	Bucket11To20 PositionBucket = "11-20"
)

// Industry CTR benchmarks per position bucket. Empirically chosen; kept
// as-is for behavioral parity with the calibrated values.
var ctrBenchmarks = map[PositionBucket]float64{
	Bucket1:      0.30,
	Bucket2:      0.15,
	Bucket3:      0.10,
	Bucket4To5:   0.065,
	Bucket6To10:  0.035,
	Bucket11To20: 0.01,
}

// Thresholds below which a CTR counts as underperforming for its bucket.
var ctrBelowAverage = map[PositionBucket]float64{
	Bucket1:      0.20,
	Bucket2:      0.10,
	Bucket3:      0.06,
	Bucket4To5:   0.04,
	Bucket6To10:  0.02,
	Bucket11To20: 0.005,
}

// GetPositionBucket maps an average position to its benchmark bucket.
// Boundaries are inclusive on the lower bucket (1.5 is still bucket "1").
func GetPositionBucket(pos float64) PositionBucket {
	switch {
	case pos <= 1.5:
		return Bucket1
	case pos <= 2.5:
		return Bucket2
	case pos <= 3.5:
		return Bucket3
	case pos <= 5.5:
		return Bucket4To5
	case pos <= 10.5:
		return Bucket6To10
	default:
		return Bucket11To20
	}
}

// BenchmarkCTR returns the expected CTR for a bucket.
func BenchmarkCTR(b PositionBucket) float64 {
	return ctrBenchmarks[b]
}

// BelowAverageCTR returns the underperformance threshold for a bucket.
func BelowAverageCTR(b PositionBucket) float64 {
	return ctrBelowAverage[b]
}

// Brand dependency health bands, in percent of total clicks.
const (
	brandHealthWarningMin  = 40.0
	brandHealthCriticalMin = 60.0
)

// BrandHealthLevel grades a brand click share (percent of total clicks).
func BrandHealthLevel(brandPercent float64) HealthLevel {
	switch {
	case brandPercent < brandHealthWarningMin:
		return HealthHealthy
	case brandPercent < brandHealthCriticalMin:
		return HealthWarning
	default:
		return HealthCritical
	}
}
