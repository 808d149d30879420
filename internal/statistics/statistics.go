package statistics

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// Summary is a five-number box-plot summary of a distribution.
type Summary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the sample standard deviation (n-1 denominator),
// 0 when fewer than two values are present.
func StdDev(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(xs)
	if err != nil {
		return 0
	}
	return sd
}

// CV returns the coefficient of variation (sd/mean), 0 when the mean is 0.
func CV(xs []float64) float64 {
	m := Mean(xs)
	if m == 0 {
		return 0
	}
	return StdDev(xs) / m
}

// CI95 returns the 95% confidence interval for the mean under the normal
// approximation (mean ± 1.96*sd/sqrt(n)). Both bounds equal the mean when
// fewer than two values are present.
func CI95(xs []float64) (low, high float64) {
	m := Mean(xs)
	if len(xs) <= 1 {
		return m, m
	}
	margin := 1.96 * StdDev(xs) / math.Sqrt(float64(len(xs)))
	return m - margin, m + margin
}

// stabilityScale maps cv onto the [0,100] stability range. Tunable business
// rule, not a statistical law.
const stabilityScale = 100.0

// StabilityIndex scores the consistency of a group: 100 for zero dispersion,
// falling linearly with the coefficient of variation, floored at 0.
func StabilityIndex(xs []float64) float64 {
	score := stabilityScale - stabilityScale*CV(xs)
	if score < 0 {
		return 0
	}
	if score > stabilityScale {
		return stabilityScale
	}
	return score
}

// Quartiles returns the box-plot summary using linear interpolation between
// order statistics. All fields are 0 for an empty slice.
func Quartiles(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return Summary{
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

func percentile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

// ISOWeek returns the ISO-8601 week number (1-53) for t.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
