package verify

import (
	"context"
	"fmt"
	"math"

	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/internal/order"
)

// MaxBuckets bounds the range size Histogram accepts.
const MaxBuckets = 1 << 20

// Histogram draws n samples from s and counts how often each value of the
// raw range [lo, hi] of domain d occurs. A sample outside the range fails
// with ErrOutOfRange.
func Histogram(ctx context.Context, n int, d order.Domain, lo, hi uint64, s Stream) ([]uint64, error) {
	tlo, thi := d.Transpose(lo), d.Transpose(hi)
	if tlo > thi {
		return nil, brerrors.ErrInvalidRange
	}
	if thi-tlo >= MaxBuckets {
		return nil, fmt.Errorf("histogram over %d values exceeds %d buckets", thi-tlo+1, MaxBuckets)
	}
	counts := make([]uint64, thi-tlo+1)
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		v := d.Transpose(s())
		if v < tlo || v > thi {
			return nil, fmt.Errorf("%w: draw %d", brerrors.ErrOutOfRange, i)
		}
		counts[v-tlo]++
	}
	return counts, nil
}

// ChiSquare returns Pearson's statistic for counts against the uniform
// expectation, and its degrees of freedom.
func ChiSquare(counts []uint64) (stat float64, df int) {
	if len(counts) < 2 {
		return 0, 0
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	expected := float64(total) / float64(len(counts))
	for _, c := range counts {
		diff := float64(c) - expected
		stat += diff * diff / expected
	}
	return stat, len(counts) - 1
}

// CriticalValue approximates the upper quantile of the chi-square
// distribution with df degrees of freedom at the standard normal quantile z,
// using the Wilson-Hilferty cube-root transform.
func CriticalValue(df int, z float64) float64 {
	k := float64(df)
	a := 2 / (9 * k)
	return k * math.Pow(1-a+z*math.Sqrt(a), 3)
}

// Uniform rejects counts whose chi-square statistic exceeds the critical
// value at normal quantile z. z = 4 rejects a truly uniform sample about
// once in 30,000 runs.
func Uniform(counts []uint64, z float64) error {
	stat, df := ChiSquare(counts)
	if df == 0 {
		return nil
	}
	if limit := CriticalValue(df, z); stat > limit {
		return fmt.Errorf("%w: chi-square %.2f > %.2f with %d degrees of freedom",
			brerrors.ErrNotUniform, stat, limit, df)
	}
	return nil
}
