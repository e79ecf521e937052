package facet

import (
	"fmt"
	"math"
	"sort"
)

// A Partitioner can be used to turn a continuous value into a discrete factor.
//
// The bins are given explicitly by Breaks or computed from the learned
// Range: either Partitions bins of equal width or bins of the given Width
// aligned to Boundary. All bins are closed on the left, the last one is
// closed on both sides.
type Partitioner struct {
	Partitions int
	Width      float64
	Boundary   float64
	Breaks     []float64
	Range      Interval
}

// NewPartitioner returns a Partitioner with an unset range.
func NewPartitioner() *Partitioner {
	return &Partitioner{Range: unsetInterval()}
}

func (p *Partitioner) Learn(x ...float64) { p.Range.Update(x...) }

// Partition returns the label of the bin x falls into.
func (p *Partitioner) Partition(x float64) string {
	br := p.breaks()
	if len(br) == 0 || math.IsNaN(x) {
		return "NA"
	}
	last := len(br) - 1
	if x < br[0] {
		return fmt.Sprintf("(-∞, %g)", br[0])
	}
	if x > br[last] {
		return fmt.Sprintf("(%g, ∞)", br[last])
	}
	if last == 0 {
		return fmt.Sprintf("[%g, %g]", br[0], br[0])
	}
	k := sort.SearchFloat64s(br, x)
	if k < len(br) && br[k] == x {
		k++ // x is the left edge of bin k.
	}
	if k > last {
		k = last
	}
	if k == last {
		return fmt.Sprintf("[%g, %g]", br[k-1], br[k])
	}
	return fmt.Sprintf("[%g, %g)", br[k-1], br[k])
}

// breaks returns the sorted bin edges.
func (p *Partitioner) breaks() []float64 {
	if len(p.Breaks) > 0 {
		return p.Breaks
	}
	min, max := p.Range.Min, p.Range.Max
	if math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}

	if w := p.Width; w > 0 {
		start := math.Floor((min-p.Boundary)/w)*w + p.Boundary
		n := int(math.Ceil((max - start) / w))
		if n < 1 {
			n = 1
		}
		br := make([]float64, n+1)
		for k := range br {
			br[k] = start + float64(k)*w
		}
		return br
	}

	if min == max {
		return []float64{min}
	}
	n := p.Partitions
	if n < 1 {
		n = 1
	}
	br := make([]float64, n+1)
	for k := range br {
		br[k] = min + float64(k)*(max-min)/float64(n)
	}
	br[n] = max
	return br
}

// quantileBreaks returns n+1 breaks splitting the sorted xs into n groups
// of about equal size. Duplicate breaks are collapsed.
func quantileBreaks(xs []float64, n int) []float64 {
	if len(xs) == 0 || n < 1 {
		return nil
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	var br []float64
	for k := 0; k <= n; k++ {
		q := quantile(sorted, float64(k)/float64(n))
		if len(br) == 0 || br[len(br)-1] != q {
			br = append(br, q)
		}
	}
	return br
}

// quantile interpolates linearly between the order statistics of the
// sorted xs.
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
