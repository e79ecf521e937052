package facet

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"gonum.org/v1/plot"
)

// Aesthetics trained by x and y position scales.
var (
	XAesthetics = []string{"x", "xmin", "xmax", "xend", "xintercept",
		"xmin_final", "xmax_final", "xlower", "xmiddle", "xupper", "x0"}
	YAesthetics = []string{"y", "ymin", "ymax", "yend", "yintercept",
		"ymin_final", "ymax_final", "ylower", "ymiddle", "yupper", "y0"}
)

// A Scaler learns the domain of the data mapped to some aesthetics.
// Training only ever expands the domain so the result does not depend
// on the order of the Train calls.
type Scaler interface {
	// Aesthetics returns the names of the columns the scale trains on.
	Aesthetics() []string

	// Train expands the domain to cover values.
	Train(values slice.T) error

	// Clone returns an independent deep copy.
	Clone() Scaler
}

// A PositionScaler is a Scaler which places data along an axis.
type PositionScaler interface {
	Scaler

	// Finalize turns the trained domain into the range of the scale.
	// It must be called after training and before any of the methods
	// below.
	Finalize()

	// Map maps a data value to the continuous scale space. The second
	// result is false for values which cannot be mapped.
	Map(v interface{}) (float64, bool)

	// Project maps x from scale space to the interval to.
	Project(x float64, to Interval) float64

	// Ticks returns the axis ticks in scale space.
	Ticks() []plot.Tick

	// Name returns the title of the scale.
	Name() string
}

// ----------------------------------------------------------------------------
// Scale

// Scale is a continuous position scale.
type Scale struct {
	// Title is the scale's title.
	Title string

	// Aes are the aesthetics this scale is trained on.
	Aes []string

	// Data is the range covered by actual data.
	Data Interval

	// Interval captures the range of this scale. It may be larger or
	// smaller than the actual Data range.
	Interval

	// Autoscaling can be used to control autoscaling of this scale.
	Autoscaling

	// Trans maps the scale range to the panel.
	Trans Transformation

	// Ticker is responsible for generating the ticks. If nil the
	// Ticker of Trans is used.
	Ticker plot.Ticker
}

// NewScale returns a new linear scale for the given aesthetics which
// autoscales to the actual data.
func NewScale(aes ...string) *Scale {
	s := &Scale{
		Aes:      aes,
		Data:     unsetInterval(),
		Interval: unsetInterval(),
		Trans:    LinearTrans,
		Autoscaling: Autoscaling{
			MinRange: unsetInterval(),
			MaxRange: unsetInterval(),
		},
	}
	s.Autoscaling.Expand.Relative = 0.05

	return s
}

// NewXScale returns a continuous x scale.
func NewXScale() *Scale { return NewScale(XAesthetics...) }

// NewYScale returns a continuous y scale.
func NewYScale() *Scale { return NewScale(YAesthetics...) }

func (s *Scale) Aesthetics() []string { return s.Aes }

func (s *Scale) Name() string {
	if s.Title == "" && len(s.Aes) > 0 {
		return s.Aes[0]
	}
	return s.Title
}

// Clone implements Scaler.
func (s *Scale) Clone() Scaler {
	c := *s
	c.Aes = append([]string(nil), s.Aes...)
	return &c
}

// Train implements Scaler. Numbers and times extend the data range,
// missing values are ignored.
func (s *Scale) Train(values slice.T) error {
	for _, v := range toValues(values) {
		x, ok := s.Map(v)
		if !ok {
			if v == nil {
				continue
			}
			return fmt.Errorf("facet: continuous scale %s cannot train on %v (%T)", s.Name(), v, v)
		}
		if s.isLog() && x <= 0 {
			continue
		}
		s.Data.Update(x)
	}
	return nil
}

// Map implements PositionScaler.
func (s *Scale) Map(v interface{}) (float64, bool) {
	switch x := approxFloat(normValue(v)).(type) {
	case float64:
		return x, !math.IsNaN(x)
	case time.Time:
		return float64(x.Unix()), true
	}
	return math.NaN(), false
}

// Project implements PositionScaler. If s's Intervall is degenerate or
// unset Project returns NaN.
func (s *Scale) Project(x float64, to Interval) float64 {
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || s.Min == s.Max {
		return math.NaN()
	}
	return s.Trans.Trans(s.Interval, to, x)
}

// Ticks implements PositionScaler.
func (s *Scale) Ticks() []plot.Tick {
	ticker := s.Ticker
	if ticker == nil {
		ticker = s.Trans.Ticker
	}
	if ticker == nil {
		ticker = DefaultTicks(5)
	}
	var ticks []plot.Tick
	for _, t := range ticker.Ticks(s.Min, s.Max) {
		if s.InRange(t.Value) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// Finalize implements PositionScaler. Unset or degenerate ranges are
// widened so that Project is well defined.
func (s *Scale) Finalize() {
	s.autoscale()
	lo, hi := -1.0, 1.0
	if s.isLog() {
		lo, hi = 1, 10
	}
	if math.IsNaN(s.Min) {
		s.Min = lo
	}
	if math.IsNaN(s.Max) {
		s.Max = hi
	}
	if s.Min == s.Max {
		if s.isLog() {
			s.Min, s.Max = s.Min/10, s.Max*10
		} else {
			s.Min, s.Max = s.Min-0.5, s.Max+0.5
		}
	}
	logger.Debug("scale finalized", "scale", s)
}

// UpdateData updates s to cover i.
func (s *Scale) UpdateData(i Interval) {
	s.Data.Update(i.Min)
	s.Data.Update(i.Max)
}

// FixMin fixes the min of s to x. If x is NaN the min is determined by
// autoscaling to the actual data.
func (s *Scale) FixMin(x float64) {
	s.MinRange.Min = x
	s.MinRange.Max = x
}

// FixMax fixes the max of s to x. If x is NaN the max is determined by
// autoscaling to the actual data.
func (s *Scale) FixMax(x float64) {
	s.MaxRange.Min = x
	s.MaxRange.Max = x
}

// HasData reports whether the Data intervall of s is valid.
func (s *Scale) HasData() bool {
	return !math.IsNaN(s.Data.Min) && !math.IsNaN(s.Data.Max)
}

// InRange reports whether x lies in the the range of s.
func (s *Scale) InRange(x float64) bool {
	const eps = 1e-9
	d := eps * (s.Max - s.Min)
	return x >= s.Min-d && x <= s.Max+d
}

func (s *Scale) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Range=[%.2f:%.2f] Data=[%.2f:%.2f] %s %q",
		s.Min, s.Max, s.Data.Min, s.Data.Max, s.Trans.Name, s.Title)
}

func (s *Scale) isLog() bool { return s.Trans.Name == Log10Trans.Name }

// autoscale turns the data range into an actual scale range.
func (s *Scale) autoscale() {
	lo, hi := math.NaN(), math.NaN()
	if s.HasData() {
		lo, hi = s.Data.Min, s.Data.Max
		if s.isLog() {
			lo, hi = math.Log10(lo), math.Log10(hi)
		}
		ext := s.Expand.Relative*(hi-lo) + s.Expand.Absolute
		lo, hi = lo-ext, hi+ext
		if s.isLog() {
			lo, hi = math.Pow(10, lo), math.Pow(10, hi)
		}
	}

	// Determine the left edge of s.
	if s.MinRange.Min == s.MinRange.Max {
		// Degenerate MinRange and non NaN: The user has set a fixed Min.
		s.Min = s.MinRange.Min
	} else if !math.IsNaN(lo) {
		s.Min = lo
		// Clip autoscaling
		if s.MinRange.Min > s.Min {
			s.Min = s.MinRange.Min
		}
		if s.MinRange.Max < s.Min {
			s.Min = s.MinRange.Max
		}
	}

	// Determine the right edge of s.
	if s.MaxRange.Min == s.MaxRange.Max {
		s.Max = s.MaxRange.Min
	} else if !math.IsNaN(hi) {
		s.Max = hi
		if s.MaxRange.Min > s.Max {
			s.Max = s.MaxRange.Min
		}
		if s.MaxRange.Max < s.Max {
			s.Max = s.MaxRange.Max
		}
	}
}

// ----------------------------------------------------------------------------
// DiscreteScale

// DiscreteScale is a position scale for discrete values. The levels
// are kept sorted and placed at the positions 1, 2, 3...
type DiscreteScale struct {
	Title string
	Aes   []string

	// Levels are the distinct values seen during training.
	Levels []interface{}

	// Expand is added on both sides of the outermost levels.
	Expand float64

	Interval
}

// NewDiscreteScale returns an untrained discrete scale for aes.
func NewDiscreteScale(aes ...string) *DiscreteScale {
	return &DiscreteScale{Aes: aes, Expand: 0.6, Interval: unsetInterval()}
}

func (s *DiscreteScale) Aesthetics() []string { return s.Aes }

func (s *DiscreteScale) Name() string {
	if s.Title == "" && len(s.Aes) > 0 {
		return s.Aes[0]
	}
	return s.Title
}

func (s *DiscreteScale) Clone() Scaler {
	c := *s
	c.Aes = append([]string(nil), s.Aes...)
	c.Levels = append([]interface{}(nil), s.Levels...)
	return &c
}

// Train implements Scaler.
func (s *DiscreteScale) Train(values slice.T) error {
	for _, v := range toValues(values) {
		if v == nil {
			continue
		}
		if _, ok := s.index(v); ok {
			continue
		}
		s.Levels = append(s.Levels, v)
		sortValues(s.Levels)
	}
	return nil
}

func (s *DiscreteScale) index(v interface{}) (int, bool) {
	k := key([]interface{}{v})
	for i, l := range s.Levels {
		if key([]interface{}{l}) == k {
			return i, true
		}
	}
	return -1, false
}

// Map implements PositionScaler.
func (s *DiscreteScale) Map(v interface{}) (float64, bool) {
	i, ok := s.index(normValue(v))
	if !ok {
		return math.NaN(), false
	}
	return float64(i + 1), true
}

func (s *DiscreteScale) Finalize() {
	n := float64(len(s.Levels))
	if n == 0 {
		s.Min, s.Max = 0, 1
		return
	}
	s.Min, s.Max = 1-s.Expand, n+s.Expand
	logger.Debug("discrete scale finalized", "scale", s.Name(), "levels", len(s.Levels))
}

func (s *DiscreteScale) Project(x float64, to Interval) float64 {
	return LinearTrans.Trans(s.Interval, to, x)
}

func (s *DiscreteScale) Ticks() []plot.Tick {
	ticks := make([]plot.Tick, len(s.Levels))
	for i, l := range s.Levels {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: formatValue(l)}
	}
	return ticks
}

// ----------------------------------------------------------------------------
// Intervall

// Interval represents a (potentially degenerate) real interval.
// Both edges of the interval may be NaN indicating this edge is not
// set determined.
type Interval struct {
	Min, Max float64
}

func unsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Update expands i to include x.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if !(i.Min < v) {
			i.Min = v
		}
		if !(i.Max > v) {
			i.Max = v
		}
	}
}

// Equal reports whether i and j have the same edges. Unset edges are
// equal to each other.
func (i *Interval) Equal(j Interval) bool {
	return sameEdge(i.Min, j.Min) && sameEdge(i.Max, j.Max)
}

func sameEdge(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// ----------------------------------------------------------------------------
// Autoscaling

// Autoscaling controls how the min and max value of a scale are scaled.
// Setting a range to a degenerate interval [f:f] will turn of autoscaling
// and fix the value to f. A non-degenerate range [u:v] will allow autoscaling
// between u and v. A NaN value works like -Inf for u and +Inf for v.
type Autoscaling struct {
	// Expand determines how much the actual data range is expandend.
	Expand struct {
		Absolute float64
		Relative float64
	}

	MinRange Interval // MinRange determines the allowed range of the Min of a scale.
	MaxRange Interval // MaxRange determines the allowed range of the Max of a scale.
}
