package facet

import (
	"fmt"
	"math"
	"strings"
)

// function is a builtin callable from facet expressions. Arguments of
// length one are recycled.
type function func(args []vector) (vector, error)

var functions = map[string]function{
	"factor": func(args []vector) (vector, error) {
		if err := nargs(args, 1, 1); err != nil {
			return nil, err
		}
		return args[0], nil
	},
	"str":   stringFunc(func(s string) string { return s }),
	"upper": stringFunc(strings.ToUpper),
	"lower": stringFunc(strings.ToLower),
	"paste": paste,
	"round": roundFunc,
	"floor": numericFunc(math.Floor),
	"abs":   numericFunc(math.Abs),
	"ifelse": func(args []vector) (vector, error) {
		if err := nargs(args, 3, 3); err != nil {
			return nil, err
		}
		n, err := recycledLen(args...)
		if err != nil {
			return nil, err
		}
		out := make(vector, n)
		for i := range out {
			switch c := at(args[0], i).(type) {
			case nil:
			case bool:
				if c {
					out[i] = at(args[1], i)
				} else {
					out[i] = at(args[2], i)
				}
			default:
				return nil, fmt.Errorf("condition %v is not boolean", c)
			}
		}
		return out, nil
	},
	"cut_width": func(args []vector) (vector, error) {
		if err := nargs(args, 2, 3); err != nil {
			return nil, err
		}
		w, err := scalar(args[1], "width")
		if err != nil {
			return nil, err
		}
		if !(w > 0) {
			return nil, fmt.Errorf("width must be positive, got %g", w)
		}
		p := NewPartitioner()
		p.Width, p.Boundary = w, w/2
		if len(args) == 3 {
			if p.Boundary, err = scalar(args[2], "boundary"); err != nil {
				return nil, err
			}
		}
		return cut(args[0], p)
	},
	"cut_interval": func(args []vector) (vector, error) {
		if err := nargs(args, 2, 2); err != nil {
			return nil, err
		}
		n, err := scalar(args[1], "n")
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("need at least one interval, got %g", n)
		}
		p := NewPartitioner()
		p.Partitions = int(n)
		return cut(args[0], p)
	},
	"cut_number": func(args []vector) (vector, error) {
		if err := nargs(args, 2, 2); err != nil {
			return nil, err
		}
		n, err := scalar(args[1], "n")
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("need at least one group, got %g", n)
		}
		xs, err := floats(args[0])
		if err != nil {
			return nil, err
		}
		p := NewPartitioner()
		p.Breaks = quantileBreaks(xs, int(n))
		return cut(args[0], p)
	},
}

func nargs(args []vector, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fmt.Errorf("want %d arguments, got %d", min, len(args))
		}
		return fmt.Errorf("want %d to %d arguments, got %d", min, max, len(args))
	}
	return nil
}

// scalar returns the single number in v.
func scalar(v vector, what string) (float64, error) {
	if len(v) != 1 {
		return 0, fmt.Errorf("%s must be a single number", what)
	}
	x, ok := approxFloat(v[0]).(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number, got %T", what, v[0])
	}
	return x, nil
}

// floats returns the non-missing numbers in v.
func floats(v vector) ([]float64, error) {
	var xs []float64
	for _, e := range v {
		switch x := approxFloat(e).(type) {
		case nil:
		case float64:
			if !math.IsNaN(x) {
				xs = append(xs, x)
			}
		default:
			return nil, fmt.Errorf("cannot cut non-numeric value %v (%T)", e, e)
		}
	}
	return xs, nil
}

func cut(v vector, p *Partitioner) (vector, error) {
	xs, err := floats(v)
	if err != nil {
		return nil, err
	}
	p.Learn(xs...)
	return mapValues(v, func(e interface{}) (interface{}, error) {
		x, ok := approxFloat(e).(float64)
		if !ok || math.IsNaN(x) {
			return nil, nil
		}
		return p.Partition(x), nil
	})
}

func stringFunc(f func(string) string) function {
	return func(args []vector) (vector, error) {
		if err := nargs(args, 1, 1); err != nil {
			return nil, err
		}
		return mapValues(args[0], func(e interface{}) (interface{}, error) {
			if e == nil {
				return nil, nil
			}
			return f(formatValue(e)), nil
		})
	}
}

func numericFunc(f func(float64) float64) function {
	return func(args []vector) (vector, error) {
		if err := nargs(args, 1, 1); err != nil {
			return nil, err
		}
		return mapValues(args[0], func(e interface{}) (interface{}, error) {
			switch x := approxFloat(e).(type) {
			case nil:
				return nil, nil
			case float64:
				return f(x), nil
			}
			return nil, fmt.Errorf("non-numeric argument %v (%T)", e, e)
		})
	}
}

func roundFunc(args []vector) (vector, error) {
	if err := nargs(args, 1, 2); err != nil {
		return nil, err
	}
	digits := 0.0
	if len(args) == 2 {
		var err error
		if digits, err = scalar(args[1], "digits"); err != nil {
			return nil, err
		}
	}
	scale := math.Pow(10, digits)
	return numericFunc(func(x float64) float64 { return math.Round(x*scale) / scale })(args[:1])
}

func paste(args []vector) (vector, error) {
	if len(args) == 0 {
		return vector{""}, nil
	}
	n, err := recycledLen(args...)
	if err != nil {
		return nil, err
	}
	out := make(vector, n)
	parts := make([]string, len(args))
	for i := range out {
		for j, a := range args {
			parts[j] = formatValue(at(a, i))
		}
		out[i] = strings.Join(parts, " ")
	}
	return out, nil
}
