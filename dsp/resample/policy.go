package resample

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-resample/dsp/interp"
)

// Policy selects the values produced for targets outside the input domain.
type Policy int

const (
	// PolicyError rejects targets outside the domain.
	PolicyError Policy = iota
	// PolicyExtrapolate continues the boundary spline pieces.
	PolicyExtrapolate
	// PolicyFillZero yields 0 outside the domain.
	PolicyFillZero
	// PolicyFillOne yields 1 outside the domain.
	PolicyFillOne
	// PolicyFillNaN yields NaN outside the domain.
	PolicyFillNaN
)

var policyNames = [...]string{
	PolicyError:       "error",
	PolicyExtrapolate: "extrapolate",
	PolicyFillZero:    "0",
	PolicyFillOne:     "1",
	PolicyFillNaN:     "nan",
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	return p >= PolicyError && p <= PolicyFillNaN
}

func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return policyNames[p]
}

// ParsePolicy maps "error", "extrapolate", "0", "1" and "nan" (and the
// aliases "zero" and "one") to a Policy. Case is ignored.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return PolicyError, nil
	case "extrapolate":
		return PolicyExtrapolate, nil
	case "0", "zero":
		return PolicyFillZero, nil
	case "1", "one":
		return PolicyFillOne, nil
	case "nan":
		return PolicyFillNaN, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// extrapolation returns the spline evaluation mode. Constant fills other
// than zero are evaluated zero-filled and overwritten afterwards.
func (p Policy) extrapolation() interp.Extrapolation {
	switch p {
	case PolicyExtrapolate:
		return interp.ExtrapolateSpline
	case PolicyFillZero, PolicyFillOne, PolicyFillNaN:
		return interp.ExtrapolateZero
	default:
		return interp.ExtrapolateError
	}
}

// overwrite returns the constant written over out-of-domain targets.
func (p Policy) overwrite() (float64, bool) {
	switch p {
	case PolicyFillOne:
		return 1, true
	case PolicyFillNaN:
		return nan, true
	default:
		return 0, false
	}
}
