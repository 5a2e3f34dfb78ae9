// Package limit represents a subscription quota in the system. The persisted
// encoding keeps the legacy convention where 0 means unlimited; inside the
// system a limit is always the explicit Unlimited or Bounded(n) form.
package limit

import "fmt"

// Limit represents a per-entity quota for a company.
type Limit struct {
	max       int
	unlimited bool
}

// Unlimited is the quota that allows any number of entities.
var Unlimited = Limit{unlimited: true}

// Bounded constructs a quota allowing at most max active entities.
func Bounded(max int) (Limit, error) {
	if max <= 0 {
		return Limit{}, fmt.Errorf("bounded limit must be positive, got %d", max)
	}

	return Limit{max: max}, nil
}

// MustBounded constructs a bounded quota and panics on invalid input.
func MustBounded(max int) Limit {
	l, err := Bounded(max)
	if err != nil {
		panic(err)
	}

	return l
}

// Parse converts the persisted integer encoding into a Limit. A stored value
// of 0 means unlimited.
func Parse(value int) (Limit, error) {
	if value < 0 {
		return Limit{}, fmt.Errorf("invalid limit %d", value)
	}

	if value == 0 {
		return Unlimited, nil
	}

	return Limit{max: value}, nil
}

// Encode converts the Limit back to the persisted integer encoding.
func (l Limit) Encode() int {
	if l.unlimited {
		return 0
	}

	return l.max
}

// IsUnlimited reports whether the quota allows any count.
func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Max returns the bounded maximum. Calling Max on an unlimited quota returns
// 0 and Allows should be used for admission decisions instead.
func (l Limit) Max() int {
	return l.max
}

// Allows reports whether one more entity may be created given the current
// active count.
func (l Limit) Allows(current int) bool {
	if l.unlimited {
		return true
	}

	return current < l.max
}

// Remaining returns how many entities may still be created. For an unlimited
// quota ok is false and the count is meaningless.
func (l Limit) Remaining(current int) (n int, ok bool) {
	if l.unlimited {
		return 0, false
	}

	n = l.max - current
	if n < 0 {
		n = 0
	}

	return n, true
}

// String implements the stringer interface.
func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}

	return fmt.Sprintf("%d", l.max)
}

// Equal provides support for the go-cmp package and testing.
func (l Limit) Equal(l2 Limit) bool {
	return l.max == l2.max && l.unlimited == l2.unlimited
}

// MarshalText provides support for logging and any marshal needs.
func (l Limit) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
