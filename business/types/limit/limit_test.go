package limit_test

import (
	"testing"

	"github.com/nexorahq/nexora/business/types/limit"
)

func Test_Parse_ZeroMeansUnlimited(t *testing.T) {
	l, err := limit.Parse(0)
	if err != nil {
		t.Fatalf("Parse(0): %v", err)
	}

	if !l.IsUnlimited() {
		t.Error("a stored 0 must decode to the unlimited quota")
	}

	if !l.Allows(1 << 30) {
		t.Error("unlimited must admit any count")
	}

	if l.Encode() != 0 {
		t.Errorf("unlimited must encode back to 0, got %d", l.Encode())
	}
}

func Test_Parse_Negative(t *testing.T) {
	if _, err := limit.Parse(-1); err == nil {
		t.Fatal("expected an error for a negative limit")
	}
}

func Test_Bounded_Admission(t *testing.T) {
	l := limit.MustBounded(2)

	if !l.Allows(0) || !l.Allows(1) {
		t.Error("bounded quota must admit below the maximum")
	}

	if l.Allows(2) {
		t.Error("bounded quota must refuse at the maximum")
	}

	if n, ok := l.Remaining(1); !ok || n != 1 {
		t.Errorf("Remaining(1): got %d (%t), want 1", n, ok)
	}
}

func Test_Bounded_Invalid(t *testing.T) {
	if _, err := limit.Bounded(0); err == nil {
		t.Fatal("expected an error: a bounded quota of 0 would mean unlimited in storage")
	}
}

func Test_String(t *testing.T) {
	if got := limit.Unlimited.String(); got != "unlimited" {
		t.Errorf("got %q, want %q", got, "unlimited")
	}

	if got := limit.MustBounded(5).String(); got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}
