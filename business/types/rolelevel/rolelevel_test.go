package rolelevel_test

import (
	"testing"

	"github.com/nexorahq/nexora/business/types/rolelevel"
)

func Test_Parse(t *testing.T) {
	l, err := rolelevel.Parse(4)
	if err != nil {
		t.Fatalf("Parse(4): %v", err)
	}

	if !l.Equal(rolelevel.CompanyAdmin) {
		t.Errorf("got %s, want %s", l, rolelevel.CompanyAdmin)
	}

	if _, err := rolelevel.Parse(-1); err == nil {
		t.Error("expected an error for a negative level")
	}
}

func Test_Thresholds(t *testing.T) {
	if rolelevel.CompanyAdmin.IsPlatform() {
		t.Error("level 4 is not platform")
	}

	if !rolelevel.Platform.IsPlatform() {
		t.Error("level 5 is platform")
	}

	if !rolelevel.Platform.IsCompanyAdmin() {
		t.Error("platform outranks a company admin")
	}

	if rolelevel.BranchAdmin.IsCompanyAdmin() {
		t.Error("level 1 is below company admin")
	}
}

func Test_AtLeastAndCompare(t *testing.T) {
	if !rolelevel.Platform.AtLeast(rolelevel.CompanyAdmin) {
		t.Error("5 >= 4")
	}

	if rolelevel.User.AtLeast(rolelevel.BranchAdmin) {
		t.Error("0 < 1")
	}

	if rolelevel.Platform.Compare(rolelevel.User) <= 0 {
		t.Error("expected a positive comparison")
	}
}
