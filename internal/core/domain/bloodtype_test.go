package domain

import "testing"

func TestCompatibilityFor(t *testing.T) {
	oNeg, ok := CompatibilityFor(BloodONeg)
	if !ok {
		t.Fatal("O- should be a known blood type")
	}
	if len(oNeg.DonateTo) != len(BloodTypes()) {
		t.Errorf("O- should donate to every type, got %d of %d", len(oNeg.DonateTo), len(BloodTypes()))
	}

	abPos, ok := CompatibilityFor(BloodABPos)
	if !ok {
		t.Fatal("AB+ should be a known blood type")
	}
	if len(abPos.ReceiveFrom) != len(BloodTypes()) {
		t.Errorf("AB+ should receive from every type, got %d of %d", len(abPos.ReceiveFrom), len(BloodTypes()))
	}

	if _, ok := CompatibilityFor("Z+"); ok {
		t.Error("unknown blood type should not resolve")
	}
}

// Donation tables must be symmetric: X donates to Y exactly when Y receives
// from X.
func TestCompatibility_Symmetry(t *testing.T) {
	receives := func(recipient, donor BloodType) bool {
		c, _ := CompatibilityFor(recipient)
		for _, d := range c.ReceiveFrom {
			if d == donor {
				return true
			}
		}
		return false
	}

	for _, donor := range BloodTypes() {
		c, ok := CompatibilityFor(donor)
		if !ok {
			t.Fatalf("missing compatibility entry for %q", donor)
		}
		for _, recipient := range c.DonateTo {
			if !receives(recipient, donor) {
				t.Errorf("%s donates to %s but %s does not list %s as a donor", donor, recipient, recipient, donor)
			}
		}
	}
}
