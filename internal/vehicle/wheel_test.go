package vehicle

import "testing"

func TestWheel_Validate(t *testing.T) {
	cases := []struct {
		name    string
		wheel   Wheel
		wantErr bool
	}{
		{"valid", DefaultWheel(0, 0), false},
		{"zero diameter", Wheel{Diameter: 0, Mass: 1}, true},
		{"negative diameter", Wheel{Diameter: -0.1, Mass: 1}, true},
		{"negative mass", Wheel{Diameter: 0.4, Mass: -1}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.wheel.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestWheel_Radius(t *testing.T) {
	w := Wheel{Diameter: 0.4}
	if got := w.Radius(); got != 0.2 {
		t.Errorf("Radius() = %g, want 0.2", got)
	}
}
