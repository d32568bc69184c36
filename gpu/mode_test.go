package gpu

import "testing"

func TestModeString(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeRaster, "raster"},
		{ModeVulkan, "vulkan"},
		{ModeMetal, "metal"},
	}
	for _, tc := range cases {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
	if ModeRaster.Accelerated() {
		t.Error("ModeRaster.Accelerated() = true")
	}
	if !ModeVulkan.Accelerated() || !ModeMetal.Accelerated() {
		t.Error("GPU modes must report Accelerated")
	}
}

func TestHealthFatal(t *testing.T) {
	if HealthOK.Fatal() {
		t.Error("HealthOK.Fatal() = true")
	}
	if !HealthOutOfMemory.Fatal() || !HealthAbandoned.Fatal() {
		t.Error("fatal states must report Fatal")
	}
	if got := HealthAbandoned.String(); got != "abandoned" {
		t.Errorf("HealthAbandoned.String() = %q", got)
	}
}

func TestSetHealthNeverDowngrades(t *testing.T) {
	d := &Device{}
	if d.Health() != HealthOK {
		t.Fatalf("initial health = %v, want ok", d.Health())
	}

	d.SetHealth(HealthOutOfMemory)
	if d.Health() != HealthOutOfMemory {
		t.Fatalf("health = %v after out-of-memory, want recorded", d.Health())
	}
	// Neither OK nor a different fatal state replaces the first fatal one.
	d.SetHealth(HealthOK)
	if d.Health() != HealthOutOfMemory {
		t.Error("HealthOK overwrote a fatal state")
	}
	d.SetHealth(HealthAbandoned)
	if d.Health() != HealthOutOfMemory {
		t.Error("second fatal state overwrote the first")
	}
}
