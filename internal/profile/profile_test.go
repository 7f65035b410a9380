package profile

import "testing"

func TestPlan(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"fits", 800, 600, 1920, 1080, 800, 600},
		{"exact bound", 1920, 1080, 1920, 1080, 1920, 1080},
		{"no upscale", 100, 50, 1920, 1080, 100, 50},
		{"wide", 4000, 2000, 1920, 1080, 1920, 960},
		{"tall", 1000, 4000, 1920, 1080, 270, 1080},
		{"truncates", 3000, 1001, 1920, 1080, 1920, 640},
		{"degenerate", 192000, 1, 1920, 1080, 1920, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Plan(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Plan(%d,%d,%d,%d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPlanNeverUpscales(t *testing.T) {
	for w := 1; w <= 1920; w += 97 {
		for h := 1; h <= 1080; h += 53 {
			gw, gh := Plan(w, h, 1920, 1080)
			if gw != w || gh != h {
				t.Fatalf("Plan(%d,%d) = %dx%d, want unchanged", w, h, gw, gh)
			}
		}
	}
}

func TestGetFallsBackToWeb(t *testing.T) {
	p := Get("nope")
	if p.Name != "nope" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Format != "webp" || p.Quality != 85 || p.MaxWidth != 1920 || p.MaxHeight != 1080 {
		t.Errorf("unexpected fallback profile: %+v", p)
	}
}

func TestProfileDimensions(t *testing.T) {
	w, h := Get("thumb").Dimensions(1280, 960)
	if w != 640 || h != 480 {
		t.Errorf("thumb dimensions: got %dx%d", w, h)
	}
}
