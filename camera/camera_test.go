package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.MinZoom != 0.5 {
		t.Errorf("expected min zoom 0.5, got %f", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	sx, sy := cam.WorldToScreen(1280, 720)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.ZoomBy(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestIdentityWhenWorldMatchesScreen(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	wx, wy := cam.ScreenToWorld(200, 300)
	if !near(wx, 200) || !near(wy, 300) {
		t.Errorf("ScreenToWorld = (%f, %f), want (200, 300)", wx, wy)
	}

	// Panning is a no-op while the whole world is visible.
	cam.Pan(100, 100)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("camera moved to (%f, %f)", cam.X, cam.Y)
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.Pan(-5000, 5000)
	minX, _, _, maxY := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(maxY, 1440) {
		t.Errorf("view bounds minX=%f maxY=%f, want 0 and 1440", minX, maxY)
	}
}

func TestZoom(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	// Fully zoomed out the whole world is visible and centred.
	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("camera at (%f, %f), want world centre", cam.X, cam.Y)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	wx, wy := cam.ScreenToWorld(700, 400)
	cam.ZoomAt(700, 400, 2)
	gx, gy := cam.ScreenToWorld(700, 400)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if !cam.IsVisible(1280, 720, 0) {
		t.Error("centre not visible")
	}
	if cam.IsVisible(100, 100, 5) {
		t.Error("far corner reported visible")
	}
	if !cam.IsVisible(630, 720, 15) {
		t.Error("circle overlapping left edge not visible")
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(0.5)

	cam.Resize(640, 360)
	if cam.MinZoom != 0.25 || cam.Zoom != 0.5 {
		t.Errorf("min/zoom = %f/%f, want 0.25/0.5", cam.MinZoom, cam.Zoom)
	}
}
