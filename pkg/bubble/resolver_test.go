package bubble

import (
	"math"
	"testing"

	"github.com/decker502/neonbubble/pkg/config"
)

var testGeometry = Geometry{CenterX: 500, CenterY: 500, Width: 100, Height: 100}

// TestComputeOffsetInsideHandle 手柄内部的偏移分量都在 [-1, 1] 内
func TestComputeOffsetInsideHandle(t *testing.T) {
	for x := 450.0; x <= 550; x += 5 {
		for y := 450.0; y <= 550; y += 5 {
			o := ComputeOffset(Sample{PageX: x, PageY: y}, testGeometry)
			if math.Abs(o.X) > 1 || math.Abs(o.Y) > 1 {
				t.Fatalf("offset at (%v, %v) = %+v, want |x|,|y| <= 1", x, y, o)
			}
		}
	}

	o := ComputeOffset(Sample{PageX: 550, PageY: 475}, testGeometry)
	if o.X != 1 || o.Y != -0.5 {
		t.Errorf("offset = %+v, want {1 -0.5}", o)
	}
}

// TestComputeOffsetZeroSize 零尺寸几何产生非有限值
func TestComputeOffsetZeroSize(t *testing.T) {
	g := Geometry{CenterX: 500, CenterY: 500}
	if ComputeOffset(Sample{PageX: 510, PageY: 500}, g).IsFinite() {
		t.Error("zero-size offset off-center should not be finite")
	}
	if ComputeOffset(Sample{PageX: 500, PageY: 500}, g).IsFinite() {
		t.Error("zero-size offset at center (0/0) should not be finite")
	}
}

// TestComputeAngle 0° 指向上方，顺时针增加，在 ±180° 处回绕
func TestComputeAngle(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"上", 500, 400, 0},
		{"右", 600, 500, 90},
		{"左", 400, 500, -90},
		{"右上", 600, 400, 45},
		{"左下", 400, 600, -135},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAngle(Sample{ClientX: tt.x, ClientY: tt.y}, testGeometry)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("angle = %v, want %v", got, tt.want)
			}
		})
	}

	// 正下方两侧分别接近 +180 与 -180
	right := ComputeAngle(Sample{ClientX: 500.001, ClientY: 600}, testGeometry)
	left := ComputeAngle(Sample{ClientX: 499.999, ClientY: 600}, testGeometry)
	if right < 179.9 || left > -179.9 {
		t.Errorf("angles around bottom = %v / %v, want ≈ +180 / -180", right, left)
	}

	// 中心点退化但不会出错
	center := ComputeAngle(Sample{ClientX: 500, ClientY: 500}, testGeometry)
	if math.IsNaN(center) || math.IsInf(center, 0) {
		t.Errorf("angle at center = %v, want a finite value", center)
	}
}

// TestComputeAngleUsesClientCoordinates 角度使用窗口坐标
func TestComputeAngleUsesClientCoordinates(t *testing.T) {
	s := Sample{PageX: 500, PageY: 900, ClientX: 600, ClientY: 500}
	if got := ComputeAngle(s, testGeometry); math.Abs(got-90) > 1e-9 {
		t.Errorf("angle = %v, want 90 (from client coordinates)", got)
	}
}

// TestSameSign 零既不是正号也不是负号
func TestSameSign(t *testing.T) {
	tests := []struct {
		offset, movement float64
		want             bool
	}{
		{1, 5, true},
		{-0.5, -1, true},
		{1, -5, false},
		{0, 5, false},
		{0.3, 0, false},
	}
	for _, tt := range tests {
		if got := SameSign(tt.offset, tt.movement); got != tt.want {
			t.Errorf("SameSign(%v, %v) = %v, want %v", tt.offset, tt.movement, got, tt.want)
		}
	}
}

// TestMotionGateLatch 闸门一旦打开就保持打开，直到 Reset
func TestMotionGateLatch(t *testing.T) {
	var gate MotionGate

	// 指针在右侧但向中心移动：不打开
	if gate.Observe(Offset{X: 0.8}, Sample{MovementX: -3}) {
		t.Fatal("gate should stay closed when moving toward the center")
	}

	// y 方向一致即可打开
	if !gate.Observe(Offset{X: 0.8, Y: -0.2}, Sample{MovementX: -3, MovementY: -1}) {
		t.Fatal("gate should open on y-direction consistency")
	}

	// 之后任何方向都保持打开
	for _, s := range []Sample{{MovementX: -10}, {MovementY: 10}, {}} {
		if !gate.Observe(Offset{X: 0.5, Y: -0.5}, s) {
			t.Fatalf("gate must stay open, sample %+v", s)
		}
	}

	gate.Reset()
	if gate.IsOpen() {
		t.Error("gate should be closed after Reset")
	}
}

// TestComputeTranslation 平移量按 offsetMax 缩放、保留两位小数，reverse 取反
func TestComputeTranslation(t *testing.T) {
	x, y := ComputeTranslation(Offset{X: 1, Y: -0.33333}, 15, false)
	if x != 15 || y != -5 {
		t.Errorf("translation = (%v, %v), want (15, -5)", x, y)
	}

	rx, ry := ComputeTranslation(Offset{X: 1, Y: -0.33333}, 15, true)
	if rx != -x || ry != -y {
		t.Errorf("reverse translation = (%v, %v), want (%v, %v)", rx, ry, -x, -y)
	}

	if got := FormatTranslate(15); got != "15.00" {
		t.Errorf("FormatTranslate(15) = %q, want 15.00", got)
	}
	if got := FormatTranslate(-0.001); got != "0.00" {
		t.Errorf("FormatTranslate(-0.001) = %q, want 0.00", got)
	}
	if got := FormatTranslate(-7.456); got != "-7.46" {
		t.Errorf("FormatTranslate(-7.456) = %q, want -7.46", got)
	}
}

// TestResolveAxisLock 轴锁定只影响写入的平移量，不影响通知中的值
func TestResolveAxisLock(t *testing.T) {
	s := Sample{PageX: 550, PageY: 525, ClientX: 550, ClientY: 525, MovementX: 2}

	for _, axis := range []string{config.AxisX, config.AxisY} {
		t.Run(axis, func(t *testing.T) {
			settings := config.DefaultBubbleSettings()
			settings.Axis = axis
			var gate MotionGate

			r, ok := Resolve(s, testGeometry, settings, &gate)
			if !ok {
				t.Fatal("Resolve should succeed")
			}
			if r.TranslateX != 15 || r.TranslateY != 7.5 {
				t.Errorf("computed = (%v, %v), want (15, 7.5)", r.TranslateX, r.TranslateY)
			}
			if axis == config.AxisX && (r.ApplyX != 0 || r.ApplyY != 7.5) {
				t.Errorf("axis x: applied = (%v, %v), want (0, 7.5)", r.ApplyX, r.ApplyY)
			}
			if axis == config.AxisY && (r.ApplyX != 15 || r.ApplyY != 0) {
				t.Errorf("axis y: applied = (%v, %v), want (15, 0)", r.ApplyX, r.ApplyY)
			}

			ev := r.Event()
			if ev.TranslateX != "15.00" || ev.TranslateY != "7.50" {
				t.Errorf("event = %+v, want full values", ev)
			}
		})
	}
}

// TestResolveNonFinite 非有限偏移：不评估闸门
func TestResolveNonFinite(t *testing.T) {
	var gate MotionGate
	_, ok := Resolve(Sample{PageX: 510, MovementX: 5}, Geometry{CenterX: 500}, config.DefaultBubbleSettings(), &gate)
	if ok {
		t.Error("Resolve should report a skipped frame")
	}
	if gate.IsOpen() {
		t.Error("gate must not be evaluated on a skipped frame")
	}
}
