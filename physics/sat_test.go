package physics

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

const eps = 1e-9

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func square(half float64) Shape {
	return HalfExtents(half, half, 0, 0).Shape
}

func TestAxes(t *testing.T) {
	axes := Axes(square(2))
	want := []cp.Vector{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	if len(axes) != len(want) {
		t.Fatalf("expected %d axes, got %d", len(want), len(axes))
	}
	for i := range want {
		if !near(axes[i], want[i]) {
			t.Fatalf("axis %d: expected %v, got %v", i, want[i], axes[i])
		}
	}
	if got := Axes(Circle(3)); got != nil {
		t.Fatalf("circle should have no axes, got %v", got)
	}
}

func TestProject(t *testing.T) {
	cases := []struct {
		name  string
		shape Shape
		at    Transform
		axis  cp.Vector
		want  Projection
	}{
		{"box_x", square(2), Transform{X: 10}, cp.Vector{X: 1}, Projection{Min: 8, Max: 12}},
		{"box_neg_x", square(2), Transform{X: 10}, cp.Vector{X: -1}, Projection{Min: -12, Max: -8}},
		{"circle_y", Circle(3), Transform{Y: 5}, cp.Vector{Y: 1}, Projection{Min: 2, Max: 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Project(c.shape, c.at, c.axis)
			if math.Abs(got.Min-c.want.Min) > eps || math.Abs(got.Max-c.want.Max) > eps {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestProjectionOverlap(t *testing.T) {
	a := Projection{Min: 0, Max: 4}
	b := Projection{Min: 3, Max: 10}
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("expected overlap")
	}
	if a.Overlap(b) != 1 || b.Overlap(a) != 1 {
		t.Fatalf("overlap should be symmetric and equal 1, got %v / %v", a.Overlap(b), b.Overlap(a))
	}
	if (Projection{Min: 5, Max: 6}).Overlaps(a) {
		t.Fatalf("disjoint intervals reported overlapping")
	}
	if !(Projection{Min: 4, Max: 6}).Overlaps(a) {
		t.Fatalf("touching intervals should overlap")
	}
}

func TestCirclePolygonAxis(t *testing.T) {
	axis := CirclePolygonAxis(Transform{X: 5, Y: 2}, square(2), Transform{})
	if !near(axis, cp.Vector{X: 1}) {
		t.Fatalf("expected (1,0) from vertex (2,2), got %v", axis)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for circle passed as polygon")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "polygon") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	CirclePolygonAxis(Transform{}, Circle(1), Transform{})
}

func TestSeparatingAxisTest(t *testing.T) {
	cases := []struct {
		name     string
		t1       Transform
		s1       Shape
		t2       Transform
		s2       Shape
		collided bool
		mtv      cp.Vector
	}{
		{"circles_overlap", Transform{}, Circle(1), Transform{X: 1.5}, Circle(1), true, cp.Vector{X: -0.5}},
		{"circles_apart", Transform{}, Circle(1), Transform{X: 3}, Circle(1), false, cp.Vector{}},
		{"circles_touching", Transform{}, Circle(1), Transform{X: 2}, Circle(1), true, cp.Vector{}},
		{"circles_concentric", Transform{}, Circle(1), Transform{}, Circle(1), true, cp.Vector{X: 2}},
		{"boxes_overlap_x", Transform{}, square(2), Transform{X: 3, Y: 0.5}, square(2), true, cp.Vector{X: -1}},
		{"boxes_overlap_y", Transform{Y: 3.5}, square(2), Transform{X: 0.5}, square(2), true, cp.Vector{Y: 0.5}},
		{"boxes_apart", Transform{}, square(2), Transform{X: 4.5}, square(2), false, cp.Vector{}},
		{"circle_box_side", Transform{X: 3}, Circle(1.5), Transform{}, square(2), true, cp.Vector{X: 0.5}},
		{"box_circle_side", Transform{}, square(2), Transform{X: 3}, Circle(1.5), true, cp.Vector{X: -0.5}},
		{"circle_box_corner_gap", Transform{X: 2.8, Y: 2.8}, Circle(1), Transform{}, square(2), false, cp.Vector{}},
		{"circle_centred_on_corner", Transform{X: 2, Y: 2}, Circle(1), Transform{}, square(2), true, cp.Vector{Y: 1}},
		{"empty_polygon", Transform{}, Polygon(), Transform{}, square(2), false, cp.Vector{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			collided, mtv := SeparatingAxisTest(c.t1, c.s1, c.t2, c.s2)
			if collided != c.collided {
				t.Fatalf("expected collided=%v, got %v", c.collided, collided)
			}
			if !near(mtv, c.mtv) {
				t.Fatalf("expected mtv %v, got %v", c.mtv, mtv)
			}
		})
	}
}

func TestSeparatingAxisTestSymmetry(t *testing.T) {
	cases := []struct {
		name   string
		t1, t2 Transform
		s1, s2 Shape
	}{
		{"circles", Transform{}, Transform{X: 1, Y: 1}, Circle(1), Circle(1.2)},
		{"boxes", Transform{}, Transform{X: 3, Y: 0.5}, square(2), square(2)},
		{"circle_box", Transform{X: 3}, Transform{}, Circle(1.5), square(2)},
		{"wide_box", Transform{X: 1, Y: -2.5}, Transform{}, HalfExtents(6, 1, 0, 0).Shape, square(2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok1, m1 := SeparatingAxisTest(c.t1, c.s1, c.t2, c.s2)
			ok2, m2 := SeparatingAxisTest(c.t2, c.s2, c.t1, c.s1)
			if ok1 != ok2 {
				t.Fatalf("collided differs by order: %v vs %v", ok1, ok2)
			}
			if !near(m1, m2.Neg()) {
				t.Fatalf("mtv should flip with order: %v vs %v", m1, m2)
			}
		})
	}
}

func TestSeparatingAxisTestPushesApart(t *testing.T) {
	t1 := Transform{X: 1, Y: 1}
	t2 := Transform{}
	collided, mtv := SeparatingAxisTest(t1, square(2), t2, Circle(2))
	if !collided {
		t.Fatalf("expected collision")
	}
	if t2.Vector().Sub(t1.Vector()).Dot(mtv) > 0 {
		t.Fatalf("mtv %v points towards body 2", mtv)
	}
	moved := t1.Translate(mtv)
	if ok, rest := SeparatingAxisTest(moved, square(2), t2, Circle(2)); ok && rest.Length() > 1e-6 {
		t.Fatalf("still penetrating after applying mtv: %v", rest)
	}
}

func TestSeparatingAxisTestCircleOnVertex(t *testing.T) {
	corners := []Transform{{X: 2, Y: 2}, {X: -2, Y: 2}, {X: 2, Y: -2}, {X: -2, Y: -2}}
	for _, ct := range corners {
		collided, mtv := SeparatingAxisTest(ct, Circle(1), Transform{}, square(2))
		if !collided {
			t.Fatalf("circle at %+v should collide", ct)
		}
		if math.Abs(mtv.Length()-1) > 1e-9 {
			t.Fatalf("circle at %+v: expected a unit-depth mtv, got %v", ct, mtv)
		}
		moved := ct.Translate(mtv)
		if ok, rest := SeparatingAxisTest(moved, Circle(1), Transform{}, square(2)); ok && rest.Length() > 1e-9 {
			t.Fatalf("circle at %+v still penetrating after mtv %v: %v", ct, mtv, rest)
		}
	}
}

func TestSeparateTouchingAxis(t *testing.T) {
	collided, mtv, axis := separate(Transform{X: 4}, square(2), Transform{}, square(2))
	if !collided || mtv.LengthSq() != 0 {
		t.Fatalf("touching boxes: collided=%v mtv=%v", collided, mtv)
	}
	if !near(axis, cp.Vector{X: 1}) {
		t.Fatalf("expected axis pointing from body 2 to body 1, got %v", axis)
	}
}
