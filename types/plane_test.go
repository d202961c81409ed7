package types

import "testing"

func TestAxisPlane(t *testing.T) {
	p := NewAxisPlane(YAxis, 2)
	if p.Normal != (Vec3{0, 1, 0}) {
		t.Fatalf("expected plane normal to be +Y; got %v", p.Normal)
	}

	if d := p.Distance(Vec3{5, 5, 5}); d != 3 {
		t.Fatalf("expected distance 3; got %f", d)
	}

	if !p.PositiveSide(Vec3{0, 2, 0}) {
		t.Fatal("expected point on plane to be on the positive side")
	}

	if p.PositiveSide(Vec3{0, 1.9, 0}) {
		t.Fatal("expected point below plane to be on the negative side")
	}
}

func TestPlaneRayIntersection(t *testing.T) {
	p := NewAxisPlane(ZAxis, 0)

	type spec struct {
		ray   Ray
		expT  float32
		expOk bool
	}
	specs := []spec{
		{NewRay(Vec3{0, 0, 5}, Vec3{0, 0, -1}), 5, true},
		{NewRay(Vec3{0, 0, 5}, Vec3{0, 0, 1}), -5, true},
		{NewRay(Vec3{0, 0, 5}, Vec3{1, 0, 0}), 0, false},
		{NewRay(Vec3{0, 0, -2}, Vec3{0, 0, 0.5}), 4, true},
	}

	for index, s := range specs {
		tHit, ok := p.IntersectRay(s.ray)
		if ok != s.expOk {
			t.Fatalf("[spec %d] expected ok to be %t; got %t", index, s.expOk, ok)
		}
		if ok && tHit != s.expT {
			t.Fatalf("[spec %d] expected t to be %f; got %f", index, s.expT, tHit)
		}
	}
}

func TestVectorOps(t *testing.T) {
	a := XYZ(1, 0, 0)
	b := XYZ(0, 1, 0)
	if c := a.Cross(b); c != XYZ(0, 0, 1) {
		t.Fatalf("expected X cross Y to be Z; got %v", c)
	}

	if n := XYZ(0, 0, 0).Normalize(); n != (Vec3{}) {
		t.Fatalf("expected zero vector to normalize to zero; got %v", n)
	}

	if l := XYZ(3, 4, 0).Normalize().Len(); l < 0.9999 || l > 1.0001 {
		t.Fatalf("expected unit length; got %f", l)
	}

	if m := MinVec3(XYZ(1, 5, -2), XYZ(0, 6, -3)); m != XYZ(0, 5, -3) {
		t.Fatalf("unexpected min vector %v", m)
	}

	if m := MaxVec3(XYZ(1, 5, -2), XYZ(0, 6, -3)); m != XYZ(1, 6, -2) {
		t.Fatalf("unexpected max vector %v", m)
	}

	if a := XYZ(-1, 2, -3).Abs(); a != XYZ(1, 2, 3) {
		t.Fatalf("unexpected abs vector %v", a)
	}

	if ZAxis.Next() != XAxis {
		t.Fatal("expected axis after Z to wrap to X")
	}
}
