package mython

import (
	"strings"
	"testing"
)

func TestTruthiness(t *testing.T) {
	cls := newClass("C", nil, nil)
	cases := []struct {
		val  Value
		want bool
	}{
		{NewNone(), false},
		{NewBool(true), true},
		{NewBool(false), false},
		{NewNumber(0), false},
		{NewNumber(-3), true},
		{NewString(""), false},
		{NewString("x"), true},
		{NewClass(cls), true},
		{NewInstance(newInstance(cls)), true},
	}
	for _, tc := range cases {
		if got := tc.val.Truthy(); got != tc.want {
			t.Fatalf("Truthy(%s %s) = %v, want %v", tc.val.Kind(), tc.val, got, tc.want)
		}
	}
}

func TestValueString(t *testing.T) {
	cls := newClass("Dog", nil, nil)
	cases := []struct {
		val  Value
		want string
	}{
		{NewNone(), "None"},
		{NewBool(true), "True"},
		{NewBool(false), "False"},
		{NewNumber(-42), "-42"},
		{NewString("raw bytes"), "raw bytes"},
		{NewClass(cls), "Class Dog"},
	}
	for _, tc := range cases {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}

	inst := NewInstance(newInstance(cls))
	if got := inst.String(); !strings.HasPrefix(got, "<Dog instance at 0x") {
		t.Fatalf("unexpected instance rendering %q", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[ValueKind]string{
		KindNone:     "None",
		KindBool:     "Bool",
		KindNumber:   "Number",
		KindString:   "String",
		KindClass:    "Class",
		KindInstance: "ClassInstance",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("Kind %d = %q, want %q", int(kind), got, want)
		}
	}
}

func TestAccessorsOnWrongKind(t *testing.T) {
	if NewString("x").Int() != 0 {
		t.Fatalf("Int on string should be zero")
	}
	if NewNumber(1).Str() != "" {
		t.Fatalf("Str on number should be empty")
	}
	if NewNumber(1).Instance() != nil || NewNumber(1).Class() != nil {
		t.Fatalf("pointer accessors on number should be nil")
	}
	if NewNumber(1).Bool() {
		t.Fatalf("Bool on number should be false")
	}
}

func TestMethodLookupFallsThroughParent(t *testing.T) {
	parent := newClass("A", []Method{{Name: "m"}}, nil)
	child := newClass("B", []Method{{Name: "n", FormalParams: []string{"x"}}}, parent)

	if child.GetMethod("m") == nil {
		t.Fatalf("inherited lookup failed")
	}
	if child.GetMethod("missing") != nil {
		t.Fatalf("lookup invented a method")
	}

	inst := newInstance(child)
	if !inst.HasMethod("n", 1) || inst.HasMethod("n", 0) {
		t.Fatalf("arity check wrong for n")
	}
	if !inst.HasMethod("m", 0) {
		t.Fatalf("inherited arity check wrong for m")
	}
}

func TestOverrideShadowsParent(t *testing.T) {
	parent := newClass("A", []Method{{Name: "m", FormalParams: []string{"x"}}}, nil)
	child := newClass("B", []Method{{Name: "m"}}, parent)

	m := child.GetMethod("m")
	if m == nil || len(m.FormalParams) != 0 {
		t.Fatalf("override did not take precedence: %#v", m)
	}
}
