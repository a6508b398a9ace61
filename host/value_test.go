package host

import "testing"

func TestEqualValueNumerics(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{1.0, 1, true},
		{1.0, 1.00005, true},
		{1.0, 1.1, false},
		{int64(3), 3.0, true},
		{float32(0.5), 0.5, true},
		{1.0, "1", false},
	}
	for _, tc := range cases {
		if got := EqualValue(tc.a, tc.b); got != tc.want {
			t.Errorf("EqualValue(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqualValueColors(t *testing.T) {
	a := RGB{0.631, 0.631, 0.631}
	if !EqualValue(a, []float64{0.631, 0.63105, 0.631}) {
		t.Fatal("drift within tolerance rejected")
	}
	if EqualValue(a, RGB{0.6, 0.631, 0.631}) {
		t.Fatal("distinct colors compared equal")
	}
	if EqualValue(a, "grey") {
		t.Fatal("color compared equal to a string")
	}
}

func TestEqualValueScalars(t *testing.T) {
	if !EqualValue(true, true) || EqualValue(true, false) {
		t.Fatal("bool comparison broken")
	}
	if !EqualValue("wireframe", "wireframe") || EqualValue("wireframe", "smoothShaded") {
		t.Fatal("string comparison broken")
	}
}

func TestAsBool(t *testing.T) {
	cases := []struct {
		in   Value
		want bool
		ok   bool
	}{
		{true, true, true},
		{false, false, true},
		{1, true, true},
		{0, false, true},
		{2.5, true, true},
		{"true", false, false},
		{nil, false, false},
	}
	for _, tc := range cases {
		got, ok := AsBool(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("AsBool(%v) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAsInt(t *testing.T) {
	if v, ok := AsInt(70); !ok || v != 70 {
		t.Fatalf("AsInt(70) = %d, %v", v, ok)
	}
	if v, ok := AsInt(70.9); !ok || v != 70 {
		t.Fatalf("AsInt(70.9) = %d, %v, want truncation to 70", v, ok)
	}
	if _, ok := AsInt("70"); ok {
		t.Fatal("AsInt accepted a string")
	}
}

func TestAsRGBForms(t *testing.T) {
	want := RGB{0.5, 0.25, 0.125}
	for _, in := range []Value{
		want,
		[3]float64{0.5, 0.25, 0.125},
		[]float64{0.5, 0.25, 0.125},
		[]any{0.5, 0.25, 0.125},
		[]any{0.5, 0.25, float32(0.125)},
	} {
		got, ok := AsRGB(in)
		if !ok || got != want {
			t.Errorf("AsRGB(%#v) = %v, %v, want %v", in, got, ok, want)
		}
	}
	for _, in := range []Value{
		[]float64{0.5, 0.25},
		[]any{0.5, "red", 0.125},
		"red",
		nil,
	} {
		if _, ok := AsRGB(in); ok {
			t.Errorf("AsRGB(%#v) succeeded, want rejection", in)
		}
	}
}

func TestValidValue(t *testing.T) {
	for _, v := range []Value{true, 1, 1.5, "qt", RGB{}, []float64{0, 0, 0}} {
		if !ValidValue(v) {
			t.Errorf("ValidValue(%#v) = false", v)
		}
	}
	for _, v := range []Value{nil, []string{"a"}, map[string]int{}} {
		if ValidValue(v) {
			t.Errorf("ValidValue(%#v) = true", v)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(RGB{1, 0, 0.5}); got != "rgb(1, 0, 0.5)" {
		t.Fatalf("FormatValue(RGB) = %q", got)
	}
	if got := FormatValue(true); got != "true" {
		t.Fatalf("FormatValue(true) = %q", got)
	}
}
