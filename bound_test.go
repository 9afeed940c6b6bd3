package bussinbank

import (
	"encoding/json"
	"testing"
)

func TestBound(t *testing.T) {
	f := Finite(12)
	if v, ok := f.Value(); !ok || v != 12 {
		t.Errorf("Finite(12).Value() = %v, %v, want 12, true", v, ok)
	}
	if f.IsUnbounded() {
		t.Errorf("Finite(12) must not be unbounded")
	}
	if got := f.Format("never"); got != "12" {
		t.Errorf("Got: %q, want: %q", got, "12")
	}

	u := Unbounded[int]()
	if _, ok := u.Value(); ok {
		t.Errorf("Unbounded().Value() must not be ok")
	}
	if got := u.Format("never"); got != "never" {
		t.Errorf("Got: %q, want: %q", got, "never")
	}
	var zero Bound[int]
	if !zero.IsUnbounded() {
		t.Errorf("the zero Bound must be unbounded")
	}
}

func TestBound_JSON(t *testing.T) {
	testCases := []struct {
		b    Bound[int]
		want string
	}{
		{Finite(0), "0"},
		{Finite(42), "42"},
		{Unbounded[int](), "null"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			b, err := json.Marshal(tc.b)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(b) != tc.want {
				t.Errorf("Got: %s, want: %s", b, tc.want)
			}
			var got Bound[int]
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}
			if got != tc.b {
				t.Errorf("Unmarshal(%s) = %v, want %v", b, got, tc.b)
			}
		})
	}
}
