package semantic

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    QualifiedID
		wantErr bool
	}{
		{
			in:   "https://profiles.example.org/commerce#SearchCompany",
			want: QualifiedID{Profile: "https://profiles.example.org/commerce", Affordance: "SearchCompany"},
		},
		{
			in:   "P#op/Name",
			want: QualifiedID{Profile: "P", Affordance: "op", Parameter: "Name"},
		},
		{in: "no-hash", wantErr: true},
		{in: "#op", wantErr: true},
		{in: "P#", wantErr: true},
		{in: "P#/Name", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"P#op", "P#op/Name"} {
		q, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if q.String() != s {
			t.Errorf("String() = %q, want %q", q.String(), s)
		}
	}
}

func TestWithParameterAndOperation(t *testing.T) {
	op := QualifiedID{Profile: "P", Affordance: "op"}

	p := op.WithParameter("Name")
	if p.String() != "P#op/Name" || !p.IsParameter() {
		t.Errorf("WithParameter = %q", p.String())
	}
	if back := p.Operation(); back != op {
		t.Errorf("Operation() = %+v, want %+v", back, op)
	}
}

func TestQualified(t *testing.T) {
	op := QualifiedID{Profile: "P", Affordance: "op"}
	in := InputMap{"Name": "ACME", "City": "Vienna"}

	got := in.Qualified(op)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got["P#op/Name"] != "ACME" || got["P#op/City"] != "Vienna" {
		t.Errorf("Qualified() = %#v", got)
	}

	if (InputMap)(nil).Qualified(op) != nil {
		t.Error("nil input map should qualify to nil")
	}
}
