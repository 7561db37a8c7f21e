package extract

import (
	"reflect"
	"testing"

	"github.com/semprofile/mapper/pkg/cursor"
)

func TestValue(t *testing.T) {
	companies := map[string]any{
		"companies": []any{
			map[string]any{"name": "ACME", "address": map[string]any{"city": "Vienna"}},
			map[string]any{"name": "Globex", "address": map[string]any{"city": "Linz"}},
		},
	}

	tests := []struct {
		name string
		data any
		cur  cursor.Cursor
		want any
	}{
		{
			name: "empty cursor returns data",
			data: map[string]any{"a": 1},
			cur:  cursor.Cursor{},
			want: map[string]any{"a": 1},
		},
		{
			name: "single property",
			data: map[string]any{"name": "ACME"},
			cur:  cursor.New(cursor.Property("name")),
			want: "ACME",
		},
		{
			name: "dotted path",
			data: map[string]any{"address": map[string]any{"city": "Vienna"}},
			cur:  cursor.New(cursor.Property("address.city")),
			want: "Vienna",
		},
		{
			name: "fan-out over array",
			data: companies,
			cur:  cursor.New(cursor.Property("companies"), cursor.Property("name")),
			want: []any{"ACME", "Globex"},
		},
		{
			name: "fan-out with dotted tail",
			data: companies,
			cur:  cursor.New(cursor.Property("companies"), cursor.Property("address.city")),
			want: []any{"Vienna", "Linz"},
		},
		{
			name: "trailing boundary yields elements themselves",
			data: map[string]any{"tags": []any{"a", "b"}},
			cur:  cursor.New(cursor.Property("tags"), cursor.Boundary()),
			want: []any{"a", "b"},
		},
		{
			name: "single segment over array fans out to elements",
			data: map[string]any{"tags": []any{"a", "b"}},
			cur:  cursor.New(cursor.Property("tags")),
			want: []any{"a", "b"},
		},
		{
			name: "nested arrays fan out per level",
			data: map[string]any{"groups": []any{
				[]any{map[string]any{"name": "A"}},
				[]any{map[string]any{"name": "B"}, map[string]any{"name": "C"}},
			}},
			cur: cursor.New(cursor.Property("groups"), cursor.Boundary(), cursor.Property("name")),
			want: []any{
				[]any{"A"},
				[]any{"B", "C"},
			},
		},
		{
			name: "missing key resolves to nil",
			data: map[string]any{"name": "ACME"},
			cur:  cursor.New(cursor.Property("missing")),
			want: nil,
		},
		{
			name: "missing intermediate key resolves to nil",
			data: map[string]any{"address": map[string]any{}},
			cur:  cursor.New(cursor.Property("address.city.zip")),
			want: nil,
		},
		{
			name: "scalar where object expected resolves to nil",
			data: map[string]any{"address": "not an object"},
			cur:  cursor.New(cursor.Property("address.city")),
			want: nil,
		},
		{
			name: "predicted array that is a scalar degrades to whole match",
			data: map[string]any{"companies": map[string]any{"name": "ACME"}},
			cur:  cursor.New(cursor.Property("companies"), cursor.Property("name")),
			want: map[string]any{"name": "ACME"},
		},
		{
			name: "nil data resolves to nil",
			data: nil,
			cur:  cursor.New(cursor.Property("name")),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(tt.data, tt.cur)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestValueFanOutLength(t *testing.T) {
	elems := make([]any, 7)
	for i := range elems {
		elems[i] = map[string]any{"name": "x"}
	}
	data := map[string]any{"companies": elems}

	got := Value(data, cursor.New(cursor.Property("companies"), cursor.Property("name")))
	arr, ok := got.([]any)
	if !ok {
		t.Fatalf("Value() = %T, want []any", got)
	}
	if len(arr) != len(elems) {
		t.Errorf("fan-out length = %d, want %d", len(arr), len(elems))
	}
}

func TestValueIsDeterministic(t *testing.T) {
	data := map[string]any{
		"companies": []any{
			map[string]any{"name": "ACME"},
			map[string]any{"name": "Globex"},
		},
	}
	cur := cursor.New(cursor.Property("companies"), cursor.Property("name"))

	first := Value(data, cur)
	second := Value(data, cur)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %#v vs %#v", first, second)
	}

	// The input payload must be untouched.
	if len(data["companies"].([]any)) != 2 {
		t.Error("extraction mutated the payload")
	}
}
