package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMergeRecursive(t *testing.T) {
	tests := []struct {
		name string
		dst  Record
		src  Record
		want Record
	}{
		{
			name: "disjoint keys",
			dst:  Record{"x": 1},
			src:  Record{"y": 2},
			want: Record{"x": 1, "y": 2},
		},
		{
			name: "scalar conflict collects both",
			dst:  Record{"a": "x"},
			src:  Record{"a": "y"},
			want: Record{"a": []any{"x", "y"}},
		},
		{
			name: "lists are concatenated",
			dst:  Record{"tags": []any{"a"}},
			src:  Record{"tags": []any{"b", "c"}},
			want: Record{"tags": []any{"a", "b", "c"}},
		},
		{
			name: "records merge recursively",
			dst:  Record{"m": Record{"k": 1}},
			src:  Record{"m": Record{"k": 2, "j": 3}},
			want: Record{"m": Record{"k": []any{1, 2}, "j": 3}},
		},
		{
			name: "nil destination keeps its slot",
			dst:  Record{"x": nil},
			src:  Record{"x": 5},
			want: Record{"x": []any{nil, 5}},
		},
		{
			name: "scalar appended to record",
			dst:  Record{"x": Record{"a": 1}},
			src:  Record{"x": nil},
			want: Record{"x": Record{"a": 1, "0": nil}},
		},
		{
			name: "record merged into scalar",
			dst:  Record{"x": 1},
			src:  Record{"x": Record{"a": 2}},
			want: Record{"x": Record{"0": 1, "a": 2}},
		},
		{
			name: "positional keys append",
			dst:  Record{"0": "a"},
			src:  Record{"0": "b"},
			want: Record{"0": "a", "1": "b"},
		},
		{
			name: "empty source",
			dst:  Record{"x": 1},
			src:  nil,
			want: Record{"x": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeRecursive(tt.dst, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeRecursive() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeRecursive_InputsUntouched(t *testing.T) {
	dst := Record{"tags": []any{"a"}, "m": Record{"k": 1}}
	src := Record{"tags": []any{"b"}, "m": Record{"k": 2}}

	_ = MergeRecursive(dst, src)

	assert.Equal(t, Record{"tags": []any{"a"}, "m": Record{"k": 1}}, dst)
	assert.Equal(t, Record{"tags": []any{"b"}, "m": Record{"k": 2}}, src)
}

func TestOverlay(t *testing.T) {
	got := Overlay(Record{"name": "Joe", "age": 30}, Record{"name": "ignored", "extra": true})
	assert.Equal(t, Record{"name": "Joe", "age": 30, "extra": true}, got)
}
