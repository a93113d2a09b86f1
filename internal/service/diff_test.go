package service

import (
	"reflect"
	"testing"
)

func TestNewWork(t *testing.T) {
	tests := []struct {
		name      string
		found     []string
		processed map[string]struct{}
		want      []string
	}{
		{
			"partial overlap",
			[]string{"C", "A", "B"},
			map[string]struct{}{"B": {}},
			[]string{"A", "C"},
		},
		{
			"shrinks as ledger grows",
			[]string{"C", "A", "B"},
			map[string]struct{}{"B": {}, "C": {}},
			[]string{"A"},
		},
		{
			"everything processed",
			[]string{"A", "B"},
			map[string]struct{}{"A": {}, "B": {}},
			[]string{},
		},
		{
			"first run",
			[]string{"B", "A"},
			map[string]struct{}{},
			[]string{"A", "B"},
		},
		{
			"nothing discovered",
			nil,
			map[string]struct{}{"A": {}},
			[]string{},
		},
		{
			"duplicates and blanks dropped",
			[]string{"A", "A", "", "B"},
			map[string]struct{}{},
			[]string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWork(tt.found, tt.processed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewWork = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWorkNoURLNormalization(t *testing.T) {
	// equality is exact string equality: a trailing slash is a new link
	got := NewWork([]string{"/product/a17/", "/Product/a17"}, map[string]struct{}{"/product/a17": {}})
	want := []string{"/Product/a17", "/product/a17/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewWork = %v, want %v", got, want)
	}
}

func TestNewWorkDeterministicOrder(t *testing.T) {
	first := NewWork([]string{"z", "m", "a"}, nil)
	for i := 0; i < 20; i++ {
		again := NewWork([]string{"a", "z", "m"}, nil)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order not deterministic: %v vs %v", first, again)
		}
	}
}
