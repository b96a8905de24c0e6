package dedupe

import (
	"reflect"
	"testing"
)

func TestStringSet_SortedDedupesAndOrders(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"dedupes duplicates", []string{"a", "a", "b"}, []string{"a", "b"}},
		{"length before lex", []string{"bc", "a", "ab"}, []string{"a", "ab", "bc"}},
		{"lex within equal length", []string{"c", "a", "b"}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStringSet()
			for _, elem := range tt.input {
				s.Upsert(elem)
			}
			if got := s.Sorted(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sorted() = %v; want %v", got, tt.want)
			}
			if s.Len() != len(tt.want) {
				t.Errorf("Len() = %d; want %d", s.Len(), len(tt.want))
			}
		})
	}
}
