package discovery

import (
	"testing"

	"syci/internal/domain"
)

func unitsNamed(names ...string) []domain.TestUnit {
	units := make([]domain.TestUnit, 0, len(names))
	for _, name := range names {
		units = append(units, domain.NewTestUnit(name, name+".sy"))
	}
	return units
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		units    []domain.TestUnit
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			units:    unitsNamed("00_main", "01_var", "02_while"),
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			units:    unitsNamed("00_main", "01_var", "02_while"),
			pattern:  "*_while",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			units:    unitsNamed("00_while", "01_var", "02_while_if", "03_if"),
			pattern:  "*while*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			units:    unitsNamed("00_main", "01_var", "02_while"),
			pattern:  "var",
			expected: 1,
		},
		{
			name:     "no matches",
			units:    unitsNamed("00_main", "01_var"),
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "nested name matched by directory glob",
			units:    unitsNamed("functional/00_main", "performance/01_fft", "functional/02_var"),
			pattern:  "functional/*",
			expected: 2,
		},
		{
			name:     "nested name matched by last element",
			units:    unitsNamed("functional/00_main", "performance/00_main"),
			pattern:  "00_*",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.units, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty unit list", func(t *testing.T) {
		result := filter.FilterByName(nil, "*main")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("order is preserved", func(t *testing.T) {
		result := filter.FilterByName(unitsNamed("a_if", "b_main", "c_if"), "*if")
		if len(result) != 2 || result[0].Name != "a_if" || result[1].Name != "c_if" {
			t.Errorf("expected [a_if c_if], got %v", result)
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		result := filter.FilterByName(unitsNamed("long_array_sum", "long_func_sum", "short_sum"), "*long*sum*")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})
}
