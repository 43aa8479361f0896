package shared

import (
	"testing"

	"agenda/shared/constant"
	"agenda/shared/dto"
)

func boolPtr(value bool) *bool {
	return &value
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *bool
	}{
		{
			name:     "true value",
			value:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "false value",
			value:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "empty value",
			value:    "",
			expected: nil,
		},
		{
			name:     "invalid value",
			value:    "not-a-bool",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := ConvertStringToBool(test.value)

			if test.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil {
				t.Fatalf("expected %t, got nil", *test.expected)
			}

			if *result != *test.expected {
				t.Errorf("expected %t, got %t", *test.expected, *result)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "with remainder",
			total:    21,
			limit:    10,
			expected: 3,
		},
		{
			name:     "zero total",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit",
			total:    20,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit",
			total:    20,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "fewer rows than limit",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := CalculateTotalPage(test.total, test.limit); result != test.expected {
				t.Errorf("expected %d, got %d", test.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name     string `db:"name"`
		Duration int    `db:"duration_min"`
		Internal string
	}

	data := updateRequest{
		Name:     "Haircut",
		Internal: "ignored",
	}

	fields := TransformFields(data, "admin")

	if fields["name"] != "Haircut" {
		t.Errorf("expected name %q, got %v", "Haircut", fields["name"])
	}

	if _, ok := fields["duration_min"]; ok {
		t.Error("expected zero-valued field to be skipped")
	}

	if fields[constant.FieldModifiedBy] != "admin" {
		t.Errorf("expected modified_by %q, got %v", "admin", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestFilterByID(t *testing.T) {
	group := FilterByID("some-id", "id", "appointments")

	if len(group.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected a dto.Filter, got %T", group.Filters[0])
	}

	if filter.Field != "id" {
		t.Errorf("expected field %q, got %q", "id", filter.Field)
	}

	if filter.Value != "some-id" {
		t.Errorf("expected value %q, got %v", "some-id", filter.Value)
	}

	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected operator %q, got %q", dto.FilterOperatorEq, filter.Operator)
	}

	if filter.Table != "appointments" {
		t.Errorf("expected table %q, got %q", "appointments", filter.Table)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if key := BuildCacheKey("appointment:get", "some-id"); key != "appointment:get:some-id" {
		t.Errorf("expected key %q, got %q", "appointment:get:some-id", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{
		Page:    2,
		Limit:   10,
		SortBy:  "start_time",
		SortDir: "asc",
	}

	first := BuildCacheKeyWithQuery("appointment:list", params, dto.FilterGroup{})
	second := BuildCacheKeyWithQuery("appointment:list", params, FilterByID("some-id", "id", "appointments"))

	if first == second {
		t.Error("expected different keys for different filters")
	}
}
