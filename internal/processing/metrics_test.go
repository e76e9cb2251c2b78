package processing

import (
	"reflect"
	"testing"
)

func TestCalculateMetrics(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"max_temp": 28.0,
		"min_temp": 14.0,
		"paris":    20.0,
		"london":   16.0,
		"tokyo":    24.0,
	}

	got := CalculateMetrics(input, []Calculation{
		{Name: "temp_range", Operation: "subtract", Fields: []string{"max_temp", "min_temp"}},
		{Name: "total", Operation: "add", Fields: []string{"paris", "london", "tokyo"}},
		{Name: "avg", Operation: "average", Fields: []string{"paris", "london", "tokyo"}},
		{Name: "hottest", Operation: "max", Fields: []string{"paris", "london", "tokyo"}},
		{Name: "coldest", Operation: "min", Fields: []string{"paris", "london", "tokyo"}},
	}, nil)

	want := map[string]any{
		"temp_range": 14.0,
		"total":      60.0,
		"avg":        20.0,
		"hottest":    24.0,
		"coldest":    16.0,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%#v want=%#v", got, want)
	}
}

func TestCalculateMetrics_UnsupportedYieldsNil(t *testing.T) {
	t.Parallel()

	got := CalculateMetrics(map[string]any{"a": 1.0}, []Calculation{
		{Name: "bad_op", Operation: "modulo", Fields: []string{"a", "a"}},
		{Name: "too_few", Operation: "add", Fields: []string{"a"}},
		{Operation: "add"},
	}, nil)

	if v, ok := got["bad_op"]; !ok || v != nil {
		t.Errorf("bad_op: got %#v", v)
	}
	if v, ok := got["too_few"]; !ok || v != nil {
		t.Errorf("too_few: got %#v", v)
	}
	if v, ok := got["unknown"]; !ok || v != nil {
		t.Errorf("nameless calculation should land under unknown, got %#v", got)
	}
}

func TestCalculateMetrics_MissingFieldsReadZero(t *testing.T) {
	t.Parallel()

	got := CalculateMetrics(map[string]any{"present": 5.0}, []Calculation{
		{Name: "diff", Operation: "subtract", Fields: []string{"present", "absent"}},
	}, nil)

	if got["diff"] != 5.0 {
		t.Fatalf("got %#v", got["diff"])
	}
}
