package AbstractFunctions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"612 345 678", "612345678"},
		{"+34-612-345-678", "612345678"},
		{"612345678", "612345678"},
		{"6123", ""},
		{"", ""},
		{"abc", ""},
		{"(+34) 612.345.678", "612345678"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhoneLength(t *testing.T) {
	// Whatever comes in, the result is exactly 9 digits or empty.
	inputs := []string{"1", "123456789012345", "+34 612 345 678 ext 9", "ninguno"}
	for _, input := range inputs {
		got := NormalizePhone(input)
		if got != "" && len(got) != 9 {
			t.Errorf("NormalizePhone(%q) = %q; length %d", input, got, len(got))
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input interface{}
		want  time.Time
	}{
		{"iso", "2025-01-15", want},
		{"spanish", "15/01/2025", want},
		{"us fallback", "01/15/2025", want},
		{"compact", "20250115", want},
		{"datetime", "2025-01-15 13:45:00", want},
		{"native", time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC), want},
		{"nil", nil, time.Time{}},
		{"nat", "NaT", time.Time{}},
		{"garbage", "not a date", time.Time{}},
		{"empty", "", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestToStoreValueDateRoundTrip(t *testing.T) {
	// Any accepted date representation must land as a midnight datetime.
	for _, input := range []string{"2025-03-07", "07/03/2025", "20250307"} {
		v := ToStoreValue(NormalizeDate(input))
		stored, ok := v.(time.Time)
		if !ok {
			t.Fatalf("ToStoreValue(NormalizeDate(%q)) = %T; want time.Time", input, v)
		}
		assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), stored)
		h, m, s := stored.Clock()
		assert.Zero(t, h+m+s, "not midnight")
	}
}

func TestToStoreValueNullish(t *testing.T) {
	for _, input := range []interface{}{nil, "", "NaT", "nan", "None", time.Time{}} {
		if got := ToStoreValue(input); got != nil {
			t.Errorf("ToStoreValue(%v) = %v; want nil", input, got)
		}
	}
}

func TestToStoreValuePassthrough(t *testing.T) {
	assert.Equal(t, true, ToStoreValue(true))
	assert.Equal(t, "Ana", ToStoreValue("Ana"))
	assert.Equal(t, 42, ToStoreValue(42))
	assert.Equal(t, 19.5, ToStoreValue(19.5))
	assert.Equal(t, []string{"Maillot", "Culotte"}, ToStoreValue([]string{"Maillot", "Culotte"}))
}

func TestToStoreValueListElementWise(t *testing.T) {
	got := ToStoreValue([]interface{}{"Maillot", "NaT", 3})
	assert.Equal(t, []interface{}{"Maillot", nil, 3}, got)
}

func TestCoercions(t *testing.T) {
	n, ok := ToInt("12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = ToInt("doce")
	assert.False(t, ok)

	n, ok = ToInt(int64(7))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	assert.Equal(t, 120.5, ToFloat("120.5"))
	assert.Equal(t, 120.5, ToFloat("120,5"))
	assert.Equal(t, 3.0, ToFloat(int64(3)))

	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))

	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "9", ToString(9))
}
