package barfile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

func TestValueFormatter(t *testing.T) {
	tests := []struct {
		locale    string
		precision int
		v         float64
		want      string
	}{
		{"en", 6, 1234.5, "1,234.5"},
		{"en", 6, 12, "12"},
		{"en", 6, -3.25, "-3.25"},
		{"de", 6, 1234.5, "1.234,5"},
		{"en", 3, 3.14159, "3.14"},
		{"not a locale", 6, 1000, "1,000"},
	}
	for _, tt := range tests {
		f := NewValueFormatter(tt.locale, tt.precision)
		assert.Equal(t, tt.want, f.Value(tt.v), "%s %v", tt.locale, tt.v)
	}
}

func TestValueFormatterSeries(t *testing.T) {
	c := chart.New(chart.Config{})
	s := chart.Series{Values: []chart.Datum{chart.V(7), chart.Missing()}}

	f := FormatterFor(c)
	assert.Equal(t, "7", f.Format(&s, 0))
	assert.Equal(t, "", f.Format(&s, 1))
	assert.Equal(t, "", f.Format(&s, 5))
}
