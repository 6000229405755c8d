package barfile

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// ValueFormatter formats values with the digit grouping and decimal mark
// of a locale, keeping a fixed number of significant digits.
type ValueFormatter struct {
	printer   *message.Printer
	precision int
}

// NewValueFormatter returns a formatter for a BCP 47 locale. An unparsable
// locale falls back to English, a non-positive precision to 6.
func NewValueFormatter(locale string, precision int) *ValueFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if precision <= 0 {
		precision = 6
	}
	return &ValueFormatter{printer: message.NewPrinter(tag), precision: precision}
}

// FormatterFor returns the value formatter configured by a chart.
func FormatterFor(c *chart.Chart) *ValueFormatter {
	return NewValueFormatter(c.Locale, c.Precision)
}

// Value formats a single number.
func (f *ValueFormatter) Value(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Precision(f.precision)))
}

// Format returns the display string of point i, or "" when it is absent.
func (f *ValueFormatter) Format(s *chart.Series, i int) string {
	if i < 0 || i >= len(s.Values) {
		return ""
	}
	v, ok := s.Values[i].Value.Get()
	if !ok {
		return ""
	}
	return f.Value(v)
}
