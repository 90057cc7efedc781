package report

import (
	"bytes"
	"fmt"
	"strings"
)

// Fmter formats the elements of an array of values into display strings.
type Fmter func(interface{}, string) []string

// Table holds one formatted table of the report.
type Table struct {

	// Title
	Title string

	// Column names
	ColNames []string

	// Formatters for the column values
	ColFmt []Fmter

	// Cols[j] is the j^th column.  Its concrete type should be an
	// array, e.g. of numbers or strings.
	Cols []interface{}

	// Values at the top of the table
	Top []string

	// Messages displayed below the table
	Msg []string

	// Total width of the table
	tw int
}

// StringFmt left-justifies a column of strings.
func StringFmt(x interface{}, h string) []string {
	y := x.([]string)
	m := len(h)
	for i := range y {
		if len(y[i]) > m {
			m = len(y[i])
		}
	}
	var z []string
	for i := range y {
		c := fmt.Sprintf("%%-%ds", m)
		z = append(z, fmt.Sprintf(c, y[i]))
	}
	return z
}

// NumFmt formats a column of numbers with the given format verb.
func NumFmt(format string) Fmter {
	return func(x interface{}, h string) []string {
		y := x.([]float64)
		var s []string
		for i := range y {
			s = append(s, fmt.Sprintf(format, y[i]))
		}
		return s
	}
}

// line draws a line of the given character filling the width of the table.
func (s *Table) line(c string) string {
	return strings.Repeat(c, s.tw) + "\n"
}

// top constructs the upper part of the table, which contains summary
// values laid out in two columns.
func (s *Table) top(gap int) string {

	w := []int{0, 0}

	for j, x := range s.Top {
		if len(x) > w[j%2] {
			w[j%2] = len(x)
		}
	}

	var b bytes.Buffer

	for j, x := range s.Top {
		c := fmt.Sprintf("%%-%ds", w[j%2])
		b.WriteString(fmt.Sprintf(c, x))
		if j%2 == 1 {
			b.WriteString("\n")
		} else {
			b.WriteString(strings.Repeat(" ", gap))
		}
	}

	if len(s.Top)%2 == 1 {
		b.WriteString("\n")
	}

	return b.String()
}

// String returns the table as a string.
func (s *Table) String() string {

	var tab [][]string
	var wx []int
	for j, c := range s.Cols {
		u := s.ColFmt[j](c, s.ColNames[j])
		tab = append(tab, u)
		if len(u) > 0 && len(u[0]) > len(s.ColNames[j]) {
			wx = append(wx, len(u[0])+2)
		} else {
			wx = append(wx, len(s.ColNames[j])+2)
		}
	}

	// Get the total width of the table
	s.tw = 0
	for _, w := range wx {
		s.tw += w
	}
	if s.tw < len(s.Title) {
		s.tw = len(s.Title)
	}

	var buf bytes.Buffer

	// Center the title
	kr := (s.tw - len(s.Title)) / 2
	if kr < 0 {
		kr = 0
	}
	buf.WriteString(strings.Repeat(" ", kr))
	buf.WriteString(s.Title)
	buf.WriteString("\n")

	buf.WriteString(s.line("="))
	if len(s.Top) > 0 {
		buf.WriteString(s.top(10))
		buf.WriteString(s.line("-"))
	}

	for j, c := range s.ColNames {
		f := fmt.Sprintf("%%%ds", wx[j])
		buf.WriteString(fmt.Sprintf(f, c))
	}
	buf.WriteString("\n")
	buf.WriteString(s.line("-"))

	nrow := 0
	if len(tab) > 0 {
		nrow = len(tab[0])
	}
	for i := 0; i < nrow; i++ {
		for j := 0; j < len(tab); j++ {
			f := fmt.Sprintf("%%%ds", wx[j])
			buf.WriteString(fmt.Sprintf(f, tab[j][i]))
		}
		buf.WriteString("\n")
	}
	buf.WriteString(s.line("-"))

	for _, msg := range s.Msg {
		buf.WriteString(msg + "\n")
	}

	return buf.String()
}
