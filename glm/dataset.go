package glm

import (
	"fmt"
)

// Dtype is the numeric type used for all data columns.
type Dtype = float64

// Dataset is a column-oriented data set for model fitting.  One column is
// the outcome variable, the remaining named columns are covariates.
type Dataset struct {
	data   [][]Dtype
	names  []string
	yname  string
	xnames []string
}

// NewDataset creates a Dataset from the given columns.  The columns of data
// correspond by position to names.  yname is the name of the outcome
// variable, and xnames are the names of the covariates to be included in a
// model.  NewDataset panics if the columns are ragged or if any referenced
// name is not present.
func NewDataset(data [][]Dtype, names []string, yname string, xnames []string) Dataset {

	if len(data) != len(names) {
		msg := fmt.Sprintf("glm: %d data columns but %d names", len(data), len(names))
		panic(msg)
	}

	for j := range data {
		if len(data[j]) != len(data[0]) {
			msg := fmt.Sprintf("glm: column %s has length %d, expected %d",
				names[j], len(data[j]), len(data[0]))
			panic(msg)
		}
	}

	ds := Dataset{
		data:   data,
		names:  names,
		yname:  yname,
		xnames: xnames,
	}

	// Fail fast on misconfiguration.
	ds.pos(yname)
	for _, na := range xnames {
		ds.pos(na)
	}

	return ds
}

// pos returns the position of the named column.
func (ds Dataset) pos(name string) int {
	for k, na := range ds.names {
		if na == name {
			return k
		}
	}
	msg := fmt.Sprintf("glm: variable '%s' not found", name)
	panic(msg)
}

// Names returns the names of all columns in the data set.
func (ds Dataset) Names() []string {
	return ds.names
}

// Yname returns the name of the outcome variable.
func (ds Dataset) Yname() string {
	return ds.yname
}

// Xnames returns the names of the covariates.
func (ds Dataset) Xnames() []string {
	return ds.xnames
}

// NumObs returns the number of rows in the data set.
func (ds Dataset) NumObs() int {
	if len(ds.data) == 0 {
		return 0
	}
	return len(ds.data[0])
}

// NumVar returns the number of columns in the data set.
func (ds Dataset) NumVar() int {
	return len(ds.data)
}

// Col returns the data for the named column.  The returned slice is not a
// copy and must not be modified.
func (ds Dataset) Col(name string) []Dtype {
	return ds.data[ds.pos(name)]
}

// Y returns the outcome column.
func (ds Dataset) Y() []Dtype {
	return ds.data[ds.pos(ds.yname)]
}

// Subset returns a new Dataset containing only the given rows, in the given
// order.  The returned data are deep copies.
func (ds Dataset) Subset(rows []int) Dataset {

	data := make([][]Dtype, len(ds.data))
	for j := range ds.data {
		col := make([]Dtype, len(rows))
		for i, r := range rows {
			col[i] = ds.data[j][r]
		}
		data[j] = col
	}

	names := make([]string, len(ds.names))
	copy(names, ds.names)
	xnames := make([]string, len(ds.xnames))
	copy(xnames, ds.xnames)

	return Dataset{
		data:   data,
		names:  names,
		yname:  ds.yname,
		xnames: xnames,
	}
}
