/*
Package dataset loads the diabetic encounters table and prepares the
analysis cohort.  Only the five columns used by the readmission model are
read; the source file may carry any number of additional columns.
*/
package dataset

// Column names in the source CSV file.
const (
	ColPriorInpatient = "number_inpatient"
	ColTimeInHospital = "time_in_hospital"
	ColInsulin        = "insulin"
	ColAge            = "age"
	ColReadmitted     = "readmitted"
)

// Levels of the insulin dosage-change field.
const (
	DoseNo     = "No"
	DoseSteady = "Steady"
	DoseUp     = "Up"
	DoseDown   = "Down"
)

// Levels of the readmission outcome field.
const (
	ReadmitNo    = "NO"
	ReadmitEarly = "<30"
	ReadmitLate  = ">30"
)

// DoseLevels returns the valid levels of the insulin field, in reporting
// order.
func DoseLevels() []string {
	return []string{DoseUp, DoseDown, DoseSteady, DoseNo}
}

// AgeLevels returns the ten decade brackets of the age field, in order.
func AgeLevels() []string {
	return []string{
		"[0-10)", "[10-20)", "[20-30)", "[30-40)", "[40-50)",
		"[50-60)", "[60-70)", "[70-80)", "[80-90)", "[90-100)",
	}
}

// Table holds the analysis columns of the encounters file, one row per
// hospital encounter.
type Table struct {

	// Count of prior inpatient visits
	PriorInpatient []float64

	// Length of stay in days
	TimeInHospital []float64

	// Insulin dosage-change label
	Insulin []string

	// Age bracket label
	Age []string

	// Readmission outcome label
	Readmitted []string

	// Number of input rows dropped under the drop-missing policy
	Dropped int
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Readmitted)
}

func (t *Table) append(prior, stay float64, insulin, age, readmitted string) {
	t.PriorInpatient = append(t.PriorInpatient, prior)
	t.TimeInHospital = append(t.TimeInHospital, stay)
	t.Insulin = append(t.Insulin, insulin)
	t.Age = append(t.Age, age)
	t.Readmitted = append(t.Readmitted, readmitted)
}

func contains(levels []string, v string) bool {
	for _, q := range levels {
		if q == v {
			return true
		}
	}
	return false
}
