package dataset

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kshedden/dstream/dstream"
)

// missingMarker is how the source data encodes a missing value.
const missingMarker = "?"

// LoadConfig controls how rows with problems are handled during loading.
type LoadConfig struct {

	// DropMissing drops rows with a missing value in any analysis
	// column instead of failing the load.  Dropped rows are counted in
	// Table.Dropped.  Values are never imputed or coerced.
	DropMissing bool
}

// Load reads the encounters table from r.  The five analysis columns are
// read as strings and parsed explicitly so that missing markers and domain
// violations are surfaced rather than coerced.
func Load(r io.Reader, cfg LoadConfig) (*Table, error) {

	types := []dstream.VarType{
		{Name: ColPriorInpatient, Type: dstream.String},
		{Name: ColTimeInHospital, Type: dstream.String},
		{Name: ColInsulin, Type: dstream.String},
		{Name: ColAge, Type: dstream.String},
		{Name: ColReadmitted, Type: dstream.String},
	}

	dst := dstream.FromCSV(r).SetTypes(types).ChunkSize(1024).HasHeader().Done()

	// Column positions in the stream
	pos := make(map[string]int)
	for k, na := range dst.Names() {
		pos[na] = k
	}
	required := []string{ColPriorInpatient, ColTimeInHospital, ColInsulin, ColAge, ColReadmitted}
	for _, na := range required {
		if _, ok := pos[na]; !ok {
			return nil, fmt.Errorf("dataset: column '%s' not found in input", na)
		}
	}

	tbl := new(Table)
	row := 0

	for dst.Next() {

		prior := dst.GetPos(pos[ColPriorInpatient]).([]string)
		stay := dst.GetPos(pos[ColTimeInHospital]).([]string)
		insulin := dst.GetPos(pos[ColInsulin]).([]string)
		age := dst.GetPos(pos[ColAge]).([]string)
		readmit := dst.GetPos(pos[ColReadmitted]).([]string)

		for i := range readmit {
			row++
			err := tbl.parseRow(prior[i], stay[i], insulin[i], age[i], readmit[i])
			if err != nil {
				if cfg.DropMissing && isMissingErr(err) {
					tbl.Dropped++
					continue
				}
				return nil, fmt.Errorf("dataset: row %d: %w", row, err)
			}
		}
	}

	if tbl.NumRows() == 0 {
		return nil, fmt.Errorf("dataset: no usable rows in input")
	}

	return tbl, nil
}

// LoadFile reads the encounters table from the named file, decompressing
// it if the name ends in .gz.
func LoadFile(path string, cfg LoadConfig) (*Table, error) {

	fid, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer fid.Close()

	var r io.Reader = fid
	if strings.HasSuffix(path, ".gz") {
		gid, err := gzip.NewReader(fid)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: %w", path, err)
		}
		defer gid.Close()
		r = gid
	}

	return Load(r, cfg)
}

// missingErr marks a row rejected for a missing value, so that the
// drop-missing policy can distinguish it from a malformed value.
type missingErr struct {
	col string
}

func (e missingErr) Error() string {
	return fmt.Sprintf("missing value in column '%s'", e.col)
}

func isMissingErr(err error) bool {
	_, ok := err.(missingErr)
	return ok
}

func (t *Table) parseRow(prior, stay, insulin, age, readmit string) error {

	for _, c := range []struct{ name, val string }{
		{ColPriorInpatient, prior},
		{ColTimeInHospital, stay},
		{ColInsulin, insulin},
		{ColAge, age},
		{ColReadmitted, readmit},
	} {
		if c.val == missingMarker || c.val == "" {
			return missingErr{col: c.name}
		}
	}

	np, err := strconv.Atoi(prior)
	if err != nil {
		return fmt.Errorf("column '%s': %w", ColPriorInpatient, err)
	}
	if np < 0 {
		return fmt.Errorf("column '%s': negative count %d", ColPriorInpatient, np)
	}

	nd, err := strconv.Atoi(stay)
	if err != nil {
		return fmt.Errorf("column '%s': %w", ColTimeInHospital, err)
	}
	if nd < 1 {
		return fmt.Errorf("column '%s': non-positive stay %d", ColTimeInHospital, nd)
	}

	if !contains(DoseLevels(), insulin) {
		return fmt.Errorf("column '%s': unknown level '%s'", ColInsulin, insulin)
	}
	if !contains(AgeLevels(), age) {
		return fmt.Errorf("column '%s': unknown bracket '%s'", ColAge, age)
	}
	if readmit != ReadmitNo && readmit != ReadmitEarly && readmit != ReadmitLate {
		return fmt.Errorf("column '%s': unknown outcome '%s'", ColReadmitted, readmit)
	}

	t.append(float64(np), float64(nd), insulin, age, readmit)

	return nil
}
