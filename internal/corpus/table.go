package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Column names of the job table. Input files must carry ColSource; ColID is
// synthesized from the row position when absent; the two output columns are
// added when missing.
const (
	ColID         = "id"
	ColSource     = "sourceText"
	ColTranslated = "translatedText"
	ColStatus     = "status"
)

// Status values of the output column. A row with no result yet holds the
// empty string, matching what a freshly seeded output file looks like.
const (
	StatusUnset = ""
	StatusEmpty = "empty"
	StatusOK    = "ok"
)

// ErrorStatus formats the status value for a row that failed at the article
// level.
func ErrorStatus(detail string) string {
	return "error: " + detail
}

// Table is the in-memory job state: every article row in input order, keyed
// by a unique id, with all input columns passed through untouched.
type Table struct {
	header []string
	rows   [][]string

	id         int
	source     int
	translated int
	status     int

	index map[string]int
}

// LoadInput reads the authoritative input table. It fails when the file is
// unreadable, the sourceText column is missing, or an id appears twice.
func LoadInput(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse input table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input table %s is empty", path)
	}

	t := &Table{header: records[0], rows: records[1:]}

	if columnIndex(t.header, ColSource) < 0 {
		return nil, fmt.Errorf("input table must contain a %q column", ColSource)
	}

	t.ensureColumn(ColID, func(i int) string { return strconv.Itoa(i) })
	t.ensureColumn(ColTranslated, nil)
	t.ensureColumn(ColStatus, nil)
	t.locateColumns()

	if err := t.buildIndex(); err != nil {
		return nil, err
	}

	return t, nil
}

// Len returns the number of article rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ID returns the stable identifier of row i.
func (t *Table) ID(i int) string {
	return t.rows[i][t.id]
}

// SourceText returns the original-language text of row i.
func (t *Table) SourceText(i int) string {
	return t.rows[i][t.source]
}

// Translated returns the destination-language text of row i, empty until
// the row has been processed.
func (t *Table) Translated(i int) string {
	return t.rows[i][t.translated]
}

// Status returns the status value of row i.
func (t *Table) Status(i int) string {
	return t.rows[i][t.status]
}

// Done reports whether row i already carries a translation and should be
// skipped on resume.
func (t *Table) Done(i int) bool {
	return strings.TrimSpace(t.Translated(i)) != ""
}

// SetResult records the translation outcome for row i.
func (t *Table) SetResult(i int, translated, status string) {
	t.rows[i][t.translated] = translated
	t.rows[i][t.status] = status
}

// ClearResults wipes both output columns on every row.
func (t *Table) ClearResults() {
	for i := range t.rows {
		t.SetResult(i, "", StatusUnset)
	}
}

// lookup returns the position of the row with the given id.
func (t *Table) lookup(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// ensureColumn appends a column when the header lacks it. fill provides the
// initial value per row position; nil fills with empty strings.
func (t *Table) ensureColumn(name string, fill func(i int) string) {
	if columnIndex(t.header, name) >= 0 {
		return
	}

	t.header = append(t.header, name)
	for i := range t.rows {
		value := ""
		if fill != nil {
			value = fill(i)
		}
		t.rows[i] = append(t.rows[i], value)
	}
}

func (t *Table) locateColumns() {
	t.id = columnIndex(t.header, ColID)
	t.source = columnIndex(t.header, ColSource)
	t.translated = columnIndex(t.header, ColTranslated)
	t.status = columnIndex(t.header, ColStatus)
}

func (t *Table) buildIndex() error {
	t.index = make(map[string]int, len(t.rows))
	for i := range t.rows {
		id := t.ID(i)
		if _, dup := t.index[id]; dup {
			return fmt.Errorf("duplicate id %q in input table", id)
		}
		t.index[id] = i
	}
	return nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}
