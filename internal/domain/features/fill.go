package features

import "gonum.org/v1/gonum/stat"

// FillPolicy decides what a missing value becomes before modeling.
type FillPolicy int

const (
	// ZeroFill replaces missing values with 0. Used by the turnover classifier.
	ZeroFill FillPolicy = iota
	// MeanFill replaces missing values with the column mean over the given
	// records. Used by the engagement regressor.
	MeanFill
)

func (p FillPolicy) String() string {
	switch p {
	case ZeroFill:
		return "zero"
	case MeanFill:
		return "mean"
	default:
		return "unknown"
	}
}

// Column returns one filled column.
func (p FillPolicy) Column(records []Record, col string) []float64 {
	fill := 0.0
	if p == MeanFill {
		fill = columnMean(records, col)
	}
	out := make([]float64, len(records))
	for i := range records {
		out[i] = records[i].ValueOr(col, fill)
	}
	return out
}

// Matrix returns a row-major matrix with one row per record and one column
// per entry of cols, in order.
func (p FillPolicy) Matrix(records []Record, cols []string) [][]float64 {
	columns := make([][]float64, len(cols))
	for j, c := range cols {
		columns[j] = p.Column(records, c)
	}
	rows := make([][]float64, len(records))
	for i := range rows {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = columns[j][i]
		}
		rows[i] = row
	}
	return rows
}

// PresentColumns keeps the candidates for which at least one record has a
// value, preserving candidate order.
func PresentColumns(records []Record, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		for i := range records {
			if records[i].Value(c) != nil {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// columnMean is the mean of the non-missing values, 0 if there are none.
func columnMean(records []Record, col string) float64 {
	vals := make([]float64, 0, len(records))
	for i := range records {
		if v := records[i].Value(col); v != nil {
			vals = append(vals, *v)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
