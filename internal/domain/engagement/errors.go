package engagement

import "errors"

// ErrEmptyDataset is returned when Train receives no records.
var ErrEmptyDataset = errors.New("empty training set")
