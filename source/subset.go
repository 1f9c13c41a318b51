package source

import (
	"context"
	"fmt"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

// WithFields narrows a dataset to the named fields, keeping the
// underlying column order. Unknown names are an error so a typo does
// not silently profile nothing.
func WithFields(ds profiler.Dataset, names []string) (profiler.Dataset, error) {
	if len(names) == 0 {
		return ds, nil
	}
	all, err := ds.Fields()
	if err != nil {
		return nil, err
	}
	wanted := map[string]bool{}
	for _, n := range names {
		wanted[n] = true
	}

	var indices []int
	var fields []models.FieldDescriptor
	for i, f := range all {
		if wanted[f.Name] {
			indices = append(indices, i)
			fields = append(fields, f)
			delete(wanted, f.Name)
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("unknown field %q", n)
	}
	return &fieldSubset{ds: ds, indices: indices, fields: fields}, nil
}

type fieldSubset struct {
	ds      profiler.Dataset
	indices []int
	fields  []models.FieldDescriptor
}

func (s *fieldSubset) Fields() ([]models.FieldDescriptor, error) { return s.fields, nil }

func (s *fieldSubset) TotalRows() (int64, error) { return s.ds.TotalRows() }

func (s *fieldSubset) Rows(ctx context.Context) (profiler.RowIterator, error) {
	iter, err := s.ds.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return &subsetIterator{iter: iter, indices: s.indices}, nil
}

type subsetIterator struct {
	iter    profiler.RowIterator
	indices []int
}

func (it *subsetIterator) Next() (models.Row, bool, error) {
	row, ok, err := it.iter.Next()
	if !ok || err != nil {
		return models.Row{}, ok, err
	}
	values := make([]models.RawValue, len(it.indices))
	for i, idx := range it.indices {
		if idx < len(row.Values) {
			values[i] = row.Values[idx]
		} else {
			values[i] = models.Null()
		}
	}
	return models.Row{ID: row.ID, Values: values}, true, nil
}

func (it *subsetIterator) Close() error { return it.iter.Close() }
