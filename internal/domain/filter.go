package domain

import (
	"cmp"
	"time"
)

// Filter holds the operators available on every filterable field. A nil
// filter, and every nil operator inside one, imposes no constraint; the
// operators that are present are combined with AND by the query builder.
type Filter[T comparable] struct {
	Equals    *T
	NotEquals *T
	In        []T
	Specified *bool
}

func (f *Filter[T]) Copy() *Filter[T] {
	if f == nil {
		return nil
	}
	c := &Filter[T]{
		Equals:    clonePtr(f.Equals),
		NotEquals: clonePtr(f.NotEquals),
		Specified: clonePtr(f.Specified),
	}
	if f.In != nil {
		c.In = append([]T(nil), f.In...)
	}
	return c
}

// RangeFilter adds ordered comparisons for numeric fields.
type RangeFilter[T cmp.Ordered] struct {
	Filter[T]
	GreaterThan        *T
	GreaterThanOrEqual *T
	LessThan           *T
	LessThanOrEqual    *T
}

func (f *RangeFilter[T]) Copy() *RangeFilter[T] {
	if f == nil {
		return nil
	}
	return &RangeFilter[T]{
		Filter:             *f.Filter.Copy(),
		GreaterThan:        clonePtr(f.GreaterThan),
		GreaterThanOrEqual: clonePtr(f.GreaterThanOrEqual),
		LessThan:           clonePtr(f.LessThan),
		LessThanOrEqual:    clonePtr(f.LessThanOrEqual),
	}
}

// StringFilter adds case-sensitive substring matching.
type StringFilter struct {
	Filter[string]
	Contains       *string
	DoesNotContain *string
}

func (f *StringFilter) Copy() *StringFilter {
	if f == nil {
		return nil
	}
	return &StringFilter{
		Filter:         *f.Filter.Copy(),
		Contains:       clonePtr(f.Contains),
		DoesNotContain: clonePtr(f.DoesNotContain),
	}
}

// TimeFilter adds ordered comparisons for timestamp fields. time.Time is not
// cmp.Ordered, so it cannot share RangeFilter.
type TimeFilter struct {
	Filter[time.Time]
	GreaterThan        *time.Time
	GreaterThanOrEqual *time.Time
	LessThan           *time.Time
	LessThanOrEqual    *time.Time
}

func (f *TimeFilter) Copy() *TimeFilter {
	if f == nil {
		return nil
	}
	return &TimeFilter{
		Filter:             *f.Filter.Copy(),
		GreaterThan:        clonePtr(f.GreaterThan),
		GreaterThanOrEqual: clonePtr(f.GreaterThanOrEqual),
		LessThan:           clonePtr(f.LessThan),
		LessThanOrEqual:    clonePtr(f.LessThanOrEqual),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
