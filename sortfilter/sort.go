// Copyright © ZManager Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package sortfilter builds the comparator and predicate specs used by
// the listing engine: SortSpec orders a listing, FilterSpec admits or
// rejects entries.
package sortfilter

import (
	"sort"
	"strings"
	"time"

	"github.com/PerkyZZ999/ZManager/entry"
)

type SortField int

const (
	FieldName SortField = iota
	FieldSize
	FieldModified
	FieldCreated
	FieldExtension
	FieldKind
)

func (f SortField) String() string {
	switch f {
	case FieldSize:
		return "Size"
	case FieldModified:
		return "Date Modified"
	case FieldCreated:
		return "Date Created"
	case FieldExtension:
		return "Type"
	case FieldKind:
		return "Kind"
	default:
		return "Name"
	}
}

type SortOrder int

const (
	OrderAsc SortOrder = iota
	OrderDesc
)

func (o SortOrder) Toggle() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// SortSpec is the serializable sort configuration from spec §3.
type SortSpec struct {
	Field            SortField
	Order            SortOrder
	DirectoriesFirst bool
}

// DefaultSort matches spec §4.1 step 9's default: directories-first by
// case-insensitive name.
func DefaultSort() SortSpec {
	return SortSpec{Field: FieldName, Order: OrderAsc, DirectoriesFirst: true}
}

func NewSort(field SortField, order SortOrder) SortSpec {
	return SortSpec{Field: field, Order: order, DirectoriesFirst: true}
}

// ToggleOrSet flips Order if field is unchanged, otherwise adopts field
// at ascending order — the column-header click behavior.
func (s *SortSpec) ToggleOrSet(field SortField) {
	if s.Field == field {
		s.Order = s.Order.Toggle()
	} else {
		s.Field = field
		s.Order = OrderAsc
	}
}

// Sort orders entries in place per this spec. It is idempotent: a
// second call against already-sorted input produces the same order
// (spec §8), because every comparison — including the timestamp and
// final name tie-break — is a strict total order over stable keys.
func (s SortSpec) Sort(entries []entry.Meta) {
	sort.SliceStable(entries, func(i, j int) bool {
		return s.less(entries[i], entries[j])
	})
}

// Sorted returns a newly ordered copy, for callers that don't want to
// mutate their input slice.
func (s SortSpec) Sorted(entries []entry.Meta) []entry.Meta {
	out := make([]entry.Meta, len(entries))
	copy(out, entries)
	s.Sort(out)
	return out
}

func (s SortSpec) less(a, b entry.Meta) bool {
	if s.DirectoriesFirst {
		ad, bd := a.Kind.IsDir(), b.Kind.IsDir()
		if ad != bd {
			return ad
		}
	}

	cmp := s.compareField(a, b)
	if s.Order == OrderDesc {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}

	// Stability tie-break named in spec §4.1 step 9: always by
	// case-insensitive name, regardless of primary order.
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func (s SortSpec) compareField(a, b entry.Meta) int {
	switch s.Field {
	case FieldSize:
		return compareUint64(a.SizeBytes, b.SizeBytes)
	case FieldModified:
		return compareTimePtr(a.Modified, b.Modified)
	case FieldCreated:
		return compareTimePtr(a.Created, b.Created)
	case FieldExtension:
		return strings.Compare(a.Extension, b.Extension)
	case FieldKind:
		return strings.Compare(a.Kind.String(), b.Kind.String())
	default: // FieldName
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareTimePtr treats a nil timestamp as the least value, per spec
// §3: "Null timestamps sort as least."
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}
