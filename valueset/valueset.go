package valueset

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A ValueSet is a lattice element: a set of integers.
//
// Duplicates collapse and the order of insertion is irrelevant.
// The zero value is an empty set that can be read but not added to.
type ValueSet map[int]struct{}

// New creates a ValueSet containing the provided values
func New(values ...int) ValueSet {
	vs := make(ValueSet, len(values))
	for _, v := range values {
		vs[v] = struct{}{}
	}
	return vs
}

func (vs ValueSet) Add(v int) {
	vs[v] = struct{}{}
}

func (vs ValueSet) Contains(v int) bool {
	_, ok := vs[v]
	return ok
}

func (vs ValueSet) Len() int {
	return len(vs)
}

// Union returns a new set containing the elements of both sets
func (vs ValueSet) Union(other ValueSet) ValueSet {
	out := make(ValueSet, len(vs)+len(other))
	for v := range vs {
		out[v] = struct{}{}
	}
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

// IsSubset returns true if every element of vs is in other.
// The empty set is a subset of every set.
func (vs ValueSet) IsSubset(other ValueSet) bool {
	if len(vs) > len(other) {
		return false
	}
	for v := range vs {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Comparable returns true if one of the sets is a subset of the other
func (vs ValueSet) Comparable(other ValueSet) bool {
	return vs.IsSubset(other) || other.IsSubset(vs)
}

// Difference returns the elements of vs that are not in other
func (vs ValueSet) Difference(other ValueSet) ValueSet {
	out := make(ValueSet)
	for v := range vs {
		if !other.Contains(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

func (vs ValueSet) Equal(other ValueSet) bool {
	return len(vs) == len(other) && vs.IsSubset(other)
}

// Sorted returns the elements of the set in increasing order
func (vs ValueSet) Sorted() []int {
	values := maps.Keys(vs)
	slices.Sort(values)
	return values
}

// String renders the set as {1 2 3} with the elements in increasing order
func (vs ValueSet) String() string {
	values := vs.Sorted()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// MarshalJSON encodes the set as a sorted array
func (vs ValueSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(vs.Sorted())
}

// MarshalYAML encodes the set as a sorted sequence
func (vs ValueSet) MarshalYAML() (interface{}, error) {
	return vs.Sorted(), nil
}

// UnmarshalJSON decodes the set from an array of integers
func (vs *ValueSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*vs = New(values...)
	return nil
}
