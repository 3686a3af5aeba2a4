// Package resolve walks the section -> project -> organization override
// chain for section attributes.
package resolve

import (
	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
)

// Resolved is an effective value and the tier that supplied it.
type Resolved[T any] struct {
	Value  T
	Source model.Source
}

// Value returns the first non-nil tier. A non-nil pointer to a zero value
// (0, false, "") is an explicit override and wins. When every tier is nil
// the zero value is returned with SourceOrg.
func Value[T any](section, project, org *T) Resolved[T] {
	switch {
	case section != nil:
		return Resolved[T]{Value: *section, Source: model.SourceSection}
	case project != nil:
		return Resolved[T]{Value: *project, Source: model.SourceProject}
	case org != nil:
		return Resolved[T]{Value: *org, Source: model.SourceOrg}
	}
	var zero T
	return Resolved[T]{Value: zero, Source: model.SourceOrg}
}

// Slice is Value for list attributes. A nil slice is absent; an empty
// non-nil slice is an explicit "none selected".
func Slice[T any](section, project, org []T) Resolved[[]T] {
	switch {
	case section != nil:
		return Resolved[[]T]{Value: section, Source: model.SourceSection}
	case project != nil:
		return Resolved[[]T]{Value: project, Source: model.SourceProject}
	}
	return Resolved[[]T]{Value: org, Source: model.SourceOrg}
}

// ShouldApplyFinish reports whether the effective material for one slot
// takes a finish. Unknown materials never do.
func ShouldApplyFinish(section, project, org *int64, materials catalog.Materials) bool {
	if section == nil && project == nil && org == nil {
		return false
	}
	mat, ok := materials.Find(Value(section, project, org).Value)
	if !ok {
		return false
	}
	return mat.NeedsFinish
}
