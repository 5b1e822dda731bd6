package source

// NoName is the reserved name of fields created without one. Converters
// never attach it to an output array.
const NoName = "NoNameField"

// Association says which dataset elements a field's tuples belong to.
type Association uint8

const (
	AssocAny Association = iota
	AssocPoints
	AssocCells
	AssocWholeDataSet
)

var assocNames = [...]string{
	AssocAny:          "any",
	AssocPoints:       "points",
	AssocCells:        "cells",
	AssocWholeDataSet: "whole_dataset",
}

func (a Association) String() string {
	if int(a) < len(assocNames) {
		return assocNames[a]
	}
	return "unknown"
}

// Field is a named array attached to a dataset.
type Field struct {
	Data        Array
	Name        string
	Association Association
}

// CoordinateSystem is a named array of point positions.
type CoordinateSystem struct {
	Data Array
	Name string
}
