// Package importer is the source-asset front end: it turns an input
// file into the list of named raw animation clips the converter
// exports. Implementations are selected by the command line front end
// from the input file extension.
package importer

import (
	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// Importer loads every animation clip of a source asset. The skeleton
// gives implementations the joint context of the clips they produce.
// samplingRate is in hertz; 0 keeps the source rate.
type Importer interface {
	Import(path string, skel *skeleton.Skeleton, samplingRate float64) ([]anim.RawAnimation, error)
}
