package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/neonkore/OZZAnimC/internal/anim"
)

// The sanitizer is a pure function over JSON document text: it returns
// a new document with every schema path present and never mutates the
// input. Working on text rather than decoded maps keeps user-supplied
// siblings in their original order.

// kind is the closed set of value kinds the schema distinguishes. A
// number literal without a fraction or exponent is integer kind and
// does not satisfy a float field: kind matching is exact.
type kind int

const (
	kindNull kind = iota
	kindString
	kindBool
	kindInt
	kindFloat
	kindArray
	kindObject
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "UTF-8 string"
	case kindBool:
		return "boolean"
	case kindInt:
		return "integer"
	case kindFloat:
		return "float"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "null"
	}
}

func kindOf(v gjson.Result) kind {
	switch v.Type {
	case gjson.String:
		return kindString
	case gjson.True, gjson.False:
		return kindBool
	case gjson.Number:
		if strings.ContainsAny(v.Raw, ".eE") {
			return kindFloat
		}
		return kindInt
	case gjson.JSON:
		if v.IsArray() {
			return kindArray
		}
		return kindObject
	default:
		return kindNull
	}
}

func kindMismatch(path string, found, expected kind, desc string) error {
	err := fmt.Errorf("invalid type %q for json member %q: %q expected", found, path, expected)
	if desc != "" {
		err = fmt.Errorf("%w (%s)", err, desc)
	}
	return err
}

// EnsureArray checks that path holds an array, creating one with a
// single placeholder element when absent so element-level defaulting
// has a target.
func EnsureArray(doc, path, desc string) (string, error) {
	v := gjson.Get(doc, path)
	if !v.Exists() {
		return sjson.SetRaw(doc, path, `[{}]`)
	}
	if kindOf(v) != kindArray {
		return doc, kindMismatch(path, kindOf(v), kindArray, desc)
	}
	return doc, nil
}

// EnsureObject checks that path holds an object, creating an empty one
// when absent.
func EnsureObject(doc, path, desc string) (string, error) {
	v := gjson.Get(doc, path)
	if !v.Exists() {
		return sjson.SetRaw(doc, path, `{}`)
	}
	if kindOf(v) != kindObject {
		return doc, kindMismatch(path, kindOf(v), kindObject, desc)
	}
	return doc, nil
}

// EnsureScalarDefault checks that path holds a scalar of the same kind
// as def, setting def when the member is absent. A present member of a
// mismatched kind is an error naming both kinds; desc documents the
// field in that report.
func EnsureScalarDefault(doc, path string, def any, desc string) (string, error) {
	expected := kindString
	switch def.(type) {
	case string:
		expected = kindString
	case bool:
		expected = kindBool
	case int:
		expected = kindInt
	case float64:
		expected = kindFloat
	default:
		return doc, fmt.Errorf("unsupported default value %T for json member %q", def, path)
	}

	v := gjson.Get(doc, path)
	if !v.Exists() {
		return sjson.Set(doc, path, def)
	}
	if kindOf(v) != expected {
		return doc, kindMismatch(path, kindOf(v), expected, desc)
	}
	return doc, nil
}

// errList accumulates sanitization failures. apply threads a document
// result through while recording its error, so checks chain without
// short-circuiting.
type errList []error

func (e *errList) apply(doc string, err error) string {
	if err != nil {
		*e = append(*e, err)
	}
	return doc
}

func sanitizeTolerances(doc, base string, errs *errList) string {
	doc = errs.apply(EnsureObject(doc, base, "Optimization tolerances."))

	defaults := anim.NewOptimizer()
	doc = errs.apply(EnsureScalarDefault(doc, base+".translation", defaults.TranslationTolerance,
		"Translation optimization tolerance, defined as the distance between two translation values in meters."))
	doc = errs.apply(EnsureScalarDefault(doc, base+".rotation", defaults.RotationTolerance,
		"Rotation optimization tolerance, ie: the angle between two rotation values in radian."))
	doc = errs.apply(EnsureScalarDefault(doc, base+".scale", defaults.ScaleTolerance,
		"Scale optimization tolerance, ie: the norm of the difference of two scales."))
	doc = errs.apply(EnsureScalarDefault(doc, base+".hierarchical", defaults.HierarchicalTolerance,
		"Hierarchical translation optimization tolerance, ie: the maximum error (distance) that an optimization on a joint is allowed to generate on its whole child hierarchy."))
	return doc
}

func sanitizeAnimation(doc, base string, errs *errList) string {
	doc = errs.apply(EnsureScalarDefault(doc, base+".output", "*.ozz",
		"Specifies output file(s). When importing multiple animations, use a '*' character to specify part(s) of the filename that should be replaced by the animation name."))
	doc = errs.apply(EnsureScalarDefault(doc, base+".optimize", true,
		"Activates keyframes optimization."))
	doc = sanitizeTolerances(doc, base+".optimization_tolerances", errs)
	doc = errs.apply(EnsureScalarDefault(doc, base+".raw", false,
		"Outputs raw animation."))
	doc = errs.apply(EnsureScalarDefault(doc, base+".additive", false,
		"Creates a delta animation that can be used for additive blending."))
	return doc
}

// Sanitize validates a configuration document against the pipeline
// schema and fills in documented defaults. Failures accumulate across
// all checks so one report surfaces every problem; the sanitized
// document is returned alongside. Sanitizing an already sanitized
// document changes nothing.
func Sanitize(doc string) (string, error) {
	var errs errList
	doc = errs.apply(EnsureArray(doc, "animations", "Animations to extract."))

	// Each element is sanitized at its own index. Unknown sibling keys
	// are preserved untouched.
	if gjson.Get(doc, "animations").IsArray() {
		count := int(gjson.Get(doc, "animations.#").Int())
		for i := 0; i < count; i++ {
			base := fmt.Sprintf("animations.%d", i)
			if elem := gjson.Get(doc, base); kindOf(elem) != kindObject {
				errs = append(errs, kindMismatch(base, kindOf(elem), kindObject, "animation entry"))
				continue
			}
			doc = sanitizeAnimation(doc, base, &errs)
		}
	}
	return doc, errors.Join(errs...)
}
