package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/neonkore/OZZAnimC/internal/anim"
)

func TestSanitize_Defaults(t *testing.T) {
	t.Run("Should fill every default into an empty document", func(t *testing.T) {
		doc, err := Sanitize("{}")
		require.NoError(t, err)

		require.True(t, gjson.Get(doc, "animations").IsArray())
		require.Equal(t, int64(1), gjson.Get(doc, "animations.#").Int(),
			"an absent animations array gets exactly one placeholder element")

		assert.Equal(t, "*.ozz", gjson.Get(doc, "animations.0.output").String())
		assert.Equal(t, gjson.True, gjson.Get(doc, "animations.0.optimize").Type)
		assert.Equal(t, gjson.False, gjson.Get(doc, "animations.0.raw").Type)
		assert.Equal(t, gjson.False, gjson.Get(doc, "animations.0.additive").Type)

		defaults := anim.NewOptimizer()
		assert.InDelta(t, defaults.TranslationTolerance, gjson.Get(doc, "animations.0.optimization_tolerances.translation").Float(), 1e-12)
		assert.InDelta(t, defaults.RotationTolerance, gjson.Get(doc, "animations.0.optimization_tolerances.rotation").Float(), 1e-12)
		assert.InDelta(t, defaults.ScaleTolerance, gjson.Get(doc, "animations.0.optimization_tolerances.scale").Float(), 1e-12)
		assert.InDelta(t, defaults.HierarchicalTolerance, gjson.Get(doc, "animations.0.optimization_tolerances.hierarchical").Float(), 1e-12)
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		once, err := Sanitize("{}")
		require.NoError(t, err)
		twice, err := Sanitize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("Should keep user values untouched", func(t *testing.T) {
		doc, err := Sanitize(`{"animations":[{"output":"clip_*.ozz","optimize":false}]}`)
		require.NoError(t, err)
		assert.Equal(t, "clip_*.ozz", gjson.Get(doc, "animations.0.output").String())
		assert.False(t, gjson.Get(doc, "animations.0.optimize").Bool())
	})

	t.Run("Should sanitize every element at its own index", func(t *testing.T) {
		doc, err := Sanitize(`{"animations":[{"output":"a.ozz"},{"raw":true}]}`)
		require.NoError(t, err)
		assert.Equal(t, "a.ozz", gjson.Get(doc, "animations.0.output").String())
		assert.Equal(t, "*.ozz", gjson.Get(doc, "animations.1.output").String(),
			"the second element gets its own defaults")
		assert.True(t, gjson.Get(doc, "animations.1.raw").Bool())
		assert.True(t, gjson.Get(doc, "animations.1.optimize").Exists())
	})

	t.Run("Should preserve unknown siblings and their order", func(t *testing.T) {
		in := `{"aaa":1,"animations":[{"custom":"x"}],"zzz":2}`
		doc, err := Sanitize(in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gjson.Get(doc, "aaa").Int())
		assert.Equal(t, int64(2), gjson.Get(doc, "zzz").Int())
		assert.Equal(t, "x", gjson.Get(doc, "animations.0.custom").String())
		assert.Less(t, strings.Index(doc, `"aaa"`), strings.Index(doc, `"animations"`))
		assert.Less(t, strings.Index(doc, `"animations"`), strings.Index(doc, `"zzz"`))
	})
}

func TestSanitize_KindMismatches(t *testing.T) {
	t.Run("Should reject a boolean field holding a string", func(t *testing.T) {
		_, err := Sanitize(`{"animations":[{"optimize":"yes"}]}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "optimize")
		assert.Contains(t, err.Error(), "UTF-8 string")
		assert.Contains(t, err.Error(), "boolean")
	})

	t.Run("Should reject an integer-looking tolerance", func(t *testing.T) {
		_, err := Sanitize(`{"animations":[{"optimization_tolerances":{"translation":1}}]}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "translation")
		assert.Contains(t, err.Error(), `"integer"`)
		assert.Contains(t, err.Error(), `"float"`)
	})

	t.Run("Should accept a float tolerance", func(t *testing.T) {
		_, err := Sanitize(`{"animations":[{"optimization_tolerances":{"translation":0.5}}]}`)
		assert.NoError(t, err)
	})

	t.Run("Should reject a non-array animations member", func(t *testing.T) {
		_, err := Sanitize(`{"animations":{"output":"a.ozz"}}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "array")
	})

	t.Run("Should reject a non-object animation entry", func(t *testing.T) {
		_, err := Sanitize(`{"animations":[42]}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "object")
	})

	t.Run("Should keep filling defaults past a failing check", func(t *testing.T) {
		doc, err := Sanitize(`{"animations":[{"optimize":"yes"}]}`)
		require.Error(t, err)
		assert.Equal(t, "*.ozz", gjson.Get(doc, "animations.0.output").String())
		assert.Equal(t, gjson.False, gjson.Get(doc, "animations.0.raw").Type)
		assert.True(t, gjson.Get(doc, "animations.0.optimization_tolerances.translation").Exists())
	})

	t.Run("Should aggregate several failures into one report", func(t *testing.T) {
		_, err := Sanitize(`{"animations":[{"optimize":"yes","raw":3,"output":false}]}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "optimize")
		assert.Contains(t, err.Error(), "raw")
		assert.Contains(t, err.Error(), "output")
	})
}

func TestEnsureScalarDefault(t *testing.T) {
	t.Run("Should set the default when absent", func(t *testing.T) {
		doc, err := EnsureScalarDefault(`{}`, "speed", 1.5, "Playback speed.")
		require.NoError(t, err)
		assert.InDelta(t, 1.5, gjson.Get(doc, "speed").Float(), 0)
	})

	t.Run("Should leave a matching value unchanged", func(t *testing.T) {
		doc, err := EnsureScalarDefault(`{"name":"walk"}`, "name", "run", "Clip name.")
		require.NoError(t, err)
		assert.Equal(t, "walk", gjson.Get(doc, "name").String())
	})

	t.Run("Should name both kinds on mismatch", func(t *testing.T) {
		_, err := EnsureScalarDefault(`{"name":3}`, "name", "run", "Clip name.")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"integer"`)
		assert.Contains(t, err.Error(), `"UTF-8 string"`)
		assert.Contains(t, err.Error(), "Clip name.")
	})
}
