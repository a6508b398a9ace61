// defaults.go — Documented baseline mappings per namespace.
//
// These are the values a capture runs with when the caller supplies nothing:
// a clean shaded view of geometry only, no editor scaffolding, gradient
// background. Callers override per key; see Merge.
package options

import "github.com/viewcap/viewcap/host"

var viewportDefaults = Set{
	"useDefaultMaterial":      false,
	"wireframeOnShaded":       false,
	"displayAppearance":       "smoothShaded",
	"selectionHiliteDisplay":  false,
	"headsUpDisplay":          true,
	"nurbsCurves":             false,
	"nurbsSurfaces":           false,
	"polymeshes":              true,
	"subdivSurfaces":          false,
	"cameras":                 false,
	"lights":                  false,
	"grid":                    false,
	"joints":                  false,
	"ikHandles":               false,
	"deformers":               false,
	"dynamics":                false,
	"fluids":                  false,
	"hairSystems":             false,
	"follicles":               false,
	"nCloths":                 false,
	"nParticles":              false,
	"nRigids":                 false,
	"dynamicConstraints":      false,
	"locators":                false,
	"manipulators":            false,
	"dimensions":              false,
	"handles":                 false,
	"pivots":                  false,
	"textures":                false,
	"strokes":                 false,
}

// Extended renderer set, added in a later host revision. Hosts without the
// extended renderer reject these with host.ErrNotSupported and the namespace
// is skipped.
var viewport2Defaults = Set{
	"consolidateWorld":              true,
	"enableTextureMaxRes":           false,
	"floatingPointRTEnable":         true,
	"floatingPointRTFormat":         1,
	"gammaCorrectionEnable":         false,
	"gammaValue":                    2.2,
	"lineAAEnable":                  false,
	"maxHardwareLights":             8,
	"motionBlurEnable":              false,
	"motionBlurSampleCount":         8,
	"motionBlurShutterOpenFraction": 0.2,
	"multiSampleCount":              8,
	"multiSampleEnable":             false,
	"singleSidedLighting":           false,
	"ssaoEnable":                    false,
	"ssaoAmount":                    1.0,
	"ssaoFilterRadius":              16,
	"ssaoRadius":                    16,
	"ssaoSamples":                   16,
	"textureMaxResolution":          4096,
	"transparencyAlgorithm":         1,
	"transparencyQuality":           0.33,
	"useMaximumHardwareLights":      true,
}

var cameraDefaults = Set{
	"displayGateMask":   false,
	"displayResolution": false,
	"displayFilmGate":   false,
	"displayFieldChart": false,
	"displaySafeAction": false,
	"displaySafeTitle":  false,
	"displayFilmPivot":  false,
	"displayFilmOrigin": false,
	"overscan":          1.0,
}

var displayDefaults = Set{
	"displayGradient":  true,
	"background":       host.RGB{0.631, 0.631, 0.631},
	"backgroundTop":    host.RGB{0.535, 0.617, 0.702},
	"backgroundBottom": host.RGB{0.052, 0.052, 0.052},
}
