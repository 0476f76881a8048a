// Package buildrecord implements interfaces.AttributeStore over a typed
// record of the platform build identity fields.
//
// Fields are addressed by their platform names (BRAND, MODEL,
// FINGERPRINT, IS_DEBUGGABLE, ...) through an explicit name to accessor
// table, so writes never need reflection and unknown names are reported
// as interfaces.ErrFieldNotFound. DATE is exposed read-only.
//
// Baseline records are parsed from build.prop files with FromBuildProp.
package buildrecord
