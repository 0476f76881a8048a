/*
Package spoof applies device profile overrides to a build record and guards
certificate chain requests made while the attestation service is being
impersonated.

# Override engine

Engine.ApplyOverridesForPackage is called once when an application process
attaches. The package name selects a profile from the table (modern set
first, then legacy set). The common attributes are written first and the
profile's own attributes after them, so a profile wins any overlap. For the
attestation service package MODEL is left untouched and the shared State is
latched instead. The settings search indexer additionally gets a FINGERPRINT
equal to the record's build date, independent of any profile.

Write failures (unknown field, type mismatch) are logged and skipped; the
engine never reports an error to its caller.

# Guard

Guard.GuardCertificateChainRequest returns interfaces.ErrUnsupportedOperation
when the State is latched and the current call stack contains a frame from
the integrity verification component (DroidGuardMarker). The stack is
rescanned on every call.

# State

State is a process-lifetime latch. It moves from false to true once and is
never reset, even if unrelated packages are processed later.
*/
package spoof
