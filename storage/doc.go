// Package storage loads the baseline build.prop a process starts from.
//
// Sources are specified using URI format:
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported URI schemes:
//
//   - file:///system/build.prop
//   - s3://bucket-name/devices/oriole/build.prop?region=us-west-2&endpoint=minio.local:9000
//
// Several locations can be combined with SourceFactory.CreateMultiSource; the
// record is read from the first available source that holds it.
//
// Sources are read-only. The live record and the overrides applied to it are
// never written back.
package storage
