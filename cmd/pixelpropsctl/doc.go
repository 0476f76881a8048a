// Package main (cmd/pixelpropsctl) inspects and exercises device identity
// overrides, either offline against a build.prop or against a running
// pixelpropsd.
//
// Examples:
//
//	pixelpropsctl profiles
//	pixelpropsctl apply --package com.google.android.gms --record ./build.prop
//	pixelpropsctl guard --package com.google.android.gms --frame com.google.ccc.abuse.droidguard.DroidGuard.run
//	pixelpropsctl remote --server http://127.0.0.1:8080 state
//
// guard exits with status 3 when the request would be aborted.
package main
