// Package main (cmd/pixelpropsd) runs the device identity override daemon.
//
// The daemon loads a baseline build record from the configured build.prop
// sources, then serves override and certificate chain guard requests over
// HTTP. Overrides mutate the in-memory record only; restarting the daemon
// restores the baseline and clears the impersonation latch.
//
// Configuration is resolved from a YAML file (--config), PIXELPROPS_*
// environment variables with an optional dotenv file, then explicit flags.
//
// Example:
//
//	pixelpropsd --config /etc/pixelprops.yaml --record-source file:///system/build.prop
//
// Example config:
//
//	server:
//	  listen_addr: 127.0.0.1:8080
//	  metrics_addr: 127.0.0.1:8090
//	log:
//	  json: true
//	record:
//	  sources:
//	    - file:///system/build.prop
//	    - s3://device-builds/cheetah/build.prop?region=eu-west-1
package main
