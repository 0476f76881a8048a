package common

// PackageName is used as the metrics namespace and default log service tag.
const PackageName = "pixelprops"

// Version is overridden at build time with -ldflags "-X ...common.Version=...".
var Version = "dev"
