package common

// PackageName is used as the metrics namespace.
const PackageName = "sbc_gateway"

// Version is overridden at build time with -ldflags "-X ...common.Version=...".
var Version = "dev"
