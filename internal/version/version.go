package version

// Version is overridden at build time with -ldflags "-X varbin/internal/version.Version=...".
var Version = "dev"
