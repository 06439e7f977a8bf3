package cli

// WellKnownPaths exports wellKnownPaths for testing.
var WellKnownPaths = wellKnownPaths //nolint:gochecknoglobals // test export
