package controllers

// ConfirmForcePush exports confirmForcePush for testing.
var ConfirmForcePush = confirmForcePush //nolint:gochecknoglobals // test export

// RenderChangeSet exports renderChangeSet for testing.
var RenderChangeSet = renderChangeSet //nolint:gochecknoglobals // test export

// TokenEnvHint exports tokenEnvHint for testing.
var TokenEnvHint = tokenEnvHint //nolint:gochecknoglobals // test export
