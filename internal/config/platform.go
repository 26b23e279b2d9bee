package config

import "runtime"

const downloaderBaseName = "aria2c"

// Platform describes the host facts btl cares about. It is resolved once at
// startup and passed explicitly.
type Platform struct {
	OS               string
	Windows          bool
	ExecutableSuffix string
}

// DetectPlatform returns the Platform for the running binary.
func DetectPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

// PlatformFor builds the Platform for the given GOOS value.
func PlatformFor(goos string) Platform {
	p := Platform{OS: goos}
	if goos == "windows" {
		p.Windows = true
		p.ExecutableSuffix = ".exe"
	}
	return p
}

// Executable appends the platform executable suffix to name.
func (p Platform) Executable(name string) string {
	return name + p.ExecutableSuffix
}
