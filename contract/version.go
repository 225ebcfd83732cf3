package contract

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/kolkov/contracts/internal/contract/violation"
)

// Version information for the contract runtime.
const (
	// Version is the current version of the contract runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the contract checker.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Handler is the type of the active handler of the process-wide
	// registry, for example "*violation.Abort".
	Handler string

	// CaptureStack indicates whether reports carry a stack trace.
	CaptureStack bool
}

// GetInfo returns information about the contract runtime.
//
// Example:
//
//	info := contract.GetInfo()
//	fmt.Printf("contracts %s (handler %s)\n", info.Version, info.Handler)
func GetInfo() Info {
	reg := violation.Default()
	return Info{
		Version:      Version,
		Handler:      fmt.Sprintf("%T", reg.Handler()),
		CaptureStack: reg.CaptureStack,
	}
}

// Compatible reports whether code written against version want can run on
// this runtime: same major version, and want not newer than Version.
//
// want may omit the leading "v". Invalid versions are not compatible.
func Compatible(want string) bool {
	if !strings.HasPrefix(want, "v") {
		want = "v" + want
	}
	if !semver.IsValid(want) {
		return false
	}
	have := "v" + Version
	return semver.Major(want) == semver.Major(have) && semver.Compare(want, have) <= 0
}
