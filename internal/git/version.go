package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Minimum git version; older releases reject a tag for clone --branch.
const (
	MinVersionMajor = 1
	MinVersionMinor = 8
)

// Version represents a parsed git version.
type Version struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

// String returns the version as "major.minor.patch".
func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast returns true if this version is at least major.minor.
func (v *Version) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// Matches "git version 2.39.0", "git version 2.39.0 (Apple Git-143)"
// and "git version 2.39.0.windows.1".
var versionRegex = regexp.MustCompile(`git version (\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion parses the output of git --version.
func ParseVersion(s string) (*Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("failed to parse git version: %q", s)
	}

	v := &Version{Raw: s}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, nil
}

// GetVersion returns the installed git version.
func GetVersion(ctx context.Context) (*Version, error) {
	out, err := Run(ctx, []string{"--version"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get git version: %w", err)
	}
	return ParseVersion(out)
}

// CheckMinVersion verifies git is installed and recent enough to clone dependencies.
func CheckMinVersion(ctx context.Context) error {
	v, err := GetVersion(ctx)
	if err != nil {
		return err
	}
	return checkVersionSatisfied(v, MinVersionMajor, MinVersionMinor)
}

func checkVersionSatisfied(v *Version, major, minor int) error {
	if !v.AtLeast(major, minor) {
		return &ErrVersionTooOld{
			Current:  v.String(),
			Required: fmt.Sprintf("%d.%d", major, minor),
		}
	}
	return nil
}
