// Package source resolves a dependency descriptor into a git clone URL.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jokarl/extdeps/internal/config"
)

// Provider holds the URL rules for one hosting service.
type Provider struct {
	// DefaultOrigin is used when the source does not set an origin.
	DefaultOrigin string

	// Path builds the repository path appended to the normalized origin.
	Path func(src config.Source) string
}

// providers maps each known provider type to its URL rules.
var providers = map[config.Provider]Provider{
	config.ProviderGitHub: {
		DefaultOrigin: "github.com",
		Path: func(src config.Source) string {
			return src.Owner + "/" + src.Name + ".git"
		},
	},
	config.ProviderGitLab: {
		// Internal GitLab keeps public mirrors under a single group,
		// so the owner is not part of the path.
		DefaultOrigin: "gitlab.cocos.net",
		Path: func(src config.Source) string {
			return "publics/" + src.Name + ".git"
		},
	},
}

// Register adds or replaces the rules for a provider type.
func Register(name config.Provider, p Provider) {
	providers[name] = p
}

// UnknownProviderError is returned for a source type with no registered rules.
type UnknownProviderError struct {
	Provider config.Provider
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown external type: %q", string(e.Provider))
}

var (
	schemeRegex = regexp.MustCompile(`(?i)^(f|ht)tps?://`)
	sshRegex    = regexp.MustCompile(`(?i)^git@`)
)

// Resolve returns the clone URL for src.
func Resolve(src config.Source) (string, error) {
	origin := src.Origin
	if origin == "" {
		var err error
		origin, err = DefaultOrigin(src.Type)
		if err != nil {
			return "", err
		}
	}

	path, err := PathSuffix(src)
	if err != nil {
		return "", err
	}

	return NormalizeOrigin(origin) + path, nil
}

// DefaultOrigin returns the built-in host for a provider type.
func DefaultOrigin(p config.Provider) (string, error) {
	rules, ok := providers[p]
	if !ok {
		return "", &UnknownProviderError{Provider: p}
	}
	return rules.DefaultOrigin, nil
}

// PathSuffix returns the repository path for src according to its provider.
func PathSuffix(src config.Source) (string, error) {
	rules, ok := providers[src.Type]
	if !ok {
		return "", &UnknownProviderError{Provider: src.Type}
	}
	return rules.Path(src), nil
}

// NormalizeOrigin turns a host into a URL prefix that a repository path
// can be appended to.
//
// SSH shorthand origins (git@host) get a trailing colon and no scheme.
// Anything else gets https:// unless it already carries an http(s) or
// ftp(s) scheme, followed by a trailing slash.
func NormalizeOrigin(origin string) string {
	if sshRegex.MatchString(origin) {
		return origin + ":"
	}

	if !schemeRegex.MatchString(origin) {
		origin = "https://" + origin
	}

	return origin + "/"
}

// IsSSH reports whether url uses the SSH shorthand syntax.
func IsSSH(url string) bool {
	return sshRegex.MatchString(url) && !strings.Contains(url, "://")
}
