package drive

import (
	"fmt"
	"strings"

	"github.com/upv-tools/upv-cli/common"
)

// Domain identifies the UPV account domain a user belongs to. The domain
// decides which branch of the NAS the user's share lives under.
type Domain string

const (
	// DomainAlumno is the student domain.
	DomainAlumno Domain = "ALUMNO"
	// DomainUPVNet is the staff domain.
	DomainUPVNet Domain = "UPVNET"
)

func (d Domain) String() string {
	return string(d)
}

// SharePrefix returns the UNC prefix of the NAS branch for this domain,
// ending in a backslash.
func (d Domain) SharePrefix() string {
	switch d {
	case DomainAlumno:
		return `\\` + common.ShareHost + `\alumnos\`
	default:
		return `\\` + common.ShareHost + `\discos\`
	}
}

// ParseDomain converts user input into a Domain, accepting any casing.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(DomainAlumno):
		return DomainAlumno, nil
	case string(DomainUPVNet):
		return DomainUPVNet, nil
	}
	return "", fmt.Errorf("unknown domain %q (expected ALUMNO or UPVNET)", s)
}

// ParseLetter converts user input like "w", "W" or "W:" into an uppercase
// drive letter.
func ParseLetter(s string) (rune, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), ":")
	if len(trimmed) != 1 {
		return 0, fmt.Errorf("invalid drive letter %q", s)
	}
	letter := rune(trimmed[0])
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, fmt.Errorf("invalid drive letter %q", s)
	}
	return letter, nil
}
