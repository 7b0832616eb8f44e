package vpn

import (
	_ "embed"
	"strings"
)

// The EAP configuration payload is bundled at build time and passed verbatim
// into Add-VpnConnection. Its contents are opaque to this package.
//
//go:embed resources/upv_config.xml
var rawEAPConfig string

// eapConfigXML returns the embedded payload with the UTF-8 byte-order marker
// and surrounding whitespace stripped, ready for embedding in a here-string.
func eapConfigXML() string {
	cleaned := strings.TrimSpace(rawEAPConfig)
	cleaned = strings.TrimPrefix(cleaned, "\ufeff")
	return strings.TrimSpace(cleaned)
}
