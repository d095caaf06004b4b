package envcheck

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Format names a predefined value format.
type Format string

// Supported formats.
const (
	FormatEmail  Format = "email"
	FormatURL    Format = "url"
	FormatUUID   Format = "uuid"
	FormatDate   Format = "date"
	FormatJSON   Format = "json"
	FormatPort   Format = "port"
	FormatIP     Format = "ip"
	FormatSemver Format = "semver"
	FormatHex    Format = "hex"
	FormatBase64 Format = "base64"
)

var (
	ipv4Regex   = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	semverRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)
	hexRegex    = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	base64Regex = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
)

// dateLayouts are tried in order by IsDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

var formats = map[Format]func(string) bool{
	FormatEmail:  IsEmail,
	FormatURL:    IsURL,
	FormatUUID:   IsUUID,
	FormatDate:   IsDate,
	FormatJSON:   IsJSON,
	FormatPort:   IsPort,
	FormatIP:     IsIP,
	FormatSemver: IsSemver,
	FormatHex:    IsHex,
	FormatBase64: IsBase64,
}

// Formats returns every supported format name.
func Formats() []Format {
	return []Format{
		FormatEmail, FormatURL, FormatUUID, FormatDate, FormatJSON,
		FormatPort, FormatIP, FormatSemver, FormatHex, FormatBase64,
	}
}

// ParseFormat converts a name to a Format, rejecting unknown names.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// ValidFormat reports whether value satisfies format f.
// Unknown formats never match.
func ValidFormat(f Format, value string) bool {
	check, ok := formats[f]
	if !ok {
		return false
	}
	return check(value)
}

// IsEmail reports whether value has the local@domain.tld shape.
func IsEmail(value string) bool {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return false
	}
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	// Some dot in the domain needs text on both sides.
	for i := 1; i < len(domain)-1; i++ {
		if domain[i] == '.' {
			return true
		}
	}
	return false
}

// IsURL reports whether value is an absolute URL with a scheme and an authority.
func IsURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsUUID reports whether value is a textual UUID of version 1 to 5.
func IsUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return false
	}
	return id.Version() >= 1 && id.Version() <= 5 && id.Variant() == uuid.RFC4122
}

// IsDate reports whether value parses with one of the supported date layouts.
func IsDate(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// IsJSON reports whether value is syntactically valid JSON.
func IsJSON(value string) bool {
	return json.Valid([]byte(value))
}

// IsPort reports whether value is a decimal integer in [1, 65535].
func IsPort(value string) bool {
	port, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

// IsIP reports whether value is an IPv4 dotted quad.
func IsIP(value string) bool {
	return ipv4Regex.MatchString(value)
}

// IsSemver reports whether value follows the Semantic Versioning 2.0.0 grammar.
func IsSemver(value string) bool {
	return semverRegex.MatchString(value)
}

// IsHex reports whether value is a non-empty run of hexadecimal digits.
func IsHex(value string) bool {
	return hexRegex.MatchString(value)
}

// IsBase64 reports whether value is padded standard base64.
func IsBase64(value string) bool {
	return len(value)%4 == 0 && base64Regex.MatchString(value)
}
