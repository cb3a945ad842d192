package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ClientVersion is a client protocol release, encoded as major<<16 | minor<<8 | patch so that
// versions order with the usual comparison operators.
type ClientVersion uint32

const (
	VersionUnknown ClientVersion = 0

	V1_7    = ClientVersion(1<<16 | 7<<8)
	V1_8    = ClientVersion(1<<16 | 8<<8)
	V1_9    = ClientVersion(1<<16 | 9<<8)
	V1_12   = ClientVersion(1<<16 | 12<<8)
	V1_13   = ClientVersion(1<<16 | 13<<8)
	V1_14   = ClientVersion(1<<16 | 14<<8)
	V1_15   = ClientVersion(1<<16 | 15<<8)
	V1_16   = ClientVersion(1<<16 | 16<<8)
	V1_17   = ClientVersion(1<<16 | 17<<8)
	V1_19_4 = ClientVersion(1<<16 | 19<<8 | 4)
	V1_20   = ClientVersion(1<<16 | 20<<8)
	V1_21   = ClientVersion(1<<16 | 21<<8)

	// VersionLatest is assumed for clients whose version could not be determined.
	VersionLatest = V1_21
)

// Version builds a ClientVersion from its parts.
func Version(major, minor, patch uint8) ClientVersion {
	return ClientVersion(uint32(major)<<16 | uint32(minor)<<8 | uint32(patch))
}

// ParseVersion parses strings such as "1.19.4" or "1.8".
func ParseVersion(s string) (ClientVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return VersionUnknown, fmt.Errorf("malformed version %q", s)
	}
	var nums [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return VersionUnknown, fmt.Errorf("malformed version %q: %v", s, err)
		}
		nums[i] = uint8(n)
	}
	return Version(nums[0], nums[1], nums[2]), nil
}

func (v ClientVersion) Major() uint8 { return uint8(v >> 16) }
func (v ClientVersion) Minor() uint8 { return uint8(v >> 8) }
func (v ClientVersion) Patch() uint8 { return uint8(v) }

// Known returns false for VersionUnknown.
func (v ClientVersion) Known() bool {
	return v != VersionUnknown
}

// OrLatest returns VersionLatest for unknown versions.
func (v ClientVersion) OrLatest() ClientVersion {
	if !v.Known() {
		return VersionLatest
	}
	return v
}

func (v ClientVersion) String() string {
	if !v.Known() {
		return "unknown"
	}
	if v.Patch() == 0 {
		return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// MarshalText implements encoding.TextMarshaler so that versions read naturally in settings files.
func (v ClientVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ClientVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
