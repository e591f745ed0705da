package vfx

import (
	"encoding/base64"
	"strings"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// gzPathPrefix marks the obfuscated asset paths found in GZ dictionaries.
// Their stems contain bytes that are not legal XML text, so the tree form
// carries the stem base64-encoded between the prefix and the extension.
const gzPathPrefix = "/as/"

// IsGZPath reports whether s has the shape the GZ path transform applies
// to: the prefix followed by a stem and a '.' extension.
func IsGZPath(s string) bool {
	return strings.HasPrefix(s, gzPathPrefix) && strings.LastIndexByte(s, '.') >= len(gzPathPrefix)
}

// EncodeGZPath base64-encodes the stem of a GZ path, keeping the prefix
// and the extension (from the last '.') readable. Strings without the GZ
// path shape are returned unchanged.
func EncodeGZPath(s string) string {
	if !IsGZPath(s) {
		return s
	}
	dot := strings.LastIndexByte(s, '.')
	stem, ext := s[len(gzPathPrefix):dot], s[dot:]
	return gzPathPrefix + base64.StdEncoding.EncodeToString([]byte(stem)) + ext
}

// DecodeGZPath reverses [EncodeGZPath]. The base64 alphabet has no '.', so
// the last '.' of an encoded path is the start of the original extension.
func DecodeGZPath(s string) (string, error) {
	if !IsGZPath(s) {
		return s, nil
	}
	dot := strings.LastIndexByte(s, '.')
	stem, err := base64.StdEncoding.DecodeString(s[len(gzPathPrefix):dot])
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "GZ path %q", s)
	}
	return gzPathPrefix + string(stem) + s[dot:], nil
}
