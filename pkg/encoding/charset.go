// Package encoding decodes character textures drawn in legacy code pages.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for charset names that cannot be decoded.
var ErrUnknownCharset = errors.New("unknown charset")

// Short names commonly used for ASCII art files.
var aliases = map[string]encoding.Encoding{
	"":       unicode.UTF8BOM,
	"utf8":   unicode.UTF8BOM,
	"utf-8":  unicode.UTF8BOM,
	"cp437":  charmap.CodePage437,
	"dos":    charmap.CodePage437,
	"latin1": charmap.ISO8859_1,
	"cp1252": charmap.Windows1252,
	"euckr":  korean.EUCKR,
	"euc-kr": korean.EUCKR,
}

// Lookup resolves a charset by short name or IANA name. The empty name is
// UTF-8 with an optional byte order mark.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return enc, nil
}

// Decode converts data in the named charset to UTF-8.
func Decode(data []byte, charset string) (string, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", charset, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to the named charset. Runes the charset cannot
// represent are an error.
func Encode(s, charset string) ([]byte, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", charset, err)
	}
	return out, nil
}
