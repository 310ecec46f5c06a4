// Package idcodec maps numeric project ids to short URL tokens and back.
//
// The transform is a keyed XOR over the decimal digits followed by URL-safe base64.
// It hides raw database ids from edit-page URLs; it is obfuscation, not encryption,
// and must never be used for an access-control decision.
package idcodec

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// DefaultKey is used when no ID_OBFUSCATION_KEY is configured
const DefaultKey = "armed-detective-agency"

var (
	ErrEmptyKey     = errors.New("idcodec: key must not be empty")
	ErrUnresolvable = errors.New("idcodec: segment is neither a token nor a decimal id")
)

// Codec encodes and decodes ids with a fixed key
type Codec struct {
	key []byte
}

// New returns a codec for key
func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Codec{key: []byte(key)}, nil
}

func (c *Codec) xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}

// Encode turns id into a URL-safe token
func (c *Codec) Encode(id uint64) string {
	encoded := base64.StdEncoding.EncodeToString(c.xor([]byte(strconv.FormatUint(id, 10))))
	encoded = strings.NewReplacer("+", "-", "/", "_").Replace(encoded)
	return strings.TrimRight(encoded, "=")
}

// Decode reverses Encode. ok is false for anything that is not a token of this codec.
func (c *Codec) Decode(token string) (id uint64, ok bool) {
	if token == "" {
		return 0, false
	}

	standard := strings.NewReplacer("-", "+", "_", "/").Replace(token)
	if pad := len(standard) % 4; pad != 0 {
		standard += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(standard)
	if err != nil || len(raw) == 0 {
		return 0, false
	}

	digits := c.xor(raw)
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, false
		}
	}

	id, err = strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Resolve reads an edit-page URL segment: a token first, then a plain decimal id from older links
func (c *Codec) Resolve(segment string) (uint64, error) {
	if id, ok := c.Decode(segment); ok {
		return id, nil
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(segment), 10, 64); err == nil {
		return id, nil
	}
	return 0, ErrUnresolvable
}
