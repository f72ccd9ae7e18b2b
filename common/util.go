package common

import (
	mapset "github.com/deckarep/golang-set"
)

func BytesCopy(src []byte) []byte {
	dst := make([]byte, len(src))
	copy(dst, src)

	return dst
}

// ZeroBytes overwrites b in place.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

func Strip0xPrefix(str string) string {
	if Has0xPrefix(str) {
		return str[2:]
	}
	return str
}

func IsHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func IsHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !IsHexCharacter(c) {
			return false
		}
	}
	return true
}

// FirstIntersection returns the first item of incoming that is already in existing.
func FirstIntersection(existing []string, incoming []string) (string, bool) {
	set := mapset.NewSet()
	for _, s := range existing {
		set.Add(s)
	}
	for _, s := range incoming {
		if set.Contains(s) {
			return s, true
		}
	}
	return "", false
}

// FirstDuplicate reports the first item which occurs twice in items. Items must
// be comparable.
func FirstDuplicate(items []interface{}) (interface{}, bool) {
	seen := mapset.NewSet()
	for _, item := range items {
		if !seen.Add(item) {
			return item, true
		}
	}
	return nil, false
}

// HasDuplicate reports the first string which occurs twice in items.
func HasDuplicate(items []string) (string, bool) {
	all := make([]interface{}, len(items))
	for i, s := range items {
		all[i] = s
	}
	if dup, ok := FirstDuplicate(all); ok {
		return dup.(string), true
	}
	return "", false
}
