package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	tpcmm "github.com/TopiaNetwork/tpwallet/common"
)

const AddressLen_Secp256 = 20 //20 bytes

const addressPrefix = "0x"

var UndefAddress = Address("")

// Address is the canonical form of an account: "0x" followed by lower-case hex.
type Address string

func NewAddress(payload []byte) (Address, error) {
	if len(payload) != AddressLen_Secp256 {
		return UndefAddress, fmt.Errorf("Invalid address payload: len %d, expected %d", len(payload), AddressLen_Secp256)
	}
	return Address(addressPrefix + hex.EncodeToString(payload)), nil
}

// NormalizeAddress lower-cases addr and adds the 0x prefix when it is missing.
// Checksummed input is accepted, the checksum is not enforced.
func NormalizeAddress(addr string) Address {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return UndefAddress
	}
	return Address(addressPrefix + strings.ToLower(tpcmm.Strip0xPrefix(trimmed)))
}

// ParseAddress normalizes addr and checks that it carries a 20 byte payload.
func ParseAddress(addr string) (Address, error) {
	a := NormalizeAddress(addr)
	if a == UndefAddress {
		return UndefAddress, fmt.Errorf("empty address")
	}
	raw := string(a)[len(addressPrefix):]
	if len(raw) != 2*AddressLen_Secp256 || !tpcmm.IsHex(raw) {
		return UndefAddress, fmt.Errorf("invalid address %q", addr)
	}
	return a, nil
}

func (a Address) Payload() ([]byte, error) {
	if _, err := ParseAddress(string(a)); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(a)[len(addressPrefix):])
}

// Equal compares two addresses case-insensitively.
func (a Address) Equal(other Address) bool {
	return NormalizeAddress(string(a)) == NormalizeAddress(string(other))
}

func (a Address) String() string {
	return string(a)
}
