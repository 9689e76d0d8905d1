package httpapi

import "encoding/hex"

// toHex renders calldata bytes as a "0x"-prefixed lowercase hex string, the
// wire representation for all calldata fields.
func toHex(b []byte) string {
	if len(b) == 0 {
		return "0x"
	}
	return "0x" + hex.EncodeToString(b)
}
