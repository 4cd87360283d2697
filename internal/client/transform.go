package client

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ensureInstallationID injects the installation id of the originating
// request into response rows that omit it.
//
// The measurements endpoint does not reliably echo which installation a row
// belongs to. Rows already carrying an installation_id or num_inst field are
// left untouched (first seen wins, no merging), and non-object array
// elements pass through unchanged, which makes the fix-up idempotent.
func ensureInstallationID(payload []byte, installationID string) []byte {
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return payload
	}

	fixed := payload

	for i, row := range root.Array() {
		if !row.IsObject() {
			continue
		}

		if row.Get("installation_id").Exists() || row.Get("num_inst").Exists() {
			continue
		}

		updated, err := sjson.SetBytes(fixed, strconv.Itoa(i)+".num_inst", installationID)
		if err != nil {
			continue
		}

		fixed = updated
	}

	return fixed
}
