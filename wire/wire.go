// Package wire defines the CBOR interchange formats of the code generator:
// annotated tree documents produced by a front end, and entity tables
// written for inspection tools.
package wire

import (
	"fmt"

	"github.com/chazu/tamc/codegen"
	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"
)

func log() commonlog.Logger { return commonlog.GetLogger("tamc.wire") }

// cborEncMode uses canonical mode so equal values encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalTable serializes an entity table to CBOR bytes.
func MarshalTable(entries []codegen.TableEntry) ([]byte, error) {
	return cborEncMode.Marshal(entries)
}

// UnmarshalTable deserializes an entity table from CBOR bytes.
func UnmarshalTable(data []byte) ([]codegen.TableEntry, error) {
	var entries []codegen.TableEntry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("wire: unmarshal table: %w", err)
	}
	return entries, nil
}
