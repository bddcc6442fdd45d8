package btcutils

import (
	"github.com/btcsuite/btcd/txscript"
)

// ScriptClassNullData is the node's name for an OP_RETURN (data-carrier) output type.
var ScriptClassNullData = txscript.NullDataTy.String()

// IsDataCarrier reports whether pkScript is a provably-unspendable OP_RETURN output.
// Scripts that start with OP_RETURN but carry non-push data are unspendable as well, so
// the leading opcode is checked in addition to the standard script class.
func IsDataCarrier(pkScript []byte) bool {
	if len(pkScript) > 0 && pkScript[0] == txscript.OP_RETURN {
		return true
	}
	return txscript.GetScriptClass(pkScript) == txscript.NullDataTy
}
