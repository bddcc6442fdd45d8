package btcutils

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common"
	"github.com/gaze-network/dutch-auction/common/errs"
)

// PkScriptToAddress returns the address from the given pkScript. If the pkScript is invalid or not standard, it returns an error.
func PkScriptToAddress(pkScript []byte, network common.Network) (string, error) {
	if IsDataCarrier(pkScript) {
		return "", errors.Wrap(errs.Unsupported, "OP_RETURN script has no address")
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, network.ChainParams())
	if err != nil {
		return "", errors.Wrap(err, "error extracting addresses from pkscript")
	}
	if len(addrs) != 1 {
		return "", errors.Wrap(errs.Unsupported, "invalid number of addresses extracted from pkscript")
	}
	return addrs[0].EncodeAddress(), nil
}
