package psbtutils

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
)

const (
	// default psbt encoding is base64, the encoding used by wallets to exchange PSBTs
	DefaultEncoding = EncodingBase64
)

type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
)

// Magic is the BIP-174 header every serialized PSBT starts with ("psbt" followed by 0xff).
var Magic = []byte{0x70, 0x73, 0x62, 0x74, 0xff}

// HasMagic reports whether raw starts with the PSBT header.
func HasMagic(raw []byte) bool {
	return bytes.HasPrefix(raw, Magic)
}

// DecodeRaw decodes a psbt hex/base64 string into its serialized bytes without parsing them.
//
// encoding is optional, default is EncodingBase64
func DecodeRaw(psbtStr string, encoding ...Encoding) ([]byte, error) {
	enc, ok := utils.Optional(encoding)
	if !ok {
		enc = DefaultEncoding
	}

	var (
		psbtBytes []byte
		err       error
	)
	switch enc {
	case EncodingBase64, "b64":
		psbtBytes, err = base64.StdEncoding.DecodeString(psbtStr)
	case EncodingHex:
		psbtBytes, err = hex.DecodeString(psbtStr)
	default:
		return nil, errors.Wrap(errs.Unsupported, "invalid encoding")
	}
	if err != nil {
		return nil, errors.Wrap(err, "can't decode psbt string")
	}
	return psbtBytes, nil
}

// DecodeString decodes a psbt hex/base64 string into a psbt.Packet
//
// encoding is optional, default is EncodingBase64
func DecodeString(psbtStr string, encoding ...Encoding) (*psbt.Packet, error) {
	psbtBytes, err := DecodeRaw(psbtStr, encoding...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Parse(psbtBytes)
}

// Parse parses serialized psbt bytes into a psbt.Packet
func Parse(psbtBytes []byte) (*psbt.Packet, error) {
	pC, err := psbt.NewFromRawBytes(bytes.NewReader(psbtBytes), false)
	if err != nil {
		return nil, errors.Wrap(err, "can't create psbt from given psbt")
	}
	return pC, nil
}

// EncodeToString encodes a psbt.Packet into a psbt hex/base64 string
//
// encoding is optional, default is EncodingBase64
func EncodeToString(pC *psbt.Packet, encoding ...Encoding) (string, error) {
	enc, ok := utils.Optional(encoding)
	if !ok {
		enc = DefaultEncoding
	}

	var buf bytes.Buffer
	if err := pC.Serialize(&buf); err != nil {
		return "", errors.Wrap(err, "can't serialize psbt")
	}

	switch enc {
	case EncodingBase64, "b64":
		return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
	case EncodingHex:
		return hex.EncodeToString(buf.Bytes()), nil
	default:
		return "", errors.Wrap(errs.Unsupported, "invalid encoding")
	}
}
