package cmd

import (
	"bytes"
	"testing"

	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutPointArgs(t *testing.T) {
	const txID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

	outPoint, err := parseOutPointArgs([]string{txID, "1"})
	require.NoError(t, err)
	assert.Equal(t, txID+":1", outPoint.String())

	_, err = parseOutPointArgs([]string{"abcd", "0"})
	assert.ErrorContains(t, err, "txid must be 64 hex characters")

	_, err = parseOutPointArgs([]string{txID, "x"})
	assert.ErrorContains(t, err, "vout must be an integer")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.SetArgs([]string{"--module", "auction"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, auction.Version+"\n", out.String())

	cmd.SetArgs([]string{"--module", "runes"})
	assert.ErrorIs(t, cmd.Execute(), errs.Unsupported)
}
