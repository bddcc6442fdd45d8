package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/internal/config"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/btcutils"
	"github.com/gaze-network/dutch-auction/pkg/counterparty"
	"github.com/spf13/cobra"
)

func NewDebugUTXOCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "debug-utxo <txid> <vout>",
		Short:   "Check a UTXO against the Bitcoin node and the Counterparty API",
		Args:    cobra.ExactArgs(2),
		Example: `auction debug-utxo 4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b 0`,
		RunE:    debugUTXOHandler,
	}
}

func parseOutPointArgs(args []string) (wire.OutPoint, error) {
	hash, err := chainhash.NewHashFromStr(args[0])
	if err != nil || len(args[0]) != chainhash.MaxHashStringSize {
		return wire.OutPoint{}, errors.Errorf("txid must be %d hex characters, got %q", chainhash.MaxHashStringSize, args[0])
	}
	vout, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return wire.OutPoint{}, errors.Errorf("vout must be an integer, got %q", args[1])
	}
	return *wire.NewOutPoint(hash, uint32(vout)), nil
}

func debugUTXOHandler(cmd *cobra.Command, args []string) error {
	outPoint, err := parseOutPointArgs(args)
	if err != nil {
		return errors.WithStack(err)
	}
	conf := config.Load()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	btcClient, err := btcclient.New(btcclient.Config{
		ConnConfig: rpcclient.ConnConfig{
			Host:       conf.BitcoinNode.Host,
			User:       conf.BitcoinNode.User,
			Pass:       conf.BitcoinNode.Pass,
			DisableTLS: conf.BitcoinNode.DisableTLS,
		},
		Network: conf.Network,
	})
	if err != nil {
		return errors.Wrap(err, "invalid Bitcoin node configuration")
	}
	defer btcClient.Shutdown()

	cpClient, err := counterparty.New(conf.Auction.Counterparty.URL, conf.Auction.Counterparty.Timeout)
	if err != nil {
		return errors.WithStack(err)
	}

	rule(out)
	fmt.Fprintf(out, "Debugging UTXO: %s\n", outPoint)
	rule(out)

	fmt.Fprintln(out, "\n1. Bitcoin Core RPC connection")
	height, err := btcClient.CurrentHeight(ctx)
	if err != nil {
		fmt.Fprintf(out, "  FAIL connection failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "  OK connected, current block: %d\n", height)

	fmt.Fprintf(out, "\n2. UTXO lookup for %s\n", outPoint)
	utxo, err := btcClient.GetUTXO(ctx, outPoint)
	if err != nil {
		fmt.Fprintf(out, "  FAIL lookup failed: %+v\n", err)
		return nil
	}
	if utxo == nil {
		fmt.Fprintln(out, "  FAIL UTXO not found or already spent")
		return nil
	}
	fmt.Fprintln(out, "  OK UTXO found")
	fmt.Fprintf(out, "    - Confirmations: %d\n", utxo.Confirmations)
	fmt.Fprintf(out, "    - Value: %s BTC\n", btcutils.SatoshiToBitcoin(utxo.Value).String())
	if utxo.Address != "" {
		fmt.Fprintf(out, "    - Address: %s\n", utxo.Address)
	}

	fmt.Fprintf(out, "\n3. Counterparty API for %s\n", outPoint)
	balances, err := cpClient.GetUTXOBalances(ctx, outPoint)
	if err != nil {
		fmt.Fprintf(out, "  FAIL Counterparty API error: %v\n", err)
	} else {
		fmt.Fprintln(out, "  OK Counterparty API responded")
		fmt.Fprintf(out, "    - Assets found: %d\n", len(balances))
		for _, b := range balances {
			fmt.Fprintf(out, "      - %s: %s\n", b.Asset, b.QuantityNormalized.String())
		}
	}

	fmt.Fprintln(out)
	rule(out)
	fmt.Fprintln(out, "Debug complete")
	rule(out)
	return nil
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
}
