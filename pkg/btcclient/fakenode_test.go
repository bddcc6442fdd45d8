package btcclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/dutch-auction/common"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcResponse struct {
	Result any               `json:"result"`
	Error  *btcjson.RPCError `json:"error"`
	ID     json.RawMessage   `json:"id"`
}

// fakeNode is a minimal Bitcoin Core JSON-RPC server.
type fakeNode struct {
	mu sync.Mutex

	height int64
	utxos  map[wire.OutPoint]map[string]any // gettxout results, missing means spent
	txs    map[chainhash.Hash]map[string]any

	spendingPrevout map[wire.OutPoint]chainhash.Hash
	spentInfo       map[wire.OutPoint]chainhash.Hash
	received        map[string][]chainhash.Hash

	methodErrors map[string]*btcjson.RPCError
	itemErrors   map[wire.OutPoint]*btcjson.RPCError
	failBatches  bool
	down         bool

	calls      map[string]int
	batchCalls int
}

func newFakeNode(t *testing.T) (*fakeNode, *Client) {
	t.Helper()
	node := &fakeNode{
		utxos:           make(map[wire.OutPoint]map[string]any),
		txs:             make(map[chainhash.Hash]map[string]any),
		spendingPrevout: make(map[wire.OutPoint]chainhash.Hash),
		spentInfo:       make(map[wire.OutPoint]chainhash.Hash),
		received:        make(map[string][]chainhash.Hash),
		methodErrors:    make(map[string]*btcjson.RPCError),
		itemErrors:      make(map[wire.OutPoint]*btcjson.RPCError),
		calls:           make(map[string]int),
	}
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	client, err := New(Config{
		ConnConfig: rpcclient.ConnConfig{
			Host:         strings.TrimPrefix(server.URL, "http://"),
			User:         "user",
			Pass:         "pass",
			DisableTLS:   true,
			HTTPPostMode: true,
		},
		Network:   common.NetworkRegtest,
		BatchSize: 2,
	})
	require.NoError(t, err)
	t.Cleanup(client.Shutdown)
	return node, client
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.down {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("node is down"))
		return
	}

	if trimmed := strings.TrimSpace(string(body)); strings.HasPrefix(trimmed, "[") {
		n.batchCalls++
		if n.failBatches {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("batch rejected"))
			return
		}
		var reqs []rpcRequest
		if err := json.Unmarshal(body, &reqs); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resps := make([]rpcResponse, 0, len(reqs))
		for _, req := range reqs {
			resps = append(resps, n.handle(req))
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func (n *fakeNode) handle(req rpcRequest) rpcResponse {
	n.calls[req.Method]++
	resp := rpcResponse{ID: req.ID}
	if rpcErr, ok := n.methodErrors[req.Method]; ok {
		resp.Error = rpcErr
		return resp
	}

	switch req.Method {
	case "getblockcount":
		resp.Result = n.height
	case "gettxout":
		outPoint := wire.OutPoint{Hash: paramHash(req.Params[0]), Index: paramUint32(req.Params[1])}
		if rpcErr, ok := n.itemErrors[outPoint]; ok {
			resp.Error = rpcErr
			return resp
		}
		if utxo, ok := n.utxos[outPoint]; ok {
			resp.Result = utxo
		}
	case "getrawtransaction":
		tx, ok := n.txs[paramHash(req.Params[0])]
		if !ok {
			resp.Error = &btcjson.RPCError{Code: btcjson.ErrRPCInvalidAddressOrKey, Message: "No such mempool or blockchain transaction"}
			return resp
		}
		resp.Result = tx
	case "gettxspendingprevout":
		var prevouts []struct {
			TxID string `json:"txid"`
			Vout uint32 `json:"vout"`
		}
		_ = json.Unmarshal(req.Params[0], &prevouts)
		result := make([]map[string]any, 0, len(prevouts))
		for _, p := range prevouts {
			hash, _ := chainhash.NewHashFromStr(p.TxID)
			entry := map[string]any{"txid": p.TxID, "vout": p.Vout}
			if spender, ok := n.spendingPrevout[wire.OutPoint{Hash: *hash, Index: p.Vout}]; ok {
				entry["spendingtxid"] = spender.String()
			}
			result = append(result, entry)
		}
		resp.Result = result
	case "getspentinfo":
		var p struct {
			TxID  string `json:"txid"`
			Index uint32 `json:"index"`
		}
		_ = json.Unmarshal(req.Params[0], &p)
		hash, _ := chainhash.NewHashFromStr(p.TxID)
		spender, ok := n.spentInfo[wire.OutPoint{Hash: *hash, Index: p.Index}]
		if !ok {
			resp.Error = &btcjson.RPCError{Code: btcjson.ErrRPCInvalidAddressOrKey, Message: "Unable to get spent info"}
			return resp
		}
		resp.Result = map[string]any{"txid": spender.String(), "index": p.Index, "height": n.height}
	case "listreceivedbyaddress":
		var address string
		_ = json.Unmarshal(req.Params[3], &address)
		txIDs := make([]string, 0)
		for _, h := range n.received[address] {
			txIDs = append(txIDs, h.String())
		}
		resp.Result = []map[string]any{{"address": address, "txids": txIDs}}
	default:
		resp.Error = &btcjson.RPCError{Code: btcjson.ErrRPCMethodNotFound.Code, Message: "Method not found"}
	}
	return resp
}

func (n *fakeNode) setUTXO(outPoint wire.OutPoint, value string, address string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.utxos[outPoint] = map[string]any{
		"bestblock":     hashOf("best").String(),
		"confirmations": 6,
		"value":         json.Number(value),
		"scriptPubKey":  map[string]any{"hex": "0014" + strings.Repeat("ab", 20), "type": "witness_v0_keyhash", "address": address},
	}
}

type fakeOutput struct {
	value   string
	hex     string
	address string
}

func (n *fakeNode) setTx(txHash chainhash.Hash, confirmations int64, inputs []wire.OutPoint, outputs ...fakeOutput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	vin := make([]map[string]any, 0, len(inputs))
	for _, in := range inputs {
		vin = append(vin, map[string]any{"txid": in.Hash.String(), "vout": in.Index})
	}
	vout := make([]map[string]any, 0, len(outputs))
	for i, out := range outputs {
		spk := map[string]any{"hex": out.hex}
		if out.address != "" {
			spk["address"] = out.address
		}
		vout = append(vout, map[string]any{"value": json.Number(out.value), "n": i, "scriptPubKey": spk})
	}
	tx := map[string]any{
		"txid":          txHash.String(),
		"vin":           vin,
		"vout":          vout,
		"confirmations": confirmations,
	}
	if confirmations > 0 {
		tx["blocktime"] = 1700000000
	}
	n.txs[txHash] = tx
}

func (n *fakeNode) callCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func paramHash(raw json.RawMessage) chainhash.Hash {
	var s string
	_ = json.Unmarshal(raw, &s)
	hash, _ := chainhash.NewHashFromStr(s)
	return *hash
}

func paramUint32(raw json.RawMessage) uint32 {
	var v uint32
	_ = json.Unmarshal(raw, &v)
	return v
}

func hashOf(s string) chainhash.Hash {
	return chainhash.HashH([]byte(s))
}

func outPointOf(s string, index uint32) wire.OutPoint {
	return wire.OutPoint{Hash: hashOf(s), Index: index}
}

func addressOf(i int) string {
	return fmt.Sprintf("bcrt1qtest%d", i)
}
