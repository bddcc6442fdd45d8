package auction

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/samber/lo"
)

var (
	_ btcclient.Contract             = (*fakeLedger)(nil)
	_ datagateway.AuctionDataGateway = (*memoryStore)(nil)
)

// fakeLedger is an in-memory chain state.
type fakeLedger struct {
	mu sync.Mutex

	height    int64
	spentBy   map[wire.OutPoint]chainhash.Hash
	txs       map[chainhash.Hash]*btcclient.Transaction
	details   map[chainhash.Hash]*btcclient.TransactionDetails
	unknown   map[wire.OutPoint]struct{} // outputs BatchIsSpent can't answer
	errs      map[string]error           // per-method failures
	spentErrs map[wire.OutPoint]error    // per-output IsSpent failures
	isSpents  int
}

func newFakeLedger(height int64) *fakeLedger {
	return &fakeLedger{
		height:    height,
		spentBy:   make(map[wire.OutPoint]chainhash.Hash),
		txs:       make(map[chainhash.Hash]*btcclient.Transaction),
		details:   make(map[chainhash.Hash]*btcclient.TransactionDetails),
		unknown:   make(map[wire.OutPoint]struct{}),
		errs:      make(map[string]error),
		spentErrs: make(map[wire.OutPoint]error),
	}
}

func (l *fakeLedger) setHeight(height int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.height = height
}

// spend records tx as the spender of every input.
func (l *fakeLedger) spend(tx *btcclient.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs[tx.TxHash] = tx
	for _, in := range tx.Inputs {
		l.spentBy[in] = tx.TxHash
	}
}

func (l *fakeLedger) confirm(txHash chainhash.Hash, height int64, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.details[txHash] = &btcclient.TransactionDetails{BlockHeight: height, BlockTime: at}
}

func (l *fakeLedger) fail(method string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.errs, method)
		return
	}
	l.errs[method] = err
}

func (l *fakeLedger) failSpent(outPoint wire.OutPoint, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spentErrs[outPoint] = err
}

func (l *fakeLedger) err(method string) error {
	return l.errs[method]
}

func (l *fakeLedger) CurrentHeight(context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("CurrentHeight"); err != nil {
		return 0, err
	}
	return l.height, nil
}

func (l *fakeLedger) GetUTXO(_ context.Context, outPoint wire.OutPoint) (*btcclient.UTXO, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("GetUTXO"); err != nil {
		return nil, err
	}
	if _, ok := l.spentBy[outPoint]; ok {
		return nil, nil
	}
	return &btcclient.UTXO{OutPoint: outPoint, Value: 546}, nil
}

func (l *fakeLedger) IsSpent(ctx context.Context, outPoint wire.OutPoint) (bool, error) {
	l.mu.Lock()
	l.isSpents++
	err := l.err("IsSpent")
	if e, ok := l.spentErrs[outPoint]; ok {
		err = e
	}
	if err != nil {
		l.mu.Unlock()
		return false, err
	}
	l.mu.Unlock()
	utxo, err := l.GetUTXO(ctx, outPoint)
	if err != nil {
		return false, err
	}
	return utxo == nil, nil
}

func (l *fakeLedger) BatchIsSpent(_ context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint]bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("BatchIsSpent"); err != nil {
		return nil, err
	}
	result := make(map[wire.OutPoint]bool, len(outPoints))
	for _, outPoint := range outPoints {
		if _, ok := l.unknown[outPoint]; ok {
			continue
		}
		_, spent := l.spentBy[outPoint]
		result[outPoint] = spent
	}
	return result, nil
}

func (l *fakeLedger) GetTransaction(_ context.Context, txHash chainhash.Hash) (*btcclient.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("GetTransaction"); err != nil {
		return nil, err
	}
	return l.txs[txHash], nil
}

func (l *fakeLedger) GetTransactionDetails(_ context.Context, txHash chainhash.Hash) (*btcclient.TransactionDetails, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("GetTransactionDetails"); err != nil {
		return nil, err
	}
	return l.details[txHash], nil
}

func (l *fakeLedger) GetRecipientAddress(_ context.Context, txHash chainhash.Hash) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("GetRecipientAddress"); err != nil {
		return "", err
	}
	tx, ok := l.txs[txHash]
	if !ok || len(tx.Outputs) == 0 {
		return "", nil
	}
	return tx.Outputs[0].Address, nil
}

func (l *fakeLedger) FindSpendingTransaction(_ context.Context, outPoint wire.OutPoint) (*chainhash.Hash, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.err("FindSpendingTransaction"); err != nil {
		return nil, err
	}
	txHash, ok := l.spentBy[outPoint]
	if !ok {
		return nil, nil
	}
	if _, known := l.txs[txHash]; !known {
		return nil, nil
	}
	return &txHash, nil
}

// memoryStore is an AuctionDataGateway backed by maps. Writes made through a transaction
// are applied on Commit only.
type memoryStore struct {
	mu       *sync.Mutex
	auctions map[int64]*entity.Auction
	rungs    map[int64][]*entity.PriceRung
	nextID   *int64
	clock    func() time.Time

	pending []func()
	inTx    bool
	commits *int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		mu:       &sync.Mutex{},
		auctions: make(map[int64]*entity.Auction),
		rungs:    make(map[int64][]*entity.PriceRung),
		nextID:   lo.ToPtr(int64(0)),
		clock:    time.Now,
		commits:  lo.ToPtr(0),
	}
}

func (s *memoryStore) BeginAuctionTx(context.Context) (datagateway.AuctionDataGatewayWithTx, error) {
	if s.inTx {
		return nil, errors.New("transaction already exists")
	}
	tx := *s
	tx.pending = nil
	tx.inTx = true
	return &tx, nil
}

func (s *memoryStore) Commit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, apply := range s.pending {
		apply()
	}
	if s.inTx {
		*s.commits++
	}
	s.pending = nil
	return nil
}

func (s *memoryStore) Rollback(context.Context) error {
	s.pending = nil
	return nil
}

func (s *memoryStore) write(apply func()) {
	if s.inTx {
		s.pending = append(s.pending, apply)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	apply()
}

func (s *memoryStore) commitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.commits
}

func copyAuction(a *entity.Auction) *entity.Auction {
	c := *a
	return &c
}

func (s *memoryStore) GetAuctionByID(_ context.Context, id int64) (*entity.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction, ok := s.auctions[id]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return copyAuction(auction), nil
}

func (s *memoryStore) filter(match func(*entity.Auction) bool) []*entity.Auction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*entity.Auction
	for _, auction := range s.auctions {
		if match(auction) {
			result = append(result, copyAuction(auction))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

func (s *memoryStore) GetAuctions(_ context.Context, statuses ...entity.Status) ([]*entity.Auction, error) {
	return s.filter(func(a *entity.Auction) bool {
		return len(statuses) == 0 || lo.Contains(statuses, a.Status)
	}), nil
}

func (s *memoryStore) GetAuctionsByUTXO(_ context.Context, utxo wire.OutPoint, statuses ...entity.Status) ([]*entity.Auction, error) {
	return s.filter(func(a *entity.Auction) bool {
		return a.UTXO == utxo && (len(statuses) == 0 || lo.Contains(statuses, a.Status))
	}), nil
}

func (s *memoryStore) GetAuctionsMissingSpendDetails(context.Context) ([]*entity.Auction, error) {
	return s.filter(func(a *entity.Auction) bool {
		return (a.Status == entity.StatusSold || a.Status == entity.StatusClosed) && a.MissingSpendDetails()
	}), nil
}

func (s *memoryStore) GetPriceRungs(_ context.Context, auctionID int64) ([]*entity.PriceRung, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.PriceRung(nil), s.rungs[auctionID]...), nil
}

func (s *memoryStore) GetPriceRung(_ context.Context, auctionID int64, blockNumber int64) (*entity.PriceRung, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rung, ok := lo.Find(s.rungs[auctionID], func(r *entity.PriceRung) bool { return r.BlockNumber == blockNumber })
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return rung, nil
}

func (s *memoryStore) CreateAuction(_ context.Context, auction *entity.Auction) error {
	s.mu.Lock()
	*s.nextID++
	auction.ID = *s.nextID
	auction.CreatedAt = s.clock()
	s.mu.Unlock()

	stored := copyAuction(auction)
	s.write(func() { s.auctions[stored.ID] = stored })
	return nil
}

func (s *memoryStore) CreatePriceRungs(_ context.Context, rungs []*entity.PriceRung) error {
	s.write(func() {
		for _, rung := range rungs {
			s.rungs[rung.AuctionID] = append(s.rungs[rung.AuctionID], rung)
		}
		for id := range s.rungs {
			sort.Slice(s.rungs[id], func(i, j int) bool { return s.rungs[id][i].BlockNumber < s.rungs[id][j].BlockNumber })
		}
	})
	return nil
}

func (s *memoryStore) UpdateAuction(_ context.Context, params datagateway.UpdateAuctionParams) error {
	s.mu.Lock()
	_, ok := s.auctions[params.ID]
	s.mu.Unlock()
	if !ok {
		return errors.WithStack(errs.NotFound)
	}
	s.write(func() {
		auction := s.auctions[params.ID]
		if params.Status != nil {
			auction.Status = *params.Status
		}
		if params.SpentTxHash != nil {
			auction.SpentTxHash = params.SpentTxHash
		}
		if params.SpentBlock != nil {
			auction.SpentBlock = params.SpentBlock
		}
		if params.SpentAt != nil {
			auction.SpentAt = params.SpentAt
		}
		if params.Recipient != nil {
			auction.Recipient = params.Recipient
		}
	})
	return nil
}
