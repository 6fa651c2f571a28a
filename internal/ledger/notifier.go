package ledger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Row is one line posted to the external ledger (a spreadsheet webhook).
type Row struct {
	Kind         string           `json:"kind"`
	Code         string           `json:"code,omitempty"`
	CustomerNote string           `json:"customerNote,omitempty"`
	PickupTime   string           `json:"pickupTime,omitempty"`
	Status       string           `json:"status,omitempty"`
	TotalAmount  *decimal.Decimal `json:"totalAmount,omitempty"`
	MeatTotal    *decimal.Decimal `json:"meatTotal,omitempty"`
	VegTotal     *decimal.Decimal `json:"vegTotal,omitempty"`
	RevenueTotal *decimal.Decimal `json:"revenueTotal,omitempty"`
	WindowStart  *time.Time       `json:"windowStart,omitempty"`
	WindowEnd    *time.Time       `json:"windowEnd,omitempty"`
	RecordedAt   time.Time        `json:"recordedAt"`
}

const (
	KindOrderCreated  = "order_created"
	KindWeeklySummary = "weekly_summary"
)

// Notifier ships rows to the ledger webhook off the request path. Publish
// never blocks and never fails the caller: when the queue is full or the
// webhook is down the row is dropped and logged. An empty webhook URL
// disables shipping entirely.
type Notifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
	queue  chan Row
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewNotifier(url string, queueSize int, logger *zap.Logger) *Notifier {
	n := &Notifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}

	if url == "" {
		return n
	}

	if queueSize < 1 {
		queueSize = 1
	}
	n.queue = make(chan Row, queueSize)
	n.wg.Add(1)
	go n.run()

	return n
}

func (n *Notifier) Publish(row Row) {
	if n.queue == nil {
		return
	}

	// The send happens under the same lock Close takes before closing the
	// queue, so a late publisher drops its row instead of panicking.
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		n.logger.Warn("ledger closed, dropping row",
			zap.String("kind", row.Kind),
			zap.String("code", row.Code),
		)
		return
	}

	select {
	case n.queue <- row:
	default:
		n.logger.Warn("ledger queue full, dropping row",
			zap.String("kind", row.Kind),
			zap.String("code", row.Code),
		)
	}
}

// Close drains the queue and stops the worker. Safe to call twice; rows
// published after Close are dropped and logged.
func (n *Notifier) Close() {
	if n.queue == nil {
		return
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()

	for row := range n.queue {
		n.post(row)
	}
}

func (n *Notifier) post(row Row) {
	body, err := json.Marshal(row)
	if err != nil {
		n.logger.Error("marshaling ledger row", zap.Error(err))
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("posting ledger row failed",
			zap.String("kind", row.Kind),
			zap.String("code", row.Code),
			zap.Error(err),
		)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Warn("ledger webhook rejected row",
			zap.String("kind", row.Kind),
			zap.String("code", row.Code),
			zap.Int("status", resp.StatusCode),
		)
	}
}
