package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"arb_go/internal/domain"
	"arb_go/internal/infra"
	"arb_go/internal/service"

	"github.com/gorilla/websocket"
)

const (
	maxRetries  = 10
	readTimeout = 60 * time.Second
)

// streamMessage represents a Binance combined-stream envelope
type streamMessage struct {
	Stream string       `json:"stream"` // e.g. "btcusdt@ticker"
	Data   tickerUpdate `json:"data"`
}

// tickerUpdate is the ticker payload inside a combined-stream message
type tickerUpdate struct {
	Symbol    string `json:"s"` // Always uppercase, e.g. "BTCUSDT"
	LastPrice string `json:"c"` // Close price as string
	EventTime int64  `json:"E"` // Unix milliseconds
}

// BinanceWorker subscribes to Binance's combined ticker stream and keeps
// the shared price book current. It owns the only writer to the book.
type BinanceWorker struct {
	wsURL     string
	book      *service.PriceBook
	conn      *websocket.Conn
	mu        sync.RWMutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewBinanceWorker creates a worker subscribed to the given lowercase
// stream symbols (e.g. "btcusdt"). The combined-stream URL carries the
// subscription, so no subscribe message is needed after dialing.
func NewBinanceWorker(baseURL string, symbols []string, book *service.PriceBook) *BinanceWorker {
	streams := make([]string, len(symbols))
	for i, s := range symbols {
		streams[i] = strings.ToLower(s) + "@ticker"
	}
	return &BinanceWorker{
		wsURL: baseURL + strings.Join(streams, "/"),
		book:  book,
	}
}

// Connect starts the WebSocket connection
func (w *BinanceWorker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *BinanceWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Binance connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			infra.GlobalMetrics.RecordFeedReconnect()
			delay := infra.CalculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *BinanceWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := make(http.Header)

	conn, _, err := dialer.DialContext(ctx, w.wsURL, header)
	if err != nil {
		return domain.NewNetworkError("dial", fmt.Errorf("%w: %v", domain.ErrConnectionFailed, err))
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()

	slog.Info("Binance connected", slog.String("url", w.wsURL))
	return nil
}

func (w *BinanceWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Capture the conn under the lock; a concurrent Disconnect may
		// nil the field, but the captured conn stays valid and the read
		// fails cleanly once it is closed.
		w.mu.RLock()
		conn := w.conn
		w.mu.RUnlock()
		if conn == nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.handleMessage(msg)
	}
}

func (w *BinanceWorker) handleMessage(msg []byte) {
	var m streamMessage
	if json.Unmarshal(msg, &m) != nil || m.Data.Symbol == "" || m.Data.LastPrice == "" {
		return
	}

	price, err := strconv.ParseFloat(m.Data.LastPrice, 64)
	if err != nil {
		return
	}

	observedAt := m.Data.EventTime
	if observedAt == 0 {
		observedAt = time.Now().UnixMilli()
	}

	w.book.Update(strings.ToUpper(m.Data.Symbol), price, observedAt)
	infra.GlobalMetrics.RecordFeedMessage()
}

func (w *BinanceWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
}

// IsConnected reports the current connection state.
func (w *BinanceWorker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Disconnect stops the connection loop and closes the socket.
func (w *BinanceWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
