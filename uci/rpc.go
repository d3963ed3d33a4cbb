package uci

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/akanalytics/odonata-go/board"
)

// RPC method names understood by the engine.
const (
	MethodEval              = "eval"
	MethodStaticEvalExplain = "static_eval_explain"
	MethodVersion           = "version"
	MethodOptions           = "options"
	MethodListMethods       = "system.listMethods"

	MethodPositionCatalog       = "position_catalog"
	MethodPositionUpload        = "position_upload"
	MethodPositionDownloadModel = "position_download_model"
	MethodTuningMSE             = "tuning_mean_squared_error"
)

// Routing says what the correlator did with a line.
type Routing int

const (
	// NotResponse: the line is not a JSON-RPC response.
	NotResponse Routing = iota
	// Delivered: the line filled the slot of an outstanding id.
	Delivered
	// Stale: a well-formed response for an id that is not outstanding,
	// such as the late answer to a cancelled call.
	Stale
)

var errNoResponse = errors.New("no response for id")

type rpcRequest struct {
	JSONRPC string  `json:"jsonrpc"`
	Method  string  `json:"method"`
	ID      *uint64 `json:"id,omitempty"`
	Params  []any   `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// slot holds the response for one outstanding id.
type slot struct {
	filled bool
	result json.RawMessage
	err    error
}

// Correlator matches id-tagged responses to the requests that produced
// them, in any arrival order. Ids are strictly increasing and a slot is
// deleted when its response is taken.
type Correlator struct {
	lastID atomic.Uint64

	mu    sync.Mutex
	slots map[uint64]*slot
}

// NewCorrelator creates an empty correlator.
func NewCorrelator() *Correlator {
	return &Correlator{slots: make(map[uint64]*slot)}
}

// Request allocates an id, registers an empty slot for it and returns the
// encoded request line.
func (c *Correlator) Request(method string, params ...any) (uint64, string, error) {
	id := c.lastID.Add(1)
	line, err := encodeRequest(method, &id, params)
	if err != nil {
		return 0, "", err
	}
	c.mu.Lock()
	c.slots[id] = &slot{}
	c.mu.Unlock()
	return id, line, nil
}

// Notification encodes a request without an id. No response is expected.
func (c *Correlator) Notification(method string, params ...any) (string, error) {
	return encodeRequest(method, nil, params)
}

func encodeRequest(method string, id *uint64, params []any) (string, error) {
	if params == nil {
		params = []any{}
	}
	data, err := json.Marshal(rpcRequest{JSONRPC: JSONRPCVersion, Method: method, ID: id, Params: params})
	if err != nil {
		return "", fmt.Errorf("encode %s request: %w", method, err)
	}
	return string(data), nil
}

// Dispatch stores line in the slot of the id it answers. It reports false
// for lines that are not responses to an outstanding id; the error is set
// only when a line looks like JSON but fails to decode.
func (c *Correlator) Dispatch(line string) (bool, error) {
	r, err := c.Route(line)
	return r == Delivered, err
}

// Route is Dispatch reporting the kind of line seen. A line that looks
// like JSON but fails to decode is NotResponse with an error.
func (c *Correlator) Route(line string) (Routing, error) {
	if !strings.HasPrefix(strings.TrimSpace(line), "{") {
		return NotResponse, nil
	}
	var resp rpcResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return NotResponse, fmt.Errorf("decode response: %w", err)
	}
	if resp.ID == nil {
		return NotResponse, nil
	}
	id := *resp.ID

	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[id]
	if !ok || s.filled {
		return Stale, nil
	}
	s.filled = true
	if resp.Error != nil {
		s.err = &CorrelationError{
			ID:      id,
			Code:    resp.Error.Code,
			Message: resp.Error.Message,
			Data:    string(resp.Error.Data),
		}
		return Delivered, nil
	}
	s.result = resp.Result
	return Delivered, nil
}

// Filled reports whether the response for id has arrived.
func (c *Correlator) Filled(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[id]
	return ok && s.filled
}

// Take removes the slot for id and returns its result, or its error
// payload as a *CorrelationError.
func (c *Correlator) Take(id uint64) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[id]
	if !ok || !s.filled {
		return nil, fmt.Errorf("%w %d", errNoResponse, id)
	}
	delete(c.slots, id)
	return s.result, s.err
}

// Cancel forgets id without waiting for its response.
func (c *Correlator) Cancel(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, id)
}

// Pending returns the number of ids whose slots have not been taken.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Call sends a correlated request and decodes its result into result,
// which may be nil. Lines that are not responses go to the info log while
// waiting; a non-response line containing "error" aborts the call with an
// *EngineError. Responses to ids no longer outstanding are dropped without
// counting toward the line ceiling that bounds the wait.
func (c *Client) Call(method string, result any, params ...any) error {
	return c.do(func() error {
		raw, err := c.call(method, params)
		if err != nil {
			return err
		}
		if result == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	})
}

func (c *Client) call(method string, params []any) (json.RawMessage, error) {
	id, line, err := c.rpc.Request(method, params...)
	if err != nil {
		return nil, err
	}
	if err := c.ch.Send(line); err != nil {
		c.rpc.Cancel(id)
		return nil, err
	}
	c.infos = c.infos[:0]
	// n counts lines produced for this request; stale responses left over
	// from abandoned calls are not charged against the ceiling.
	for n := 0; !c.rpc.Filled(id); {
		if n >= c.opts.lineCeiling {
			c.rpc.Cancel(id)
			c.logger.Warn("gave up waiting for rpc response", "method", method, "id", id, "lines", n)
			return nil, &TimeoutError{Command: line, Prefix: fmt.Sprintf("id %d", id), Lines: n}
		}
		text, err := c.ch.ReceiveLine()
		if err != nil {
			c.rpc.Cancel(id)
			return nil, err
		}
		routed, err := c.rpc.Route(text)
		if err != nil {
			c.logger.Warn("undecodable rpc line", "line", text, "error", err)
		}
		switch routed {
		case Delivered:
			continue
		case Stale:
			c.logger.Debug("dropped response for an id no longer outstanding", "line", text)
			continue
		}
		n++
		if strings.Contains(text, ErrorMarker) {
			c.rpc.Cancel(id)
			return nil, &EngineError{Command: line, Line: text}
		}
		c.infos = append(c.infos, text)
	}
	return c.rpc.Take(id)
}

// Notify sends a request without an id and does not wait.
func (c *Client) Notify(method string, params ...any) error {
	return c.do(func() error {
		line, err := c.rpc.Notification(method, params...)
		if err != nil {
			return err
		}
		return c.ch.Send(line)
	})
}

// Eval evaluates b. The engine returns a sparse record whose Outcome
// classifies it.
func (c *Client) Eval(b board.Board) (EvalTags, error) {
	var tags EvalTags
	err := c.Call(MethodEval, &tags, b.FEN())
	return tags, err
}

// StaticEvalExplain returns a breakdown of the static evaluation of b.
func (c *Client) StaticEvalExplain(b board.Board) (string, error) {
	var s string
	err := c.Call(MethodStaticEvalExplain, &s, b.FEN())
	return s, err
}

// RPCVersion returns the version reported over the correlated channel.
func (c *Client) RPCVersion() (string, error) {
	var s string
	err := c.Call(MethodVersion, &s)
	return s, err
}

// Options returns the engine's current settings as strings.
func (c *Client) Options() (map[string]string, error) {
	var listing string
	if err := c.Call(MethodOptions, &listing); err != nil {
		return nil, err
	}
	return ParseOptionListing(listing), nil
}

// ListMethods returns the RPC methods the engine supports.
func (c *Client) ListMethods() ([]string, error) {
	var methods []string
	err := c.Call(MethodListMethods, &methods)
	return methods, err
}

// PositionCatalog returns the positions of a named test suite, such as
// "bratko_kopec" or "wac". Each record is a six-field FEN; any EPD
// operations after it are ignored.
func (c *Client) PositionCatalog(name string) ([]board.Board, error) {
	var records []string
	if err := c.Call(MethodPositionCatalog, &records, name); err != nil {
		return nil, err
	}
	boards := make([]board.Board, 0, len(records))
	for i, rec := range records {
		b, err := board.ParseFEN(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog %s position %d: %w", name, i, err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// PositionUpload loads an EPD file into the engine's tuning set and returns
// the number of positions uploaded. An empty filename clears the set.
func (c *Client) PositionUpload(filename string) (int, error) {
	var n int
	err := c.Call(MethodPositionUpload, &n, filename)
	return n, err
}

// PositionDownloadModel writes the engine's tuning model to filename and
// returns the number of records written.
func (c *Client) PositionDownloadModel(filename string) (int, error) {
	var n int
	err := c.Call(MethodPositionDownloadModel, &n, filename)
	return n, err
}

// TuningMSE returns the mean squared error of the current evaluation over
// the uploaded tuning set.
func (c *Client) TuningMSE() (float64, error) {
	var mse float64
	err := c.Call(MethodTuningMSE, &mse)
	return mse, err
}
