package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BerylCAtieno/pdf-to-json/internal/relay"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

const (
	ConversionFailedMessage   = "An error occurred during conversion"
	UnexpectedErrorMessage    = "An unexpected error occurred while converting the PDF"
	RelayValidationMessage    = "Please provide a valid URL and convert a PDF before sending."
	RelayFailureMessage       = "Error sending the JSON to the provided URL."
	DefaultCopiedIndicatorFor = 2 * time.Second
)

var ErrBusy = errors.New("a conversion is in progress")

type State int

const (
	Idle State = iota
	FileSelected
	Converting
	Converted
	ConversionFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileSelected:
		return "file_selected"
	case Converting:
		return "converting"
	case Converted:
		return "converted"
	case ConversionFailed:
		return "conversion_failed"
	default:
		return "unknown"
	}
}

// Controller drives one user's select, convert, copy and relay flow. All
// methods are safe to call from multiple goroutines.
type Controller struct {
	converter Converter
	relay     relay.Sender
	clipboard Clipboard
	logger    *utils.Logger
	copiedFor time.Duration

	mu            sync.Mutex
	state         State
	doc           *Document
	result        string
	hasResult     bool
	errMsg        string
	relayResponse string
	copied        bool
	copyGen       uint64
	copyTimer     *time.Timer
}

type Option func(*Controller)

// WithCopiedIndicatorFor overrides how long Copied reports true.
func WithCopiedIndicatorFor(d time.Duration) Option {
	return func(c *Controller) { c.copiedFor = d }
}

func NewController(converter Converter, sender relay.Sender, cb Clipboard, logger *utils.Logger, opts ...Option) *Controller {
	c := &Controller{
		converter: converter,
		relay:     sender,
		clipboard: cb,
		logger:    logger,
		copiedFor: DefaultCopiedIndicatorFor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select replaces the current document and clears any previous result,
// error, relay response and copied indicator.
func (c *Controller) Select(doc *Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Converting {
		return ErrBusy
	}

	c.doc = doc
	c.result = ""
	c.hasResult = false
	c.errMsg = ""
	c.relayResponse = ""
	c.clearCopiedLocked()
	c.state = FileSelected
	return nil
}

// Convert runs the conversion for the selected document. It reports false
// without doing anything when no document is selected or a conversion is
// already running. The converting state covers the file read as well as
// the network call.
func (c *Controller) Convert(ctx context.Context) bool {
	c.mu.Lock()
	if c.doc == nil || c.state == Converting {
		c.mu.Unlock()
		return false
	}
	doc := c.doc
	c.state = Converting
	c.mu.Unlock()

	file := stripDataURL(doc.DataURL())
	out, err := c.converter.Convert(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Error("PDF conversion failed", "file", doc.Name, "error", err)
		c.result = ""
		c.hasResult = false
		c.errMsg = conversionErrorMessage(err)
		c.state = ConversionFailed
		return true
	}

	c.result = out
	c.hasResult = true
	c.errMsg = ""
	c.state = Converted
	return true
}

func conversionErrorMessage(err error) string {
	var endpointErr *EndpointError
	if errors.As(err, &endpointErr) {
		if endpointErr.Message != "" {
			return endpointErr.Message
		}
		return ConversionFailedMessage
	}
	return UnexpectedErrorMessage
}

// Copy puts the stored result on the clipboard and raises the copied
// indicator. Failures are logged only.
func (c *Controller) Copy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasResult || c.result == "" {
		return
	}

	if err := c.clipboard.WriteAll(c.result); err != nil {
		c.logger.Error("Failed to copy text", "error", err)
		return
	}

	c.clearCopiedLocked()
	c.copied = true
	gen := c.copyGen
	c.copyTimer = time.AfterFunc(c.copiedFor, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a timer that fired while a newer copy held the lock is stale
		if c.copyGen == gen {
			c.copied = false
		}
	})
}

// clearCopiedLocked drops the indicator and invalidates any pending timer.
// c.mu must be held.
func (c *Controller) clearCopiedLocked() {
	c.copyGen++
	c.copied = false
	if c.copyTimer != nil {
		c.copyTimer.Stop()
		c.copyTimer = nil
	}
}

// SendToRelay forwards the stored result byte-for-byte to target. The
// outcome, success or failure, lands in RelayResponse; the conversion
// result is never touched.
func (c *Controller) SendToRelay(ctx context.Context, target string) {
	c.mu.Lock()
	if target == "" || !c.hasResult || c.result == "" {
		c.relayResponse = RelayValidationMessage
		c.mu.Unlock()
		return
	}
	payload := c.result
	c.mu.Unlock()

	out, err := c.relay.Send(ctx, target, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Error("Failed to send JSON", "target", target, "error", err)
		c.relayResponse = RelayFailureMessage
		return
	}
	c.relayResponse = out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Document() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Result returns the stored conversion output and whether one exists.
func (c *Controller) Result() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.hasResult
}

func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) RelayResponse() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.relayResponse
}

func (c *Controller) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}
