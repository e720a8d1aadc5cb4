package sketch

import (
	"image/color"
	"sync"

	"go.uber.org/zap"
)

// Pad is the host of a Surface. It owns the tool selection, threads
// snapshots into the attachment it holds for the entry being written and
// fans them out to subscribers such as the LAN mirror.
//
// Tool changes must come from the goroutine driving the surface. The
// attachment and the subscriber list may be read from anywhere.
type Pad struct {
	tools     ToolState
	lastColor color.NRGBA
	surface   *Surface
	logger    *zap.Logger

	// OnChange is called with every snapshot after the attachment is
	// updated; "" means the attachment was removed.
	OnChange func(snapshot string)

	mu         sync.RWMutex
	attachment string
	subs       map[chan string]struct{}
}

// NewPad returns a pad with its own surface configured by tools.
func NewPad(tools ToolState, logger *zap.Logger) *Pad {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pad{
		tools:     tools,
		lastColor: tools.Color,
		logger:    logger,
		subs:      make(map[chan string]struct{}),
	}
	p.surface = NewSurface(&p.tools, logger)
	p.surface.OnSave = p.save
	return p
}

// Surface returns the drawing surface fed by this pad.
func (p *Pad) Surface() *Surface { return p.surface }

// Tools returns the current tool configuration.
func (p *Pad) Tools() ToolState { return p.tools }

// SelectPen switches back to drawing with the last chosen color.
func (p *Pad) SelectPen() {
	p.tools.Tool = ToolPen
	p.tools.Color = p.lastColor
}

// SelectEraser switches to punching transparency. Width is kept.
func (p *Pad) SelectEraser() {
	p.tools.Tool = ToolEraser
}

// SetColor changes the pen color. It does not leave eraser mode.
func (p *Pad) SetColor(c color.NRGBA) {
	p.lastColor = c
	p.tools.Color = c
}

// SetWidth changes the stroke width for both tools. Non-positive widths are
// ignored.
func (p *Pad) SetWidth(w float32) {
	if w <= 0 {
		return
	}
	p.tools.Width = w
}

// Open mounts the surface for a new editing session, restoring initial
// when it is a snapshot. Subscribers receive initial so they stop showing
// the previous session.
func (p *Pad) Open(origin Point, width, height int, initial string) {
	p.mu.Lock()
	p.attachment = initial
	for ch := range p.subs {
		offer(ch, initial)
	}
	p.mu.Unlock()
	p.surface.Mount(origin, width, height, initial)
}

// Clear wipes the surface and removes the attachment.
func (p *Pad) Clear() { p.surface.Clear() }

// Attachment returns the latest snapshot, or "" when there is none.
func (p *Pad) Attachment() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.attachment
}

// Subscribe returns a channel receiving every snapshot after the call. A
// slow subscriber only misses intermediate snapshots: when its buffer is
// full the oldest pending one is dropped. The returned func unsubscribes
// and closes the channel.
func (p *Pad) Subscribe(buffer int) (<-chan string, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan string, buffer)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, ch)
			p.mu.Unlock()
			close(ch)
		})
	}
}

func (p *Pad) save(snapshot string) {
	p.mu.Lock()
	p.attachment = snapshot
	for ch := range p.subs {
		offer(ch, snapshot)
	}
	p.mu.Unlock()

	if snapshot == "" {
		p.logger.Debug("Handwriting cleared")
	} else {
		p.logger.Debug("Handwriting saved", zap.Int("bytes", len(snapshot)))
	}
	if p.OnChange != nil {
		p.OnChange(snapshot)
	}
}

func offer(ch chan string, snapshot string) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
