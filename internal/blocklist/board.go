package blocklist

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/service"
)

// SuccessMessage is shown after the server accepted a new order
const SuccessMessage = "Order updated"

var (
	// ErrReorderPending is returned for a drag that ends while the previous
	// reorder is still waiting for the server
	ErrReorderPending = errors.New("a reorder is already in progress")
	// ErrNotInteractive is returned for a drag before the board is mounted
	ErrNotInteractive = errors.New("board is not interactive yet")
	// ErrUnknownItem is returned when a drag names an id that is not on the board
	ErrUnknownItem = errors.New("item is not on the board")
)

// Mode is the render mode of the board
type Mode int

const (
	// Static renders without drag handles, matching the server markup
	Static Mode = iota
	// Interactive enables drag and keyboard reordering
	Interactive
)

// State is the reorder transition state
type State int

const (
	Stable State = iota
	Pending
	RolledBack
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case RolledBack:
		return "rolled_back"
	default:
		return "stable"
	}
}

// Reorderer persists a complete order
type Reorderer interface {
	Reorder(ctx context.Context, ids []string) error
}

// ReordererFunc adapts a function to Reorderer
type ReordererFunc func(ctx context.Context, ids []string) error

func (f ReordererFunc) Reorder(ctx context.Context, ids []string) error {
	return f(ctx, ids)
}

// ServiceReorderer sends reorders to the block service on behalf of one
// identity
type ServiceReorderer struct {
	Blocks   service.IBlockService
	Identity service.Identity
}

func (r ServiceReorderer) Reorder(ctx context.Context, ids []string) error {
	return r.Blocks.Reorder(ctx, r.Identity, ids)
}

// Notifier shows transient messages to the owner
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Board holds the ordered items. Every completed drag is applied locally
// first and then sent to the Reorderer exactly once; a failure restores the
// order from before the drag.
type Board struct {
	mu         sync.Mutex
	items      []Item
	previous   []Item
	mode       Mode
	state      State
	generation uint64

	reorderer Reorderer
	notifier  Notifier
}

// NewBoard creates an empty static board
func NewBoard(r Reorderer, n Notifier) *Board {
	if n == nil {
		n = &Recorder{}
	}
	return &Board{reorderer: r, notifier: n}
}

// Seed replaces the items with the server list. A reorder still in flight is
// superseded: when it returns it neither commits nor reverts.
func (b *Board) Seed(items []Item) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append([]Item(nil), items...)
	b.previous = nil
	b.state = Stable
	b.generation++
}

// Mount switches the board to Interactive. Later calls do nothing.
func (b *Board) Mount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode = Interactive
}

func (b *Board) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Items returns a copy of the current order
func (b *Board) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Item(nil), b.items...)
}

// DragEnd drops activeID onto the position of overID. Dropping an item on
// itself is a no-op and sends nothing.
func (b *Board) DragEnd(ctx context.Context, activeID, overID uuid.UUID) error {
	b.mu.Lock()
	if b.mode != Interactive {
		b.mu.Unlock()
		return ErrNotInteractive
	}
	if b.state == Pending {
		b.mu.Unlock()
		return ErrReorderPending
	}
	from, to := b.indexOf(activeID), b.indexOf(overID)
	if from < 0 || to < 0 {
		b.mu.Unlock()
		return ErrUnknownItem
	}
	if from == to {
		b.mu.Unlock()
		return nil
	}

	b.previous = b.items
	b.items = Move(b.items, from, to)
	b.state = Pending
	generation := b.generation
	ids := IDs(b.items)
	b.mu.Unlock()

	err := b.reorderer.Reorder(ctx, ids)
	return b.settle(generation, err)
}

// settle commits or reverts the pending order unless a Seed replaced it
func (b *Board) settle(generation uint64, err error) error {
	b.mu.Lock()
	if generation != b.generation {
		b.mu.Unlock()
		return err
	}

	if err == nil {
		b.previous = nil
		b.state = Stable
		b.mu.Unlock()
		b.notifier.Success(SuccessMessage)
		return nil
	}

	b.items = b.previous
	b.previous = nil
	b.state = RolledBack
	b.mu.Unlock()
	b.notifier.Error(service.MessageOf(err))
	return err
}

func (b *Board) indexOf(id uuid.UUID) int {
	for i, it := range b.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
