package demo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
)

// Placed is an object added to the store.
type Placed struct {
	ID   object.ID
	Kind facelist.Kind
}

// Route records which objects each loaded block placed. It is safe for
// concurrent use.
type Route struct {
	mu          sync.RWMutex
	blockLength float64
	blocks      map[int][]Placed
	permanent   []Placed
}

// NewRoute creates an empty route.
func NewRoute(blockLength float64) *Route {
	return &Route{blockLength: blockLength, blocks: make(map[int][]Placed)}
}

// BlockLength returns the length of one block in metres.
func (r *Route) BlockLength() float64 {
	return r.blockLength
}

func (r *Route) setBlock(i int, placed []Placed) {
	r.mu.Lock()
	r.blocks[i] = placed
	r.mu.Unlock()
}

func (r *Route) addPermanent(placed []Placed) {
	r.mu.Lock()
	r.permanent = append(r.permanent, placed...)
	r.mu.Unlock()
}

// Loaded returns the indices of loaded blocks in ascending order.
func (r *Route) Loaded() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.blocks))
	for i := range r.blocks {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Block returns the objects placed by block i.
func (r *Route) Block(i int) ([]Placed, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.blocks[i]
	return p, ok
}

// Permanent returns the objects that are visible regardless of position.
func (r *Route) Permanent() []Placed {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.permanent)
}

// Len returns the number of loaded blocks.
func (r *Route) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blocks)
}

// Loader adds generated route objects to a store in the background.
type Loader struct {
	Generator Generator
	Store     *object.Store
	Route     *Route
	// Workers bounds how many blocks are generated at once.
	Workers int
	Logger  *zap.Logger
}

// LoadPermanent adds objects that stay visible for the whole session.
func (l *Loader) LoadPermanent(placements []Placement) {
	placed := make([]Placed, len(placements))
	for k, p := range placements {
		placed[k] = Placed{ID: l.Store.Add(p.Object), Kind: p.Kind}
	}
	l.Route.addPermanent(placed)
}

// Load generates blocks [0, blocks) and adds them to the store. It
// returns the context error if cancelled before every block was loaded.
func (l *Loader) Load(ctx context.Context, blocks int) error {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Workers, 1))

	for i := range blocks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			placements := l.Generator.Block(i)
			placed := make([]Placed, len(placements))
			for k, p := range placements {
				placed[k] = Placed{ID: l.Store.Add(p.Object), Kind: p.Kind}
			}
			l.Route.setBlock(i, placed)
			log.Debug("block loaded", zap.Int("block", i), zap.Int("objects", len(placed)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading route: %w", err)
	}
	if err := ctx.Err(); err != nil && l.Route.Len() < blocks {
		return fmt.Errorf("loading route: %w", err)
	}
	log.Info("route loaded", zap.Int("blocks", blocks), zap.Int("objects", l.Store.Len()))
	return nil
}
