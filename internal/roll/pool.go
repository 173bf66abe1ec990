package roll

import (
	"fmt"

	"github.com/Faultbox/tavern-dice/internal/dice"
	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/pkg/geometry"
)

// Pool keeps die instances per type so repeated rolls reuse bodies.
// Released dice leave the world with their motion zeroed.
type Pool struct {
	cfg      Config
	world    physics.World
	registry *dice.Registry

	free   map[dice.Type][]*Die
	active []*Die
	nextID int
}

// NewPool creates an empty pool.
func NewPool(cfg Config, world physics.World, registry *dice.Registry) *Pool {
	return &Pool{
		cfg:      cfg,
		world:    world,
		registry: registry,
		free:     make(map[dice.Type][]*Die),
	}
}

// Acquire returns an inactive die of type t, constructing one if none is
// free, and adds its body to the world.
func (p *Pool) Acquire(t dice.Type) (*Die, error) {
	var d *Die
	if free := p.free[t]; len(free) > 0 {
		d = free[len(free)-1]
		p.free[t] = free[:len(free)-1]
	} else {
		var err error
		if d, err = p.construct(t); err != nil {
			return nil, err
		}
	}

	d.Body.ResetMotion()
	p.world.AddBody(d.Body)
	d.active = true
	p.active = append(p.active, d)
	return d, nil
}

func (p *Pool) construct(t dice.Type) (*Die, error) {
	// A missing table is not fatal; the die is read at random instead.
	table, _ := p.registry.Table(t)

	bc := p.cfg.body(t.Props().Mass)
	bc.Hull = geometry.UniqueVertices(p.registry.Mesh(t), geometry.VertexEpsilon)
	body, err := p.world.NewBody(bc)
	if err != nil {
		return nil, fmt.Errorf("construct %v: %w", t, err)
	}

	p.nextID++
	return &Die{ID: p.nextID, Type: t, Body: body, Table: table}, nil
}

// ReleaseAll removes every active die from the world and returns it to the
// pool.
func (p *Pool) ReleaseAll() {
	for _, d := range p.active {
		p.world.RemoveBody(d.Body)
		d.Body.ResetMotion()
		d.active = false
		p.free[d.Type] = append(p.free[d.Type], d)
	}
	p.active = p.active[:0]
}

// Active returns the dice currently on the board.
func (p *Pool) Active() []*Die {
	return p.active
}

// Size returns how many dice have ever been constructed.
func (p *Pool) Size() int {
	return p.nextID
}
