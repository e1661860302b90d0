package world

import (
	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/protocol"
)

// Vec2 is a pixel position (or, after Cell, a grid cell).
type Vec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Train struct {
	Position  Vec2
	Direction move.Move
	Wagons    []Vec2
	Score     int
	Alive     bool
}

type Passenger struct {
	Position Vec2
	Value    int
}

// DeliveryZone is an axis-aligned rectangle in pixels.
type DeliveryZone struct {
	Position Vec2
	Width    int
	Height   int
}

func (z DeliveryZone) Contains(p Vec2) bool {
	return p.X >= z.Position.X && p.X < z.Position.X+z.Width &&
		p.Y >= z.Position.Y && p.Y < z.Position.Y+z.Height
}

// View is the latest snapshot of the game as seen by one client. A zero
// View is "not received yet"; a populated one is never mutated, only
// replaced by a fresh value.
type View struct {
	Tick         uint64
	CellSize     int
	GameWidth    int
	GameHeight   int
	Trains       map[string]Train
	Passengers   []Passenger
	DeliveryZone *DeliveryZone
}

// Ready reports whether every field of the snapshot is populated. Agents
// must not act on a view that is not ready.
func (v *View) Ready() bool {
	if v == nil {
		return false
	}
	return v.CellSize > 0 && v.GameWidth > 0 && v.GameHeight > 0 &&
		v.Trains != nil && v.Passengers != nil && v.DeliveryZone != nil
}

func (v *View) Train(nickname string) (Train, bool) {
	if v == nil {
		return Train{}, false
	}
	t, ok := v.Trains[nickname]
	return t, ok
}

// Cell converts a pixel position to grid coordinates. Negative pixels land
// in negative cells.
func (v *View) Cell(p Vec2) Vec2 {
	if v.CellSize <= 0 {
		return p
	}
	return Vec2{X: floorDiv(p.X, v.CellSize), Y: floorDiv(p.Y, v.CellSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (v *View) InBounds(cell Vec2) bool {
	return cell.X >= 0 && cell.Y >= 0 && cell.X < v.GameWidth && cell.Y < v.GameHeight
}

// DeliveryCells lists the grid cells the delivery zone touches, row by row.
// A cell only partly covered by the zone is included.
func (v *View) DeliveryCells() []Vec2 {
	if v.DeliveryZone == nil || v.CellSize <= 0 {
		return nil
	}
	z := *v.DeliveryZone
	if z.Width <= 0 || z.Height <= 0 {
		return nil
	}
	from := v.Cell(z.Position)
	to := v.Cell(Vec2{X: z.Position.X + z.Width - 1, Y: z.Position.Y + z.Height - 1})
	w := to.X - from.X + 1
	h := to.Y - from.Y + 1
	out := make([]Vec2, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, Vec2{X: from.X + x, Y: from.Y + y})
		}
	}
	return out
}

// FromState builds a view from a STATE message. The message is assumed
// complete; missing collections leave the view not ready.
func FromState(m protocol.StateMsg) *View {
	v := &View{
		Tick:       m.Tick,
		CellSize:   m.CellSize,
		GameWidth:  m.GameWidth,
		GameHeight: m.GameHeight,
	}
	if m.Trains != nil {
		v.Trains = make(map[string]Train, len(m.Trains))
		for name, tw := range m.Trains {
			t := Train{
				Position:  vec(tw.Position),
				Direction: move.FromVector(move.Vector(tw.Direction)),
				Score:     tw.Score,
				Alive:     tw.Alive,
			}
			if len(tw.Wagons) > 0 {
				t.Wagons = make([]Vec2, 0, len(tw.Wagons))
				for _, w := range tw.Wagons {
					t.Wagons = append(t.Wagons, vec(w))
				}
			}
			v.Trains[name] = t
		}
	}
	if m.Passengers != nil {
		v.Passengers = make([]Passenger, 0, len(m.Passengers))
		for _, p := range m.Passengers {
			v.Passengers = append(v.Passengers, Passenger{Position: vec(p.Position), Value: p.Value})
		}
	}
	if m.DeliveryZone != nil {
		v.DeliveryZone = &DeliveryZone{
			Position: vec(m.DeliveryZone.Position),
			Width:    m.DeliveryZone.Width,
			Height:   m.DeliveryZone.Height,
		}
	}
	return v
}

func vec(a [2]int) Vec2 { return Vec2{X: a[0], Y: a[1]} }
