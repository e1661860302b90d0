package world

import (
	"testing"

	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/protocol"
)

func sampleState() protocol.StateMsg {
	return protocol.StateMsg{
		Type:            protocol.TypeState,
		ProtocolVersion: protocol.Version,
		Tick:            7,
		CellSize:        20,
		GameWidth:       10,
		GameHeight:      8,
		Trains: map[string]protocol.TrainWire{
			"bot": {Position: [2]int{40, 60}, Direction: [2]int{1, 0}, Wagons: [][2]int{{20, 60}}, Score: 2, Alive: true},
		},
		Passengers:   []protocol.PassengerWire{{Position: [2]int{100, 100}, Value: 3}},
		DeliveryZone: &protocol.DeliveryZoneWire{Position: [2]int{120, 40}, Width: 40, Height: 20},
	}
}

func TestZeroViewNotReady(t *testing.T) {
	var v *View
	if v.Ready() {
		t.Fatalf("nil view must not be ready")
	}
	if (&View{}).Ready() {
		t.Fatalf("empty view must not be ready")
	}
	if _, ok := v.Train("bot"); ok {
		t.Fatalf("nil view has no trains")
	}
}

func TestFromState(t *testing.T) {
	v := FromState(sampleState())
	if !v.Ready() {
		t.Fatalf("expected ready view")
	}
	tr, ok := v.Train("bot")
	if !ok {
		t.Fatalf("missing own train")
	}
	if tr.Direction != move.Right {
		t.Fatalf("direction = %v, want RIGHT", tr.Direction)
	}
	if tr.Position != (Vec2{X: 40, Y: 60}) || len(tr.Wagons) != 1 || !tr.Alive {
		t.Fatalf("unexpected train: %+v", tr)
	}
	if got := v.Cell(tr.Position); got != (Vec2{X: 2, Y: 3}) {
		t.Fatalf("Cell = %+v", got)
	}
	if len(v.Passengers) != 1 || v.Passengers[0].Value != 3 {
		t.Fatalf("unexpected passengers: %+v", v.Passengers)
	}
}

func TestPartialStateNotReady(t *testing.T) {
	m := sampleState()
	m.DeliveryZone = nil
	if FromState(m).Ready() {
		t.Fatalf("view without delivery zone must not be ready")
	}
	m = sampleState()
	m.Passengers = nil
	if FromState(m).Ready() {
		t.Fatalf("view without passengers must not be ready")
	}
	m = sampleState()
	m.Passengers = []protocol.PassengerWire{}
	if !FromState(m).Ready() {
		t.Fatalf("empty passenger list is still populated")
	}
}

func TestDeliveryCells(t *testing.T) {
	v := FromState(sampleState())
	cells := v.DeliveryCells()
	want := []Vec2{{6, 2}, {7, 2}}
	if len(cells) != len(want) {
		t.Fatalf("cells = %+v, want %+v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cells[%d] = %+v, want %+v", i, cells[i], want[i])
		}
	}
	if !v.DeliveryZone.Contains(Vec2{X: 125, Y: 45}) || v.DeliveryZone.Contains(Vec2{X: 160, Y: 45}) {
		t.Fatalf("Contains mismatch")
	}
}

func TestInBounds(t *testing.T) {
	v := FromState(sampleState())
	if !v.InBounds(Vec2{0, 0}) || !v.InBounds(Vec2{9, 7}) {
		t.Fatalf("corners should be in bounds")
	}
	if v.InBounds(Vec2{10, 0}) || v.InBounds(Vec2{0, -1}) {
		t.Fatalf("outside cells reported in bounds")
	}
}

func TestCellFloorsNegativePixels(t *testing.T) {
	v := FromState(sampleState())
	cases := []struct {
		p    Vec2
		want Vec2
	}{
		{Vec2{X: -5, Y: 0}, Vec2{X: -1, Y: 0}},
		{Vec2{X: -20, Y: -21}, Vec2{X: -1, Y: -2}},
		{Vec2{X: 19, Y: 20}, Vec2{X: 0, Y: 1}},
	}
	for _, c := range cases {
		got := v.Cell(c.p)
		if got != c.want {
			t.Fatalf("Cell(%+v) = %+v, want %+v", c.p, got, c.want)
		}
	}
	if v.InBounds(v.Cell(Vec2{X: -5, Y: 10})) {
		t.Fatalf("a pixel left of the grid mapped inside it")
	}
}

func TestDeliveryCellsCoverPartialCells(t *testing.T) {
	v := FromState(sampleState())
	v.DeliveryZone = &DeliveryZone{Position: Vec2{X: 30, Y: 20}, Width: 25, Height: 10}
	want := []Vec2{{1, 1}, {2, 1}}
	cells := v.DeliveryCells()
	if len(cells) != len(want) {
		t.Fatalf("cells = %+v, want %+v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cells[%d] = %+v, want %+v", i, cells[i], want[i])
		}
	}

	v.DeliveryZone = &DeliveryZone{Position: Vec2{X: 30, Y: 20}}
	if got := v.DeliveryCells(); len(got) != 0 {
		t.Fatalf("empty zone covers %+v", got)
	}
}
