package save

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// sampleState builds a small populated state exercising the order
// envelope and every entity map
func sampleState() *state.GameState {
	st := state.NewGameState()
	st.Date = core.FromYMD(2205, 3, 14)
	st.HourOfDay = 7

	sys := &state.StarSystem{Id: st.AllocateId(), Name: "Haven"}
	st.Systems[sys.Id] = sys

	b := &state.Body{Id: st.AllocateId(), Name: "Haven II", SystemId: sys.Id, Type: state.BodyPlanet,
		MineralDeposits: map[string]float64{"Duranium": 120}}
	st.Bodies[b.Id] = b
	sys.Bodies = append(sys.Bodies, b.Id)

	f := &state.Faction{Id: st.AllocateId(), Name: "Terran Accord",
		DiscoveredSystems: []core.Id{sys.Id},
		KnownTechs:        []string{"alpha"}}
	st.Factions[f.Id] = f

	c := &state.Colony{Id: st.AllocateId(), Name: b.Name, FactionId: f.Id, BodyId: b.Id,
		PopulationMillions: 42,
		Installations:      map[string]int{"mine": 3},
		Minerals:           map[string]float64{"Duranium": 17.5}}
	st.Colonies[c.Id] = c

	ship := &state.Ship{Id: st.AllocateId(), Name: "Pathfinder", FactionId: f.Id,
		SystemId: sys.Id, DesignId: "scout",
		PositionMkm: core.Vec2{X: 4, Y: -2}, PrevPositionMkm: core.Vec2{X: 3, Y: -2},
		Hp: 10, Integrity: state.FullIntegrity(),
		MaintenanceCondition: 1, PowerPolicy: state.DefaultPowerPolicy()}
	st.Ships[ship.Id] = ship
	sys.Ships = append(sys.Ships, ship.Id)

	st.ShipOrders[ship.Id] = &state.ShipOrders{
		Queue: []state.Order{
			state.MoveToPoint{TargetMkm: core.Vec2{X: 100, Y: 0}},
			state.WaitDays{DaysRemaining: 2},
		},
	}
	return st
}

func encodeSample(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(sampleState(), &buf))
	return buf.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := encodeSample(t)
	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	want, err := Marshal(sampleState())
	require.NoError(t, err)
	gotJSON, err := Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(gotJSON))

	// orders come back as concrete variants
	so := got.ShipOrders[5]
	require.NotNil(t, so)
	require.Len(t, so.Queue, 2)
	assert.Equal(t, state.MoveToPoint{TargetMkm: core.Vec2{X: 100, Y: 0}}, so.Queue[0])
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := encodeSample(t)
	data[0] ^= 0xFF

	_, err := Decode(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a save file")
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	data := encodeSample(t)
	data[4] = 99 // version field follows the magic

	_, err := Decode(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported save format version")
}

func TestDecodeRejectsDigestMismatch(t *testing.T) {
	data := encodeSample(t)
	data[16] ^= 0xFF // first byte of the stored blake3 digest

	_, err := Decode(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	data := encodeSample(t)
	_, err := Decode(bytes.NewReader(data[:len(data)-10]))
	assert.Error(t, err)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.n4x")
	require.NoError(t, WriteFile(path, sampleState()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.FromYMD(2205, 3, 14), got.Date)
	assert.Len(t, got.Ships, 1)

	// no temp file left behind
	assert.NoFileExists(t, path+".tmp")
}
