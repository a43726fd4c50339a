package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
)

func TestShipOrdersRoundTrip(t *testing.T) {
	orig := ShipOrders{
		Queue: []Order{
			WaitDays{DaysRemaining: 1.5},
			MoveToPoint{TargetMkm: core.Vec2{X: 12.5, Y: -3}},
			TravelViaJump{JumpPointId: 7},
			AttackShip{TargetShipId: 9, HasLastKnown: true,
				LastKnownSystemId: 2, LastKnownPositionMkm: core.Vec2{X: 1, Y: 2}, LastKnownDay: 40},
			LoadMineral{ColonyId: 3, Mineral: "Duranium", Tons: 50},
			ColonizeBody{BodyId: 11},
			SurveyJumpPoint{JumpPointId: 7, TransitWhenDone: true},
			LoadTroops{ColonyId: 3, Strength: 25},
			UnloadTroops{ColonyId: 5},
			InvadeColony{ColonyId: 6},
		},
		Repeat:               true,
		RepeatTemplate:       []Order{MoveToBody{BodyId: 4}, UnloadMineral{ColonyId: 3}},
		RepeatCountRemaining: -1,
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got ShipOrders
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, orig, got)
}

func TestEmptyShipOrdersRoundTrip(t *testing.T) {
	data, err := json.Marshal(ShipOrders{})
	require.NoError(t, err)

	var got ShipOrders
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Empty(t, got.Queue)
	assert.False(t, got.Repeat)
}

func TestUnknownOrderKindRejected(t *testing.T) {
	blob := []byte(`{"queue":[{"kind":"warp_scramble","payload":{}}]}`)

	var got ShipOrders
	err := json.Unmarshal(blob, &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order kind")
}
