package state

import (
	"encoding/json"
	"fmt"
)

// orderEnvelope wraps an order with its kind tag for serialization
type orderEnvelope struct {
	Kind    OrderKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func marshalOrders(orders []Order) ([]orderEnvelope, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	out := make([]orderEnvelope, 0, len(orders))
	for _, o := range orders {
		raw, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		out = append(out, orderEnvelope{Kind: o.Kind(), Payload: raw})
	}
	return out, nil
}

func unmarshalOrders(envs []orderEnvelope) ([]Order, error) {
	if len(envs) == 0 {
		return nil, nil
	}
	out := make([]Order, 0, len(envs))
	for _, env := range envs {
		o, err := decodeOrder(env)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func decodeOrder(env orderEnvelope) (Order, error) {
	switch env.Kind {
	case KindWaitDays:
		var o WaitDays
		return o, json.Unmarshal(env.Payload, &o)
	case KindMoveToPoint:
		var o MoveToPoint
		return o, json.Unmarshal(env.Payload, &o)
	case KindMoveToBody:
		var o MoveToBody
		return o, json.Unmarshal(env.Payload, &o)
	case KindTravelViaJump:
		var o TravelViaJump
		return o, json.Unmarshal(env.Payload, &o)
	case KindAttackShip:
		var o AttackShip
		return o, json.Unmarshal(env.Payload, &o)
	case KindLoadMineral:
		var o LoadMineral
		return o, json.Unmarshal(env.Payload, &o)
	case KindUnloadMineral:
		var o UnloadMineral
		return o, json.Unmarshal(env.Payload, &o)
	case KindColonizeBody:
		var o ColonizeBody
		return o, json.Unmarshal(env.Payload, &o)
	case KindInvestigateAnomaly:
		var o InvestigateAnomaly
		return o, json.Unmarshal(env.Payload, &o)
	case KindSurveyJumpPoint:
		var o SurveyJumpPoint
		return o, json.Unmarshal(env.Payload, &o)
	case KindLoadTroops:
		var o LoadTroops
		return o, json.Unmarshal(env.Payload, &o)
	case KindUnloadTroops:
		var o UnloadTroops
		return o, json.Unmarshal(env.Payload, &o)
	case KindInvadeColony:
		var o InvadeColony
		return o, json.Unmarshal(env.Payload, &o)
	default:
		return nil, fmt.Errorf("unknown order kind %q", env.Kind)
	}
}

type shipOrdersJSON struct {
	Queue                []orderEnvelope `json:"queue,omitempty"`
	Repeat               bool            `json:"repeat,omitempty"`
	RepeatTemplate       []orderEnvelope `json:"repeat_template,omitempty"`
	RepeatCountRemaining int             `json:"repeat_count_remaining,omitempty"`
}

// MarshalJSON encodes each queued order with its kind tag
func (so ShipOrders) MarshalJSON() ([]byte, error) {
	queue, err := marshalOrders(so.Queue)
	if err != nil {
		return nil, err
	}
	tmpl, err := marshalOrders(so.RepeatTemplate)
	if err != nil {
		return nil, err
	}
	return json.Marshal(shipOrdersJSON{
		Queue:                queue,
		Repeat:               so.Repeat,
		RepeatTemplate:       tmpl,
		RepeatCountRemaining: so.RepeatCountRemaining,
	})
}

// UnmarshalJSON decodes kind-tagged orders back into concrete variants
func (so *ShipOrders) UnmarshalJSON(data []byte) error {
	var raw shipOrdersJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	queue, err := unmarshalOrders(raw.Queue)
	if err != nil {
		return err
	}
	tmpl, err := unmarshalOrders(raw.RepeatTemplate)
	if err != nil {
		return err
	}
	so.Queue = queue
	so.Repeat = raw.Repeat
	so.RepeatTemplate = tmpl
	so.RepeatCountRemaining = raw.RepeatCountRemaining
	return nil
}
