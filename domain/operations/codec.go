package operations

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire/replay-file form of an operation: a discriminating
// type tag plus the operation payload.
type Envelope struct {
	Type OperationType   `json:"type"`
	Op   json.RawMessage `json:"op"`
}

// Decode unmarshals the envelope payload into the operation value the tag
// names.
func (e Envelope) Decode() (Operation, error) {
	switch e.Type {
	case OperationTypeCreateGame:
		var op CreateGameOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypeUpdateGameMarkets:
		var op UpdateGameMarketsOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypeUpdateGameStartTime:
		var op UpdateGameStartTimeOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypeCancelGame:
		var op CancelGameOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypePostGameResults:
		var op PostGameResultsOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypePostBet:
		var op PostBetOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	case OperationTypeCancelPendingBets:
		var op CancelPendingBetsOperation
		if err := json.Unmarshal(e.Op, &op); err != nil {
			return nil, err
		}
		return op, nil
	}
	return nil, fmt.Errorf("unknown operation type %q", e.Type)
}

// Encode wraps an operation into its envelope form
func Encode(op Operation) (Envelope, error) {
	payload, err := json.Marshal(op)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal operation: %w", err)
	}
	return Envelope{Type: op.Type(), Op: payload}, nil
}
