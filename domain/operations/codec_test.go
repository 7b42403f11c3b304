package operations

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorebet/domain/entities"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	ops := []Operation{
		CreateGameOperation{
			UUID:             uuid.New(),
			Moderator:        "moderator",
			StartTime:        time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC),
			AutoResolveDelay: 12 * time.Hour,
			Markets: []entities.Market{
				{Kind: entities.MarketResultHome},
				{Kind: entities.MarketTotal, Threshold: 500},
			},
		},
		UpdateGameMarketsOperation{
			GameUUID:  uuid.New(),
			Moderator: "moderator",
			Markets:   []entities.Market{{Kind: entities.MarketResultHome}},
		},
		UpdateGameStartTimeOperation{
			GameUUID:  uuid.New(),
			Moderator: "moderator",
			StartTime: time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC),
		},
		CancelGameOperation{GameUUID: uuid.New(), Moderator: "moderator"},
		PostGameResultsOperation{
			GameUUID:  uuid.New(),
			Moderator: "moderator",
			Wincases:  []entities.Wincase{{Kind: entities.WincaseResultHomeYes}},
		},
		PostBetOperation{
			UUID:     uuid.New(),
			Better:   "alice",
			GameUUID: uuid.New(),
			Wincase:  entities.Wincase{Kind: entities.WincaseTotalOver, Threshold: 500},
			Odds:     entities.Odds{Numerator: 5, Denominator: 2},
			Stake:    100,
		},
		CancelPendingBetsOperation{Better: "alice", BetUUIDs: []uuid.UUID{uuid.New()}},
	}

	for _, op := range ops {
		t.Run(string(op.Type()), func(t *testing.T) {
			envelope, err := Encode(op)
			require.NoError(t, err)
			assert.Equal(t, op.Type(), envelope.Type)

			decoded, err := envelope.Decode()
			require.NoError(t, err)
			assert.Equal(t, op, decoded)
		})
	}
}

func TestEnvelopeDecodeUnknownType(t *testing.T) {
	_, err := Envelope{Type: "transfer", Op: []byte(`{}`)}.Decode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation type")
}

func TestEnvelopeDecodeMalformedPayload(t *testing.T) {
	_, err := Envelope{Type: OperationTypePostBet, Op: []byte(`{`)}.Decode()
	assert.Error(t, err)
}
