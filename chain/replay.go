package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"scorebet/domain/operations"
)

// Block is the replay-file form of one block: a head time plus the
// operations applied at it.
type Block struct {
	Time       time.Time             `json:"time"`
	Operations []operations.Envelope `json:"operations"`
}

// ReadBlocks decodes a JSON replay stream, an array of blocks
func ReadBlocks(r io.Reader) ([]Block, error) {
	var blocks []Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("failed to decode replay file: %w", err)
	}
	return blocks, nil
}

// Replay applies a sequence of blocks in order. Replaying the same blocks
// against a fresh store yields bit-identical state on every node.
func (p *Processor) Replay(ctx context.Context, blocks []Block) error {
	for i, block := range blocks {
		ops := make([]operations.Operation, 0, len(block.Operations))
		for _, envelope := range block.Operations {
			op, err := envelope.Decode()
			if err != nil {
				return fmt.Errorf("failed to decode operation in block %d: %w", i, err)
			}
			ops = append(ops, op)
		}
		if err := p.ProcessBlock(ctx, block.Time, ops); err != nil {
			return fmt.Errorf("failed to process block %d: %w", i, err)
		}
	}
	log.WithField("blocks", len(blocks)).Info("replay complete")
	return nil
}
