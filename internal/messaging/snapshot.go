package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pixil98/go-inventory/internal/host"
)

// SnapshotPublisher sends ledger snapshots as zstd compressed JSON.
type SnapshotPublisher struct {
	pub Publisher
	enc *zstd.Encoder
}

func NewSnapshotPublisher(pub Publisher) (*SnapshotPublisher, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &SnapshotPublisher{pub: pub, enc: enc}, nil
}

// EncodeSnapshot returns the wire form of s.
func (p *SnapshotPublisher) EncodeSnapshot(s host.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return p.enc.EncodeAll(raw, nil), nil
}

func (p *SnapshotPublisher) PublishSnapshot(_ context.Context, s host.Snapshot) error {
	data, err := p.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	return p.pub.Publish(SnapshotSubject(s.OwnerID), data)
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(data []byte) (host.Snapshot, error) {
	var s host.Snapshot

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return s, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return s, fmt.Errorf("decompressing snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return s, nil
}
