package securestore

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var metaBucket = []byte("meta")

// meta is the per-container header kept in the meta bucket under the
// container name. The keyset is only ever stored wrapped.
type meta struct {
	StoreID   uuid.UUID
	KeyID     string
	Wrapped   []byte
	CreatedAt time.Time
}

func (m meta) marshal() ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"store_id":   m.StoreID.String(),
		"key_id":     m.KeyID,
		"keyset":     base64.StdEncoding.EncodeToString(m.Wrapped),
		"created_at": m.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("building meta: %w", err)
	}
	return proto.Marshal(s)
}

func unmarshalMeta(raw []byte) (meta, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(raw, &s); err != nil {
		return meta{}, fmt.Errorf("%w: meta: %v", ErrCorruptRecord, err)
	}
	fields := s.GetFields()

	id, err := uuid.Parse(fields["store_id"].GetStringValue())
	if err != nil {
		return meta{}, fmt.Errorf("%w: meta store_id: %v", ErrCorruptRecord, err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(fields["keyset"].GetStringValue())
	if err != nil {
		return meta{}, fmt.Errorf("%w: meta keyset: %v", ErrCorruptRecord, err)
	}
	created, _ := time.Parse(time.RFC3339, fields["created_at"].GetStringValue())

	return meta{
		StoreID:   id,
		KeyID:     fields["key_id"].GetStringValue(),
		Wrapped:   wrapped,
		CreatedAt: created,
	}, nil
}
