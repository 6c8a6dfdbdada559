package codec

import (
	"context"

	"github.com/google/uuid"
)

// UUIDString returns a Codec that converts between canonical UUID strings and uuid.UUID.
func UUIDString() Codec[string, uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	id, err := uuid.Parse(a)
	if err != nil {
		return uuid.Nil, formatIssue("uuid", err)
	}
	return id, nil
}

func (uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) {
	return b.String(), nil
}
