package kv

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// Records are stored as plain JSON. The payloads are small and mostly
// strings already, so compression buys nothing over the debuggability of
// being able to read bucket contents directly.

func encode(ctx context.Context, msg interface{}) ([]byte, error) {
	_, span := trace.StartSpan(ctx, "CoordinatorDB.encode")
	defer span.End()

	if msg == nil || (reflect.ValueOf(msg).Kind() == reflect.Ptr && reflect.ValueOf(msg).IsNil()) {
		return nil, errors.New("cannot encode nil message")
	}
	return json.Marshal(msg)
}

func decode(ctx context.Context, data []byte, dst interface{}) error {
	_, span := trace.StartSpan(ctx, "CoordinatorDB.decode")
	defer span.End()

	if dst == nil || (reflect.ValueOf(dst).Kind() == reflect.Ptr && reflect.ValueOf(dst).IsNil()) {
		return errors.New("cannot decode into nil destination")
	}
	return json.Unmarshal(data, dst)
}
