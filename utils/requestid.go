package utils

import "context"

type requestIDKey struct{}

// WithRequestID menyimpan id request masuk supaya panggilan ke backend memakai id yang sama.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
