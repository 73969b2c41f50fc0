package services

import "context"

// ClientMeta describes the caller of a request. It is best-effort and
// untrusted: both fields come straight from the client.
type ClientMeta struct {
	RequestID string
	UserAgent string
	IPAddress string
}

type clientMetaKey struct{}

// WithClientMeta returns a copy of ctx carrying meta.
func WithClientMeta(ctx context.Context, meta ClientMeta) context.Context {
	return context.WithValue(ctx, clientMetaKey{}, meta)
}

// ClientMetaFrom returns the metadata stored by WithClientMeta, or the zero
// value when there is none.
func ClientMetaFrom(ctx context.Context) ClientMeta {
	meta, _ := ctx.Value(clientMetaKey{}).(ClientMeta)
	return meta
}
