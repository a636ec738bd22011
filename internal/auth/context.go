package auth

import "context"

type ctxKey struct{}

func WithToken(ctx context.Context, tok Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, tok)
}

func TokenFrom(ctx context.Context) (Token, bool) {
	tok, ok := ctx.Value(ctxKey{}).(Token)
	return tok, ok
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	tok, ok := TokenFrom(ctx)
	return tok.Principal, ok
}
