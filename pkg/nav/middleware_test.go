package nav

import (
	"context"
	"testing"
)

func TestComposeMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(ctx context.Context, req *Request, next func() error) error {
			order = append(order, name)
			return next()
		})
	}

	req := &Request{RawPath: "/a"}
	err := ComposeMiddleware(context.Background(), req, []Middleware{mw("first"), mw("second")}, func() error {
		order = append(order, "handler")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "handler"}
	if !equalStrings(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(ctx context.Context, req *Request, next func() error) error {
			order = append(order, name)
			return next()
		})
	}

	chained := Chain(mw("a"), mw("b"))
	err := ComposeMiddleware(context.Background(), &Request{}, []Middleware{chained, mw("c")}, func() error {
		order = append(order, "handler")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "handler"}
	if !equalStrings(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestComposeMiddlewareEmpty(t *testing.T) {
	called := false
	err := ComposeMiddleware(context.Background(), &Request{}, nil, func() error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("handler called = %v, err = %v", called, err)
	}
}

func TestParseFallbackPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want FallbackPolicy
		ok   bool
	}{
		{"", FallbackReplace, true},
		{"replace", FallbackReplace, true},
		{"keep", FallbackKeepPath, true},
		{"redirect", FallbackReplace, false},
	}
	for _, tt := range tests {
		got, ok := ParseFallbackPolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFallbackPolicy(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
