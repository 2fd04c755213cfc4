package modkit

import (
	"net/http"
	"testing"

	"focusguard/internal/modkit/httpkit"
)

func TestBuildDefaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.SwaggerOn {
		t.Fatalf("zero build = %+v", b)
	}
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("hooks must default to no-ops")
	}
	// no-op hooks should be callable
	if got := b.Subrouter(nil); got != nil {
		t.Fatal("default subrouter should pass through")
	}
	b.Register(nil)
}

func TestBuildAppliesOptions(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	type ports struct{ N int }
	called := false

	b := Build(
		WithName("tracker"),
		WithPrefix("/tracker"),
		WithMiddlewares(mw),
		WithPorts(ports{N: 7}),
		WithSwagger(true),
		WithRegister(func(httpkit.Router) { called = true }),
	)
	if b.Name != "tracker" || b.Prefix != "/tracker" || !b.SwaggerOn {
		t.Fatalf("built = %+v", b)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("mw len = %d", len(b.Mw))
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("ports = %+v", b.Ports)
	}
	b.Register(nil)
	if !called {
		t.Fatal("register hook not wired")
	}
}
