// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway binds every client operation to a named, schema-described
// tool and provides the single invocation boundary: whatever happens inside
// a handler, the caller receives a JSON-serializable map, success or error
// envelope, never a raw panic.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pdiddy/patent-gateway/internal/analytics"
	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/patentsview"
	"github.com/pdiddy/patent-gateway/internal/ppubs"
	"github.com/pdiddy/patent-gateway/internal/uspto"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Param describes one tool parameter for the catalog and the agent host.
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"` // string, integer, number, boolean, array, object
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Handler executes one tool call. Returning an error is equivalent to
// returning an error envelope; the gateway converts.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool is one named callable exposed by the gateway.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler `json:"-" yaml:"-"`
}

// Clients are the upstream clients the tools delegate to.
type Clients struct {
	PPubs        *ppubs.Client
	ODP          *uspto.Client
	PTAB         *uspto.PTABClient
	OfficeAction *uspto.OfficeActionClient
	Litigation   *uspto.LitigationClient
	Citations    *uspto.CitationClient
	PatentsView  *patentsview.Client
	Analytics    *analytics.Store
}

// Gateway is the tool registry and invocation surface.
type Gateway struct {
	tools map[string]Tool
	trunc types.TruncationConfig
	log   *slog.Logger
}

// New builds the gateway and registers every tool whose client is present.
// Nil clients leave their tool family unregistered, so a deployment without
// an analytics database simply exposes fewer tools.
func New(c Clients, trunc types.TruncationConfig, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		tools: make(map[string]Tool),
		trunc: trunc,
		log:   logger,
	}
	if c.PPubs != nil {
		g.registerPPubs(c.PPubs)
	}
	if c.ODP != nil {
		g.registerODP(c.ODP)
	}
	if c.PTAB != nil {
		g.registerPTAB(c.PTAB)
	}
	if c.OfficeAction != nil {
		g.registerOfficeActions(c.OfficeAction)
	}
	if c.Litigation != nil {
		g.registerLitigation(c.Litigation)
	}
	if c.Citations != nil {
		g.registerCitations(c.Citations)
	}
	if c.PatentsView != nil {
		g.registerPatentsView(c.PatentsView)
	}
	if c.Analytics != nil {
		g.registerAnalytics(c.Analytics)
	}
	return g
}

func (g *Gateway) register(t Tool) {
	if _, exists := g.tools[t.Name]; exists {
		panic(fmt.Sprintf("duplicate tool registration: %s", t.Name))
	}
	g.tools[t.Name] = t
}

// Tools returns every registered tool sorted by name.
func (g *Gateway) Tools() []Tool {
	names := make([]string, 0, len(g.tools))
	for name := range g.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, g.tools[name])
	}
	return out
}

// Lookup returns one tool by name.
func (g *Gateway) Lookup(name string) (Tool, bool) {
	t, ok := g.tools[name]
	return t, ok
}

// Invoke runs a tool by name. It never panics and never returns Go errors:
// the result is always a JSON-serializable map carrying either the tool's
// success payload (truncated when oversized) or an error envelope.
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("tool panicked", "tool", name, "panic", r)
			result = envelope.New(fmt.Sprintf("Internal error in tool %s: %v", name, r), 0).Envelope()
		}
	}()

	t, ok := g.tools[name]
	if !ok {
		return envelope.NotFound("Tool", name).Envelope()
	}
	// Defaults are filled into a copy so the caller's map stays untouched.
	merged := make(map[string]any, len(args)+len(t.Params))
	for k, v := range args {
		merged[k] = v
	}
	args = merged

	for _, p := range t.Params {
		if _, present := args[p.Name]; present {
			continue
		}
		if p.Required {
			return envelope.Validation(
				fmt.Sprintf("Missing required parameter: %s", p.Name), p.Name).Envelope()
		}
		if p.Default != nil {
			args[p.Name] = p.Default
		}
	}

	g.log.Info("invoking tool", "tool", name)
	out, err := t.Handler(ctx, args)
	if err != nil {
		return envelope.AsEnvelope(err)
	}
	if envelope.IsError(out) {
		return out
	}
	return envelope.CheckAndTruncate(out, g.trunc)
}
