// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Request carries the free-form arguments of one tool invocation. Tool
// parameter schemas vary per tool, so the arguments travel as a single
// object the boundary validates against the tool's declared parameters.
type Request struct {
	Args map[string]any `json:"args"`
}

// ADKTools exposes every registered tool as an ADK function tool, so the
// gateway can back an agent loop directly.
func (g *Gateway) ADKTools() ([]tool.Tool, error) {
	var out []tool.Tool
	for _, t := range g.Tools() {
		name := t.Name
		adkTool, err := functiontool.New(functiontool.Config{
			Name:        name,
			Description: t.Description,
		}, func(_ tool.Context, input Request) (map[string]any, error) {
			return g.Invoke(context.Background(), name, input.Args), nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, adkTool)
	}
	return out, nil
}
