// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"

	"github.com/pdiddy/patent-gateway/internal/analytics"
	"github.com/pdiddy/patent-gateway/internal/envelope"
)

func (g *Gateway) registerAnalytics(s *analytics.Store) {
	limitParam := []Param{
		{Name: "limit", Type: "integer", Description: "Maximum rows to return", Default: 25},
	}
	wrapRows := func(fn func(context.Context, map[string]any) ([]map[string]any, error)) Handler {
		return func(ctx context.Context, args map[string]any) (map[string]any, error) {
			rows, err := fn(ctx, args)
			if err != nil {
				return nil, err
			}
			return envelope.FromAnalytics(rows, 0, intArg(args, "limit")), nil
		}
	}

	g.register(Tool{
		Name:        "analytics_search_patents",
		Description: "Keyword search over the local publication corpus",
		Params: append([]Param{
			{Name: "keyword", Type: "string", Description: "Keywords matched against title and abstract", Required: true},
		}, limitParam...),
		Handler: wrapRows(func(ctx context.Context, args map[string]any) ([]map[string]any, error) {
			return s.SearchPatents(ctx, strArg(args, "keyword"), intArg(args, "limit"))
		}),
	})
	g.register(Tool{
		Name:        "analytics_get_patent",
		Description: "Get one publication record from the local corpus",
		Params: []Param{
			{Name: "publication_number", Type: "string", Description: "Publication number, e.g. US-9999999-B2", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return s.GetPatentByNumber(ctx, strArg(args, "publication_number"))
		},
	})
	g.register(Tool{
		Name:        "analytics_get_claims",
		Description: "Get the claims text of one local publication",
		Params: []Param{
			{Name: "publication_number", Type: "string", Description: "Publication number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return s.GetPatentClaims(ctx, strArg(args, "publication_number"))
		},
	})
	g.register(Tool{
		Name:        "analytics_get_description",
		Description: "Get the description text of one local publication",
		Params: []Param{
			{Name: "publication_number", Type: "string", Description: "Publication number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return s.GetPatentDescription(ctx, strArg(args, "publication_number"))
		},
	})
	g.register(Tool{
		Name:        "analytics_search_inventor",
		Description: "Find local publications by inventor name",
		Params: append([]Param{
			{Name: "name", Type: "string", Description: "Inventor name fragment", Required: true},
		}, limitParam...),
		Handler: wrapRows(func(ctx context.Context, args map[string]any) ([]map[string]any, error) {
			return s.SearchByInventor(ctx, strArg(args, "name"), intArg(args, "limit"))
		}),
	})
	g.register(Tool{
		Name:        "analytics_search_assignee",
		Description: "Find local publications by assignee name",
		Params: append([]Param{
			{Name: "name", Type: "string", Description: "Assignee name fragment", Required: true},
		}, limitParam...),
		Handler: wrapRows(func(ctx context.Context, args map[string]any) ([]map[string]any, error) {
			return s.SearchByAssignee(ctx, strArg(args, "name"), intArg(args, "limit"))
		}),
	})
	g.register(Tool{
		Name:        "analytics_search_cpc",
		Description: "Find local publications carrying a CPC code",
		Params: append([]Param{
			{Name: "cpc_code", Type: "string", Description: "CPC code prefix, e.g. G06N", Required: true},
		}, limitParam...),
		Handler: wrapRows(func(ctx context.Context, args map[string]any) ([]map[string]any, error) {
			return s.SearchByCPC(ctx, strArg(args, "cpc_code"), intArg(args, "limit"))
		}),
	})
}
