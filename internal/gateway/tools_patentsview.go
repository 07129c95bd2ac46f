// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"encoding/json"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/patentsview"
)

func pvOptions(args map[string]any) patentsview.Options {
	return patentsview.Options{
		Size:             intArg(args, "size"),
		After:            strArg(args, "after"),
		ExcludeWithdrawn: boolArg(args, "exclude_withdrawn"),
	}
}

func pvPagingParams() []Param {
	return []Param{
		{Name: "size", Type: "integer", Description: "Page size, capped at 1000", Default: 100},
		{Name: "after", Type: "string", Description: "Pagination cursor from the previous page"},
		{Name: "exclude_withdrawn", Type: "boolean", Description: "Drop withdrawn patents", Default: false},
	}
}

// pvQueryArg accepts either a structured object or a JSON string for the
// PatentsView "q" parameter.
func pvQueryArg(args map[string]any, key string) (map[string]any, error) {
	switch v := args[key].(type) {
	case map[string]any:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		var q map[string]any
		if err := json.Unmarshal([]byte(v), &q); err != nil {
			return nil, envelope.Validation("query must be a JSON object: "+err.Error(), key)
		}
		return q, nil
	case nil:
		return nil, nil
	default:
		return nil, envelope.Validation("query must be a JSON object", key)
	}
}

func pvSortArg(args map[string]any) []map[string]string {
	var sort []map[string]string
	for _, m := range mapListArg(args, "sort") {
		entry := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				entry[k] = s
			}
		}
		if len(entry) > 0 {
			sort = append(sort, entry)
		}
	}
	return sort
}

func (g *Gateway) registerPatentsView(c *patentsview.Client) {
	wrap := func(fn func(context.Context, map[string]any) (map[string]any, error)) Handler {
		return func(ctx context.Context, args map[string]any) (map[string]any, error) {
			raw, err := fn(ctx, args)
			if err != nil {
				return nil, err
			}
			return envelope.FromPatentsView(raw, 0, intArg(args, "size")), nil
		}
	}

	g.register(Tool{
		Name:        "pv_search_patents",
		Description: "Search granted patents with a PatentsView query object",
		Params: append([]Param{
			{Name: "q", Type: "object", Description: "PatentsView query object, e.g. {\"_text_any\": {\"patent_title\": \"drone\"}}", Required: true},
			{Name: "fields", Type: "array", Description: "Response field names"},
			{Name: "sort", Type: "array", Description: "Sort objects [{field: direction}]"},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			q, err := pvQueryArg(args, "q")
			if err != nil {
				return nil, err
			}
			return c.SearchPatents(ctx, q, strListArg(args, "fields"), pvSortArg(args), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_get_patent",
		Description: "Get one granted patent by number",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatent(ctx, strArg(args, "patent_number"))
		},
	})
	g.register(Tool{
		Name:        "pv_search_text",
		Description: "Full-text search over patent titles and abstracts",
		Params: append([]Param{
			{Name: "text", Type: "string", Description: "Search text", Required: true},
			{Name: "mode", Type: "string", Description: "any, all, or phrase", Default: "any"},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			mode := patentsview.TextAny
			switch strArg(args, "mode") {
			case "all":
				mode = patentsview.TextAll
			case "phrase":
				mode = patentsview.TextPhrase
			}
			return c.SearchByText(ctx, strArg(args, "text"), mode, pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_search_assignees",
		Description: "Search assignee organizations by name",
		Params: append([]Param{
			{Name: "organization", Type: "string", Description: "Organization name fragment", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchAssignees(ctx, strArg(args, "organization"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_get_assignee",
		Description: "Get one assignee by identifier",
		Params: []Param{
			{Name: "assignee_id", Type: "string", Description: "Assignee identifier", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetAssignee(ctx, strArg(args, "assignee_id"))
		},
	})
	g.register(Tool{
		Name:        "pv_search_inventors",
		Description: "Search inventors by first and/or last name",
		Params: append([]Param{
			{Name: "first_name", Type: "string", Description: "Inventor first name fragment"},
			{Name: "last_name", Type: "string", Description: "Inventor last name fragment"},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchInventors(ctx, strArg(args, "first_name"), strArg(args, "last_name"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_get_inventor",
		Description: "Get one inventor by identifier",
		Params: []Param{
			{Name: "inventor_id", Type: "string", Description: "Inventor identifier", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetInventor(ctx, strArg(args, "inventor_id"))
		},
	})
	g.register(Tool{
		Name:        "pv_search_attorneys",
		Description: "Search attorney organizations by name",
		Params: append([]Param{
			{Name: "organization", Type: "string", Description: "Organization name fragment", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchAttorneys(ctx, strArg(args, "organization"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_get_claims",
		Description: "Get the full claim text of one patent, in claim order",
		Params: append([]Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentClaims(ctx, strArg(args, "patent_number"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_get_summary",
		Description: "Get the brief summary text of one patent",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentSummary(ctx, strArg(args, "patent_number"))
		},
	})
	g.register(Tool{
		Name:        "pv_get_description",
		Description: "Get the detailed description text of one patent",
		Params: append([]Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentDescription(ctx, strArg(args, "patent_number"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_search_cpc",
		Description: "Search patents by CPC classification group",
		Params: append([]Param{
			{Name: "cpc_group", Type: "string", Description: "CPC group identifier, e.g. G06N3/08", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchByCPC(ctx, strArg(args, "cpc_group"), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_cpc_class",
		Description: "Look up one CPC class definition",
		Params: []Param{
			{Name: "class_id", Type: "string", Description: "CPC class identifier, e.g. G06N", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.LookupCPCClass(ctx, strArg(args, "class_id"))
		},
	})
	g.register(Tool{
		Name:        "pv_cpc_group",
		Description: "Look up one CPC group definition",
		Params: []Param{
			{Name: "group_id", Type: "string", Description: "CPC group identifier", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.LookupCPCGroup(ctx, strArg(args, "group_id"))
		},
	})
	g.register(Tool{
		Name:        "pv_search_publications",
		Description: "Search pre-grant publications with a PatentsView query object",
		Params: append([]Param{
			{Name: "q", Type: "object", Description: "PatentsView query object", Required: true},
			{Name: "fields", Type: "array", Description: "Response field names"},
			{Name: "sort", Type: "array", Description: "Sort objects [{field: direction}]"},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			q, err := pvQueryArg(args, "q")
			if err != nil {
				return nil, err
			}
			return c.SearchPublications(ctx, q, strListArg(args, "fields"), pvSortArg(args), pvOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "pv_foreign_citations",
		Description: "Get the foreign prior-art citations of one patent",
		Params: append([]Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		}, pvPagingParams()...),
		Handler: wrap(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetForeignCitations(ctx, strArg(args, "patent_number"), pvOptions(args))
		}),
	})
}
