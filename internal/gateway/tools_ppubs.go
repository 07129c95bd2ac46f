// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/ppubs"
	"github.com/pdiddy/patent-gateway/internal/validate"
)

func searchParams() []Param {
	return []Param{
		{Name: "query", Type: "string", Description: "Full-text query in Patent Public Search syntax", Required: true},
		{Name: "start", Type: "integer", Description: "Result offset", Default: 0},
		{Name: "limit", Type: "integer", Description: "Maximum results per page (capped at 500)", Default: ppubs.DefaultLimit},
		{Name: "sort", Type: "string", Description: "Sort order", Default: ppubs.SortDateDesc},
		{Name: "operator", Type: "string", Description: "Default operator between terms: OR or AND", Default: "OR"},
		{Name: "plurals", Type: "boolean", Description: "Expand plural forms", Default: true},
		{Name: "british_equivalents", Type: "boolean", Description: "Expand British spellings", Default: true},
	}
}

func queryOptions(args map[string]any) ppubs.QueryOptions {
	opts := ppubs.DefaultQueryOptions(strArg(args, "query"))
	opts.Start = intArg(args, "start")
	opts.Limit = intArg(args, "limit")
	if s := strArg(args, "sort"); s != "" {
		opts.Sort = s
	}
	if op := strArg(args, "operator"); op != "" {
		opts.Operator = op
	}
	opts.ExpandPlurals = boolArg(args, "plurals")
	opts.BritishEquivalents = boolArg(args, "british_equivalents")
	return opts
}

func (g *Gateway) registerPPubs(c *ppubs.Client) {
	g.register(Tool{
		Name:        "ppubs_search_patents",
		Description: "Full-text search over granted patents, published applications, and OCR text on USPTO Public Search",
		Params: append(searchParams(),
			Param{Name: "sources", Type: "array", Description: "Source collections: USPAT, US-PGPUB, USOCR (default all)"}),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			if _, err := validate.Query(strArg(args, "query")); err != nil {
				return nil, err
			}
			opts := queryOptions(args)
			if sources := strListArg(args, "sources"); len(sources) > 0 {
				for _, s := range sources {
					if _, err := validate.SourceType(s); err != nil {
						return nil, err
					}
				}
				opts.Sources = sources
			}
			raw, err := c.RunQuery(ctx, opts)
			if err != nil {
				return nil, err
			}
			return envelope.FromPpubs(raw, opts.Start, opts.Limit), nil
		},
	})

	g.register(Tool{
		Name:        "ppubs_search_applications",
		Description: "Full-text search restricted to published patent applications",
		Params:      searchParams(),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			if _, err := validate.Query(strArg(args, "query")); err != nil {
				return nil, err
			}
			opts := queryOptions(args)
			opts.Sources = []string{ppubs.SourcePublishedApplications}
			raw, err := c.RunQuery(ctx, opts)
			if err != nil {
				return nil, err
			}
			return envelope.FromPpubs(raw, opts.Start, opts.Limit), nil
		},
	})

	g.register(Tool{
		Name:        "ppubs_get_full_document",
		Description: "Fetch the full highlighted text of one document by GUID",
		Params: []Param{
			{Name: "guid", Type: "string", Description: "Document GUID, e.g. US-9876543-B2", Required: true},
			{Name: "source", Type: "string", Description: "Source collection", Default: ppubs.SourceGrantedPatents},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			guid, err := validate.GUID(strArg(args, "guid"))
			if err != nil {
				return nil, err
			}
			source, err := validate.SourceType(strArg(args, "source"))
			if err != nil {
				return nil, err
			}
			return c.GetDocument(ctx, guid, source)
		},
	})

	g.register(Tool{
		Name:        "ppubs_get_patent_by_number",
		Description: "Locate one granted patent by number",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number, e.g. 7654321", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			num, err := validate.PatentNumber(strArg(args, "patent_number"))
			if err != nil {
				return nil, err
			}
			return c.FindPatentByNumber(ctx, num)
		},
	})

	g.register(Tool{
		Name:        "ppubs_download_patent_pdf",
		Description: "Generate and download the PDF image of a granted patent, returned base64-encoded",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number, e.g. 7654321", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			num, err := validate.PatentNumber(strArg(args, "patent_number"))
			if err != nil {
				return nil, err
			}
			doc, err := c.FindPatentByNumber(ctx, num)
			if err != nil {
				return nil, err
			}
			guid, _ := doc["guid"].(string)
			docType, _ := doc["type"].(string)
			location, pages := imageInfo(doc)
			if guid == "" || location == "" || pages <= 0 {
				return nil, envelope.New("No image data available for patent "+num, 0)
			}
			return c.DownloadImage(ctx, guid, docType, location, pages)
		},
	})
}

// imageInfo extracts the image location and page count from a search hit.
// The portal uses two field layouts; the flat one wins when both appear.
func imageInfo(doc map[string]any) (string, int) {
	location, _ := doc["imageLocation"].(string)
	pages := numField(doc["pageCount"])
	if location != "" && pages > 0 {
		return location, pages
	}
	if structure, ok := doc["document_structure"].(map[string]any); ok {
		if location == "" {
			location, _ = structure["image_location"].(string)
		}
		if pages <= 0 {
			pages = numField(structure["page_count"])
		}
	}
	return location, pages
}

func numField(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
