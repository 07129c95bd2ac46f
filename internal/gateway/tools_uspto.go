// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/uspto"
)

func appNumParam() []Param {
	return []Param{
		{Name: "app_num", Type: "string", Description: "U.S. patent application number, e.g. 14412875", Required: true},
	}
}

func pagingParams(defaultLimit int) []Param {
	return []Param{
		{Name: "offset", Type: "integer", Description: "Records to skip", Default: 0},
		{Name: "limit", Type: "integer", Description: "Maximum records to return", Default: defaultLimit},
	}
}

func searchOptions(args map[string]any) uspto.SearchOptions {
	return uspto.SearchOptions{
		Q:            strArg(args, "q"),
		Sort:         strArg(args, "sort"),
		Offset:       intArg(args, "offset"),
		Limit:        intArg(args, "limit"),
		Facets:       strArg(args, "facets"),
		Fields:       strArg(args, "fields"),
		Filters:      strArg(args, "filters"),
		RangeFilters: strArg(args, "range_filters"),
	}
}

func searchPayload(args map[string]any) uspto.SearchPayload {
	return uspto.SearchPayload{
		Q:            strArg(args, "q"),
		Filters:      mapListArg(args, "filters"),
		RangeFilters: mapListArg(args, "range_filters"),
		Sort:         mapListArg(args, "sort"),
		Fields:       strListArg(args, "fields"),
		Facets:       strListArg(args, "facets"),
		Offset:       intArg(args, "offset"),
		Limit:        intArg(args, "limit"),
	}
}

func odpSearchParams() []Param {
	return append([]Param{
		{Name: "q", Type: "string", Description: "Search query, e.g. applicationNumberText:14412875"},
		{Name: "sort", Type: "string", Description: "Sort field and direction"},
		{Name: "facets", Type: "string", Description: "Comma-separated facet fields"},
		{Name: "fields", Type: "string", Description: "Comma-separated response fields"},
		{Name: "filters", Type: "string", Description: "Filter conditions"},
		{Name: "range_filters", Type: "string", Description: "Range filter conditions"},
	}, pagingParams(uspto.DefaultLimit)...)
}

func odpPayloadParams() []Param {
	return append([]Param{
		{Name: "q", Type: "string", Description: "Search query"},
		{Name: "filters", Type: "array", Description: "Filter objects [{name, value}]"},
		{Name: "range_filters", Type: "array", Description: "Range filter objects [{field, valueFrom, valueTo}]"},
		{Name: "sort", Type: "array", Description: "Sort objects [{field, order}]"},
		{Name: "fields", Type: "array", Description: "Field names to include"},
		{Name: "facets", Type: "array", Description: "Field names to facet upon"},
	}, pagingParams(uspto.DefaultLimit)...)
}

// appTool registers a one-parameter application sub-resource fetch.
func (g *Gateway) appTool(name, description string, fn func(context.Context, string) (map[string]any, error)) {
	g.register(Tool{
		Name:        name,
		Description: description,
		Params:      appNumParam(),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return fn(ctx, strArg(args, "app_num"))
		},
	})
}

func (g *Gateway) registerODP(c *uspto.Client) {
	g.appTool("get_app", "Get the full file-wrapper record for a patent application", c.GetApplication)
	g.appTool("get_app_metadata", "Get bibliographic metadata for an application", c.GetAppMetadata)
	g.appTool("get_app_adjustment", "Get patent term adjustment data for an application", c.GetAppAdjustment)
	g.appTool("get_app_assignment", "Get assignment data for an application", c.GetAppAssignment)
	g.appTool("get_app_attorney", "Get attorney/agent data for an application", c.GetAppAttorney)
	g.appTool("get_app_continuity", "Get continuity data for an application", c.GetAppContinuity)
	g.appTool("get_app_foreign_priority", "Get foreign priority data for an application", c.GetAppForeignPriority)
	g.appTool("get_app_transactions", "Get transaction history for an application", c.GetAppTransactions)
	g.appTool("get_app_documents", "Get file-wrapper document details for an application", c.GetAppDocuments)
	g.appTool("get_app_associated_documents", "Get associated documents metadata for an application", c.GetAppAssociatedDocuments)

	g.register(Tool{
		Name:        "search_applications",
		Description: "Search patent applications by query-string parameters",
		Params:      odpSearchParams(),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			raw, err := c.SearchApplications(ctx, searchOptions(args))
			if err != nil {
				return nil, err
			}
			return envelope.FromODP(raw, intArg(args, "offset"), intArg(args, "limit")), nil
		},
	})

	g.register(Tool{
		Name:        "search_applications_post",
		Description: "Search patent applications with a structured JSON payload",
		Params:      odpPayloadParams(),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			raw, err := c.SearchApplicationsPost(ctx, searchPayload(args))
			if err != nil {
				return nil, err
			}
			return envelope.FromODP(raw, intArg(args, "offset"), intArg(args, "limit")), nil
		},
	})

	g.register(Tool{
		Name:        "download_applications",
		Description: "Download matching patent applications in json or csv format",
		Params: append(odpSearchParams(),
			Param{Name: "format", Type: "string", Description: "Download format", Default: "json"}),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.DownloadApplications(ctx, searchOptions(args), strArg(args, "format"))
		},
	})

	g.register(Tool{
		Name:        "download_applications_post",
		Description: "Download matching patent applications via a structured JSON payload",
		Params: append(odpPayloadParams(),
			Param{Name: "format", Type: "string", Description: "Download format", Default: "json"}),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.DownloadApplicationsPost(ctx, searchPayload(args), strArg(args, "format"))
		},
	})

	g.register(Tool{
		Name:        "get_status_codes",
		Description: "Search patent application status codes",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Search query"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetStatusCodes(ctx, strArg(args, "q"), intArg(args, "offset"), intArg(args, "limit"))
		},
	})

	g.register(Tool{
		Name:        "get_status_codes_post",
		Description: "Search patent application status codes via JSON payload",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Search query"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetStatusCodesPost(ctx, strArg(args, "q"), intArg(args, "offset"), intArg(args, "limit"))
		},
	})

	g.register(Tool{
		Name:        "search_datasets",
		Description: "Search USPTO bulk-dataset products",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Product search query"},
			{Name: "product_title", Type: "string", Description: "Product title filter"},
			{Name: "product_description", Type: "string", Description: "Product description filter"},
			{Name: "product_short_name", Type: "string", Description: "Product identifier"},
			{Name: "facets", Type: "string", Description: "Enable facets"},
			{Name: "include_files", Type: "boolean", Description: "Include product files", Default: true},
			{Name: "latest", Type: "boolean", Description: "Only the latest product file", Default: false},
			{Name: "labels", Type: "string", Description: "Comma-separated labels"},
			{Name: "categories", Type: "string", Description: "Comma-separated categories"},
			{Name: "datasets", Type: "string", Description: "Comma-separated datasets"},
			{Name: "file_types", Type: "string", Description: "Comma-separated file types"},
		}, pagingParams(uspto.DefaultDatasetLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchDatasets(ctx, uspto.DatasetSearchOptions{
				Q:                  strArg(args, "q"),
				ProductTitle:       strArg(args, "product_title"),
				ProductDescription: strArg(args, "product_description"),
				ProductShortName:   strArg(args, "product_short_name"),
				Offset:             intArg(args, "offset"),
				Limit:              intArg(args, "limit"),
				Facets:             strArg(args, "facets"),
				IncludeFiles:       boolArg(args, "include_files"),
				Latest:             boolArg(args, "latest"),
				Labels:             strArg(args, "labels"),
				Categories:         strArg(args, "categories"),
				Datasets:           strArg(args, "datasets"),
				FileTypes:          strArg(args, "file_types"),
			})
		},
	})

	g.register(Tool{
		Name:        "get_dataset_product",
		Description: "Get one bulk-dataset product by its short name",
		Params: append([]Param{
			{Name: "product_id", Type: "string", Description: "Product identifier (short name)", Required: true},
			{Name: "file_data_from_date", Type: "string", Description: "File from date, YYYY-MM-DD"},
			{Name: "file_data_to_date", Type: "string", Description: "File to date, YYYY-MM-DD"},
			{Name: "include_files", Type: "boolean", Description: "Include product files"},
			{Name: "latest", Type: "boolean", Description: "Only the latest product file"},
		}, pagingParams(0)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetDatasetProduct(ctx, strArg(args, "product_id"), uspto.ProductFileOptions{
				FileDataFromDate: strArg(args, "file_data_from_date"),
				FileDataToDate:   strArg(args, "file_data_to_date"),
				Offset:           intArg(args, "offset"),
				Limit:            intArg(args, "limit"),
				IncludeFiles:     boolArg(args, "include_files"),
				Latest:           boolArg(args, "latest"),
			})
		},
	})
}

func proceedingOptions(args map[string]any) uspto.ProceedingSearchOptions {
	return uspto.ProceedingSearchOptions{
		Q:                 strArg(args, "q"),
		PartyName:         strArg(args, "party_name"),
		PatentNumber:      strArg(args, "patent_number"),
		ApplicationNumber: strArg(args, "app_num"),
		ProceedingType:    strArg(args, "proceeding_type"),
		Status:            strArg(args, "status"),
		FiledFromDate:     strArg(args, "filed_from_date"),
		FiledToDate:       strArg(args, "filed_to_date"),
		Offset:            intArg(args, "offset"),
		Limit:             intArg(args, "limit"),
	}
}

func proceedingParams() []Param {
	return append([]Param{
		{Name: "q", Type: "string", Description: "Search query"},
		{Name: "party_name", Type: "string", Description: "Petitioner or patent owner name"},
		{Name: "patent_number", Type: "string", Description: "Challenged patent number"},
		{Name: "app_num", Type: "string", Description: "Application number"},
		{Name: "proceeding_type", Type: "string", Description: "IPR, PGR, or CBM"},
		{Name: "status", Type: "string", Description: "Proceeding status"},
		{Name: "filed_from_date", Type: "string", Description: "Filed from date, YYYY-MM-DD"},
		{Name: "filed_to_date", Type: "string", Description: "Filed to date, YYYY-MM-DD"},
	}, pagingParams(uspto.DefaultLimit)...)
}

func (g *Gateway) registerPTAB(c *uspto.PTABClient) {
	wrapPTAB := func(fn func(context.Context, map[string]any) (map[string]any, error)) Handler {
		return func(ctx context.Context, args map[string]any) (map[string]any, error) {
			raw, err := fn(ctx, args)
			if err != nil {
				return nil, err
			}
			return envelope.FromPTAB(raw, intArg(args, "offset"), intArg(args, "limit")), nil
		}
	}

	g.register(Tool{
		Name:        "ptab_search_proceedings",
		Description: "Search PTAB trial proceedings (IPR, PGR, CBM)",
		Params:      proceedingParams(),
		Handler: wrapPTAB(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchProceedings(ctx, proceedingOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "ptab_get_proceeding",
		Description: "Get one PTAB proceeding by number",
		Params: []Param{
			{Name: "proceeding_number", Type: "string", Description: "Proceeding number, e.g. IPR2023-00001", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetProceeding(ctx, strArg(args, "proceeding_number"))
		},
	})
	g.register(Tool{
		Name:        "ptab_get_proceeding_documents",
		Description: "List the documents filed in a PTAB proceeding",
		Params: append([]Param{
			{Name: "proceeding_number", Type: "string", Description: "Proceeding number", Required: true},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: wrapPTAB(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetProceedingDocuments(ctx, strArg(args, "proceeding_number"),
				intArg(args, "offset"), intArg(args, "limit"))
		}),
	})
	g.register(Tool{
		Name:        "ptab_search_decisions",
		Description: "Search PTAB decisions",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Search query"},
			{Name: "decision_type", Type: "string", Description: "institution, final-written, or rehearing"},
			{Name: "patent_number", Type: "string", Description: "Challenged patent number"},
			{Name: "from_date", Type: "string", Description: "Decision from date, YYYY-MM-DD"},
			{Name: "to_date", Type: "string", Description: "Decision to date, YYYY-MM-DD"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: wrapPTAB(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchDecisions(ctx, uspto.DecisionSearchOptions{
				Q:            strArg(args, "q"),
				DecisionType: strArg(args, "decision_type"),
				PatentNumber: strArg(args, "patent_number"),
				FromDate:     strArg(args, "from_date"),
				ToDate:       strArg(args, "to_date"),
				Offset:       intArg(args, "offset"),
				Limit:        intArg(args, "limit"),
			})
		}),
	})
	g.register(Tool{
		Name:        "ptab_get_decision",
		Description: "Get one PTAB decision by identifier",
		Params: []Param{
			{Name: "decision_id", Type: "string", Description: "Decision identifier", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetDecision(ctx, strArg(args, "decision_id"))
		},
	})
	g.register(Tool{
		Name:        "ptab_search_appeals",
		Description: "Search ex parte appeal dockets",
		Params:      proceedingParams(),
		Handler: wrapPTAB(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchAppeals(ctx, proceedingOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "ptab_get_appeal_decision",
		Description: "Get the decision of one ex parte appeal",
		Params: []Param{
			{Name: "appeal_number", Type: "string", Description: "Appeal number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetAppealDecision(ctx, strArg(args, "appeal_number"))
		},
	})
	g.register(Tool{
		Name:        "ptab_search_interferences",
		Description: "Search interference proceedings",
		Params:      proceedingParams(),
		Handler: wrapPTAB(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchInterferences(ctx, proceedingOptions(args))
		}),
	})
	g.register(Tool{
		Name:        "ptab_get_interference",
		Description: "Get one interference proceeding by number",
		Params: []Param{
			{Name: "interference_number", Type: "string", Description: "Interference number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetInterference(ctx, strArg(args, "interference_number"))
		},
	})
}

func (g *Gateway) registerOfficeActions(c *uspto.OfficeActionClient) {
	oaOptions := func(args map[string]any) uspto.OfficeActionSearchOptions {
		return uspto.OfficeActionSearchOptions{
			Q:              strArg(args, "q"),
			ExaminerName:   strArg(args, "examiner_name"),
			GroupArtUnit:   strArg(args, "group_art_unit"),
			TechCenter:     strArg(args, "tech_center"),
			MailedFromDate: strArg(args, "mailed_from_date"),
			MailedToDate:   strArg(args, "mailed_to_date"),
			Offset:         intArg(args, "offset"),
			Limit:          intArg(args, "limit"),
		}
	}
	oaParams := append([]Param{
		{Name: "q", Type: "string", Description: "Search query"},
		{Name: "examiner_name", Type: "string", Description: "Examiner name"},
		{Name: "group_art_unit", Type: "string", Description: "Group art unit"},
		{Name: "tech_center", Type: "string", Description: "Technology center"},
		{Name: "mailed_from_date", Type: "string", Description: "Mailed from date, YYYY-MM-DD"},
		{Name: "mailed_to_date", Type: "string", Description: "Mailed to date, YYYY-MM-DD"},
	}, pagingParams(uspto.DefaultLimit)...)

	g.appTool("oa_get_text", "Get the full text of an application's office actions", c.GetOfficeActionText)
	g.appTool("oa_get_citations", "Get the prior-art citations from an application's office actions", c.GetOfficeActionCitations)
	g.appTool("oa_get_rejections", "Get the rejections raised in an application's office actions", c.GetOfficeActionRejections)

	g.register(Tool{
		Name:        "oa_search",
		Description: "Search office-action records",
		Params:      oaParams,
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchOfficeActions(ctx, oaOptions(args))
		},
	})
	g.register(Tool{
		Name:        "oa_search_citations",
		Description: "Search office-action citations by cited document",
		Params: append([]Param{
			{Name: "cited_document", Type: "string", Description: "Cited document identifier"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchCitations(ctx, strArg(args, "cited_document"),
				intArg(args, "offset"), intArg(args, "limit"))
		},
	})
	g.register(Tool{
		Name:        "oa_search_rejections",
		Description: "Search rejection records by statute and filters",
		Params: append(append([]Param{}, oaParams...),
			Param{Name: "statute", Type: "string", Description: "Rejection statute: 101, 102, 103, or 112"}),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchRejections(ctx, strArg(args, "statute"), oaOptions(args))
		},
	})
	g.register(Tool{
		Name:        "oa_weekly_zip",
		Description: "Get the download descriptor for a weekly office-action bulk archive",
		Params: []Param{
			{Name: "week_date", Type: "string", Description: "Week date, YYYY-MM-DD"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetWeeklyZipURL(ctx, strArg(args, "week_date"))
		},
	})
}

func (g *Gateway) registerLitigation(c *uspto.LitigationClient) {
	g.register(Tool{
		Name:        "litigation_search_cases",
		Description: "Search district-court patent litigation dockets",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Search query"},
			{Name: "party_name", Type: "string", Description: "Plaintiff or defendant name"},
			{Name: "court_name", Type: "string", Description: "Court name"},
			{Name: "case_type", Type: "string", Description: "Case type"},
			{Name: "filed_from_date", Type: "string", Description: "Filed from date, YYYY-MM-DD"},
			{Name: "filed_to_date", Type: "string", Description: "Filed to date, YYYY-MM-DD"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchCases(ctx, uspto.CaseSearchOptions{
				Q:             strArg(args, "q"),
				PartyName:     strArg(args, "party_name"),
				CourtName:     strArg(args, "court_name"),
				CaseType:      strArg(args, "case_type"),
				FiledFromDate: strArg(args, "filed_from_date"),
				FiledToDate:   strArg(args, "filed_to_date"),
				Offset:        intArg(args, "offset"),
				Limit:         intArg(args, "limit"),
			})
		},
	})
	g.register(Tool{
		Name:        "litigation_get_case",
		Description: "Get one litigation docket by case number",
		Params: []Param{
			{Name: "case_number", Type: "string", Description: "Case number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetCase(ctx, strArg(args, "case_number"))
		},
	})
	g.register(Tool{
		Name:        "litigation_patent_history",
		Description: "List every case asserting a given patent",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentLitigationHistory(ctx, strArg(args, "patent_number"))
		},
	})
	g.register(Tool{
		Name:        "litigation_party_history",
		Description: "List every case involving a named party",
		Params: append([]Param{
			{Name: "party_name", Type: "string", Description: "Party name", Required: true},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPartyLitigationHistory(ctx, strArg(args, "party_name"),
				intArg(args, "offset"), intArg(args, "limit"))
		},
	})
	g.register(Tool{
		Name:        "litigation_court_statistics",
		Description: "Per-court patent case filing counts for a date window",
		Params: []Param{
			{Name: "from_date", Type: "string", Description: "From date, YYYY-MM-DD"},
			{Name: "to_date", Type: "string", Description: "To date, YYYY-MM-DD"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetCourtStatistics(ctx, strArg(args, "from_date"), strArg(args, "to_date"))
		},
	})
}

func (g *Gateway) registerCitations(c *uspto.CitationClient) {
	g.register(Tool{
		Name:        "citation_get_patent",
		Description: "Get the enriched cited-reference records for one patent",
		Params: append([]Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentCitations(ctx, strArg(args, "patent_number"),
				intArg(args, "offset"), intArg(args, "limit"))
		},
	})
	g.register(Tool{
		Name:        "citation_search",
		Description: "Search enriched citation records",
		Params: append([]Param{
			{Name: "q", Type: "string", Description: "Search query"},
			{Name: "cited_document", Type: "string", Description: "Cited document identifier"},
			{Name: "citing_document", Type: "string", Description: "Citing document identifier"},
			{Name: "citation_source", Type: "string", Description: "examiner, applicant, or third-party"},
			{Name: "tech_center", Type: "string", Description: "Technology center"},
			{Name: "mailed_from_date", Type: "string", Description: "Mailed from date, YYYY-MM-DD"},
			{Name: "mailed_to_date", Type: "string", Description: "Mailed to date, YYYY-MM-DD"},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.SearchCitations(ctx, uspto.CitationSearchOptions{
				Q:              strArg(args, "q"),
				CitedDocument:  strArg(args, "cited_document"),
				CitingDocument: strArg(args, "citing_document"),
				CitationSource: strArg(args, "citation_source"),
				TechCenter:     strArg(args, "tech_center"),
				MailedFromDate: strArg(args, "mailed_from_date"),
				MailedToDate:   strArg(args, "mailed_to_date"),
				Offset:         intArg(args, "offset"),
				Limit:          intArg(args, "limit"),
			})
		},
	})
	g.register(Tool{
		Name:        "citation_metrics",
		Description: "Get forward/backward citation metrics for one patent",
		Params: []Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetCitationMetrics(ctx, strArg(args, "patent_number"))
		},
	})
	g.register(Tool{
		Name:        "citation_family",
		Description: "Get citations aggregated across a patent's family",
		Params: append([]Param{
			{Name: "patent_number", Type: "string", Description: "Patent number", Required: true},
		}, pagingParams(uspto.DefaultLimit)...),
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return c.GetPatentFamilyCitations(ctx, strArg(args, "patent_number"),
				intArg(args, "offset"), intArg(args, "limit"))
		},
	})
}
