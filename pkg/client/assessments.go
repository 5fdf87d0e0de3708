package client

import (
	"context"
	"net/url"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// AssessmentsClient covers assessment, insights and corpus endpoints.
type AssessmentsClient struct {
	client *Client
}

// Create runs an assessment. The request is validated locally first.
func (a *AssessmentsClient) Create(ctx context.Context, req assessment.Request) (*assessment.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp assessment.Response
	if err := a.client.post(ctx, "/api/v1/assessments", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Insights fetches the background tables for materialType.
func (a *AssessmentsClient) Insights(ctx context.Context, materialType string) (*assessment.Insights, error) {
	path := "/api/v1/insights"
	if materialType != "" {
		path += "?materialType=" + url.QueryEscape(materialType)
	}
	var resp assessment.Insights
	if err := a.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Corpus summarises the server's active reference corpus.
func (a *AssessmentsClient) Corpus(ctx context.Context) (*assessment.CorpusSummary, error) {
	var resp assessment.CorpusSummary
	if err := a.client.get(ctx, "/api/v1/corpus", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

//Personal.AI order the ending
