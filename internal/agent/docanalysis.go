package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// DocumentAnalysisCapability summarizes and extracts insights from documents.
type DocumentAnalysisCapability struct {
	client completion.Client
	logger *slog.Logger
}

// NewDocumentAnalysisCapability creates the document analysis capability.
func NewDocumentAnalysisCapability(client completion.Client, logger *slog.Logger) *DocumentAnalysisCapability {
	return &DocumentAnalysisCapability{client: client, logger: logger}
}

func (d *DocumentAnalysisCapability) Name() string { return CapDocumentAnalysis }

// Respond returns an analysis of the described document.
func (d *DocumentAnalysisCapability) Respond(ctx context.Context, query string) string {
	if d.client != nil {
		prompt := buildPrompt(
			"You are a document analysis expert who extracts key findings and action items.",
			[]string{
				"Identify the main themes and important sections of the document.",
				"Summarize the content concisely.",
				"List any action items the document implies.",
			},
			query,
		)
		if text, err := d.client.Complete(ctx, prompt); err == nil {
			return textutil.ExtractContent(text)
		} else {
			d.logger.Warn("Document analysis completion failed, using fallback", "error", err)
		}
	}

	metrics.FallbackResponses.WithLabelValues(CapDocumentAnalysis).Inc()
	return d.fallback(query)
}

func (d *DocumentAnalysisCapability) fallback(query string) string {
	return fmt.Sprintf(`# Document Analysis

## Key Findings
- Main theme: %s
- Important sections identified: 3
- Suggested action items: 5

## Summary
This document appears to focus on technology trends with specific emphasis on AI applications.

This is a simulated response from the document analysis agent.`, query)
}
