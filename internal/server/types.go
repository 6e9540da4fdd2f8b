package server

import (
	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/analysis"
	"github.com/xkilldash9x/prahari/internal/views"
)

// AnalyzeRequest is the manual analysis form.
type AnalyzeRequest struct {
	Username    string `json:"username" validate:"required"`
	Bio         string `json:"bio" validate:"required"`
	RecentPosts string `json:"recentPosts"`
}

// AnalyzeResponse is the verdict plus what the result panel needs to render it.
type AnalyzeResponse struct {
	schemas.ScanResult
	Highlights []analysis.Segment `json:"highlights"`
	TrustBand  analysis.TrustBand `json:"trustBand"`
}

// ScanRequest starts a live monitor scan.
type ScanRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// GraphResponse is a generated interaction graph with its drawn edges.
type GraphResponse struct {
	Seed  int64               `json:"seed"`
	Nodes []schemas.GraphNode `json:"nodes"`
	Edges []schemas.GraphEdge `json:"edges"`
}

// NodeDetail backs the node overlay of the graph panel.
type NodeDetail struct {
	schemas.GraphNode
	Note string `json:"note,omitempty"`
}

// EvidenceResponse is a filtered view of the ledger.
type EvidenceResponse struct {
	Count   int                      `json:"count"`
	Records []schemas.EvidenceRecord `json:"records"`
}

// ViewResponse is the resolved panel for a requested section.
type ViewResponse struct {
	Requested string         `json:"requested"`
	Section   views.MenuItem `json:"section"`
	Fallback  bool           `json:"fallback"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
