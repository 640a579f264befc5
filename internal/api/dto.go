package api

import (
	"time"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/shadows"
	"github.com/yacobolo/designsync/internal/tokens"
	"github.com/yacobolo/designsync/internal/workspace"
)

// ScanResponse is the body of GET /scan and POST /rescan.
type ScanResponse struct {
	Root        string                        `json:"root"`
	Tokens      map[string]tokens.Token       `json:"tokens"`
	Shadows     map[string]shadows.Definition `json:"shadows"`
	ShadowOrder []string                      `json:"shadowOrder"`
	Files       workspace.Files               `json:"files"`
	ScannedAt   string                        `json:"scannedAt"`
}

func newScanResponse(res *designsync.ScanResult) ScanResponse {
	return ScanResponse{
		Root:        res.Root,
		Tokens:      res.Tokens,
		Shadows:     res.Shadows,
		ShadowOrder: res.ShadowOrder,
		Files:       res.Files,
		ScannedAt:   res.ScannedAt.Format(time.RFC3339),
	}
}

// ElementRequest identifies an element in a component file.
type ElementRequest struct {
	FilePath   string `json:"filePath"`
	Identifier string `json:"identifier,omitempty"`
	Line       int    `json:"line,omitempty"`
	Context    string `json:"context,omitempty"`
	EID        string `json:"eid,omitempty"`
}

// UnmarkRequest removes an element marker.
type UnmarkRequest struct {
	FilePath string `json:"filePath"`
	EID      string `json:"eid"`
}

// ClassForValueResponse is the body of GET /classes/for-value.
type ClassForValueResponse struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Class    string `json:"class"`
}
