package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/teachlens/teachlens-pipeline/analysis"
)

// --- Report renderer (/render) ---
type RenderReq struct {
	ReportID   string                    `json:"report_id"`
	Source     string                    `json:"source"`
	Rubric     analysis.EvaluationResult `json:"rubric"`
	Transcript string                    `json:"transcript,omitempty"`
	OutputDir  string                    `json:"output_dir,omitempty"`
}

type RenderResp struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func (h *HTTP) Render(ctx context.Context, url string, req RenderReq) (*RenderResp, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(url, "/")+"/render", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")
	resp, err := h.c.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("renderer %s: %s", resp.Status, string(body))
	}

	var out RenderResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("renderer decode: %w", err)
	}
	return &out, nil
}
