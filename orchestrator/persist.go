package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func mkSessionDir(outputsRoot, id string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := fmt.Sprintf("session_%s_%s", ts, id[:8])
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes report.json and transcript.txt into the bundle's session dir.
func persist(b *Bundle) (reportPath string, err error) {
	reportPath = filepath.Join(b.Dir, "report.json")
	if err = writeJSON(reportPath, b); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err = os.WriteFile(filepath.Join(b.Dir, "transcript.txt"), []byte(b.Transcript+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return reportPath, nil
}
