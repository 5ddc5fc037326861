package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/maastricht-university/clusterd/clustering"
)

// PersistBundle is the run.json written next to every output file.
type PersistBundle struct {
	SessionID   string            `json:"session_id"`
	Source      string            `json:"source"`
	Method      clustering.Method `json:"method"`
	Params      clustering.Params `json:"params"`
	Standardize bool              `json:"standardize"`
	Rows        int               `json:"rows"`
	Clusters    int               `json:"clusters"`
	Noise       int               `json:"noise"`
	Output      string            `json:"output"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// mkSessionDir creates one directory per request so concurrent requests
// never share an output file.
func mkSessionDir(outputsRoot, id string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts + "_" + id[:8]
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

func persist(outputsRoot, source string, req Request, res *Result) (outputPath string, err error) {
	sid, outDir, err := mkSessionDir(outputsRoot, res.ID)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, res.Filename)
	if err = os.WriteFile(outPath, res.Output, 0o644); err != nil {
		return "", err
	}

	bundle := PersistBundle{
		SessionID:   sid,
		Source:      source,
		Method:      res.Method,
		Params:      req.Params,
		Standardize: req.Standardize,
		Rows:        len(res.Assignments.Labels),
		Clusters:    res.Clusters,
		Noise:       res.Noise,
		Output:      res.Filename,
		GeneratedAt: time.Now(),
	}
	if err = writeJSON(filepath.Join(outDir, "run.json"), bundle); err != nil {
		return "", err
	}
	return outPath, nil
}
