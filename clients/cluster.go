package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// --- Clustering (/cluster) ---

// ClusterForm carries the optional form fields. Empty strings and nil
// numbers are omitted so the server falls back to its configured defaults;
// a non-nil zero such as Threshold: Float(0) is sent as is.
type ClusterForm struct {
	Method      string
	NClusters   *int
	Eps         *float64
	MinSamples  *int
	Threshold   *float64
	Linkage     string
	Criterion   string
	Bandwidth   *float64
	Standardize bool
	Format      string
	IDColumn    string
}

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func (f ClusterForm) fields() map[string]string {
	out := map[string]string{}
	str := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	num := func(k string, v *int) {
		if v != nil {
			out[k] = strconv.Itoa(*v)
		}
	}
	flt := func(k string, v *float64) {
		if v != nil {
			out[k] = strconv.FormatFloat(*v, 'g', -1, 64)
		}
	}
	str("method", f.Method)
	str("linkage", f.Linkage)
	str("criterion", f.Criterion)
	str("format", f.Format)
	str("id_column", f.IDColumn)
	num("n_clusters", f.NClusters)
	num("min_samples", f.MinSamples)
	flt("eps", f.Eps)
	flt("threshold", f.Threshold)
	flt("bandwidth", f.Bandwidth)
	if f.Standardize {
		out["standardize"] = "true"
	}
	return out
}

type ClusterResp struct {
	Filename    string
	ContentType string
	RequestID   string
	Clusters    int
	Noise       int
	Body        []byte
}

// Cluster uploads the spreadsheet at path.
func (h *HTTP) Cluster(ctx context.Context, url, path string, form ClusterForm) (*ClusterResp, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return h.ClusterReader(ctx, url, filepath.Base(path), fd, form)
}

// ClusterReader uploads src under filename.
func (h *HTTP) ClusterReader(ctx context.Context, url, filename string, src io.Reader, form ClusterForm) (*ClusterResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(fw, src); err != nil {
		return nil, err
	}
	for k, v := range form.fields() {
		if err = w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/cluster", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cluster read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cluster %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	out := &ClusterResp{
		ContentType: resp.Header.Get("Content-Type"),
		RequestID:   resp.Header.Get("X-Request-Id"),
		Body:        body,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		out.Filename = params["filename"]
	}
	out.Clusters, _ = strconv.Atoi(resp.Header.Get("X-Cluster-Count"))
	out.Noise, _ = strconv.Atoi(resp.Header.Get("X-Noise-Count"))
	return out, nil
}
