package server

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/maastricht-university/clusterd/clustering"
	"github.com/maastricht-university/clusterd/dataset"
	"github.com/maastricht-university/clusterd/guide"
	"github.com/maastricht-university/clusterd/orchestrator"
)

// multipart parts beyond this size spill to temporary files
const formMemory = 8 << 20

// --- Clustering (/cluster) ---

// HandleCluster reads the uploaded spreadsheet from the "file" part, runs
// the selected method and answers with the label spreadsheet as an
// attachment.
func (s *Server) HandleCluster(w http.ResponseWriter, r *http.Request) {
	if maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20; maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No file uploaded"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	req, err := s.parseRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.pipeline.Run(r.Context(), file, hdr.Filename, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Output)))
	w.Header().Set("X-Cluster-Count", strconv.Itoa(res.Clusters))
	w.Header().Set("X-Noise-Count", strconv.Itoa(res.Noise))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

// parseRequest overlays form values on the configured defaults.
func (s *Server) parseRequest(r *http.Request) (orchestrator.Request, error) {
	req := s.pipeline.DefaultRequest()
	p := &req.Params

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(r.FormValue(key)); v != "" {
			*dst = v
		}
	}
	str("method", &req.Method)
	str("linkage", &p.Linkage)
	str("criterion", &p.Criterion)
	str("id_column", &req.IDColumn)

	ints := map[string]*int{
		"n_clusters":  &p.NClusters,
		"min_samples": &p.MinSamples,
		"max_iter":    &p.MaxIter,
		"n_init":      &p.NInit,
	}
	for key, dst := range ints {
		if v := strings.TrimSpace(r.FormValue(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, NewInvalidRequestError("%s must be an integer, got %q", key, v)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"eps":       &p.Eps,
		"threshold": &p.Threshold,
		"bandwidth": &p.Bandwidth,
	}
	for key, dst := range floats {
		if v := strings.TrimSpace(r.FormValue(key)); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return req, NewInvalidRequestError("%s must be a number, got %q", key, v)
			}
			*dst = f
		}
	}

	if v := strings.TrimSpace(r.FormValue("standardize")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, NewInvalidRequestError("standardize must be true or false, got %q", v)
		}
		req.Standardize = b
	}

	format, err := dataset.ParseFormat(r.FormValue("format"))
	if err != nil {
		return req, err
	}
	req.Format = format

	// reject the method before the upload is parsed
	if _, err := clustering.ParseMethod(req.Method); err != nil {
		return req, err
	}
	return req, nil
}

// --- Guide (/clustering-guide) ---

func (s *Server) HandleGuide(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("language")
	if lang == "" {
		lang = guide.DefaultLanguage
	}
	writeJSON(w, http.StatusOK, guide.Lookup(lang))
}

// --- Health (/health) ---

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.cfg.Service.Name,
		"version": s.cfg.Service.Version,
	})
}
