package orchestrator

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/clusterd/clustering"
	cfg "github.com/maastricht-university/clusterd/config"
	"github.com/maastricht-university/clusterd/dataset"
)

type Pipeline struct {
	cfg *cfg.Root
	log logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Pipeline{cfg: c, log: log}
}

// DefaultRequest is the request implied by configuration alone.
func (p *Pipeline) DefaultRequest() Request {
	return Request{
		Method:   p.cfg.Clustering.Method,
		Params:   p.cfg.Clustering.Params,
		IDColumn: p.cfg.Dataset.IDColumn,
		Format:   dataset.XLSX,
	}
}

// Run reads the upload, clusters its feature columns and encodes the
// identifier/label pairs. The method name is checked before the upload is
// parsed.
func (p *Pipeline) Run(ctx context.Context, src io.Reader, filename string, req Request) (*Result, error) {
	start := time.Now()
	method, err := clustering.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = dataset.XLSX
	}

	id := uuid.NewString()
	log := p.log.WithFields(logrus.Fields{"run": id, "method": method, "source": filename})

	ds, err := dataset.Read(src, filename)
	if err != nil {
		return nil, err
	}
	tbl, err := ds.Split(req.IDColumn)
	if err != nil {
		return nil, err
	}
	rows, cols := tbl.Features.Dims()
	log.WithFields(logrus.Fields{"rows": rows, "features": cols}).Debug("dataset loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	X := tbl.Features
	if req.Standardize {
		X = standardize(X)
	}
	labels, err := clustering.Run(ctx, method, X, req.Params)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:     id,
		Method: method,
		Assignments: dataset.Assignments{
			IDColumn: req.IDColumn,
			IDs:      tbl.IDs,
			Labels:   labels,
		},
		Format:      format,
		ContentType: dataset.ContentType(format),
		Filename:    dataset.Filename(format),
	}
	res.Clusters, res.Noise = clustering.Count(labels)

	var buf bytes.Buffer
	if err := dataset.Write(&buf, format, res.Assignments); err != nil {
		return nil, errors.Wrap(err, "encode output")
	}
	res.Output = buf.Bytes()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.cfg.Paths.Outputs != "" {
		res.OutputPath, err = persist(p.cfg.Paths.Outputs, filename, req, res)
		if err != nil {
			return nil, errors.Wrap(err, "persist output")
		}
	}

	log.WithFields(logrus.Fields{
		"clusters": res.Clusters,
		"noise":    res.Noise,
		"output":   res.OutputPath,
		"took":     time.Since(start).String(),
	}).Info("clustering finished")
	return res, nil
}
