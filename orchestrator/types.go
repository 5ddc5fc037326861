package orchestrator

import (
	"github.com/maastricht-university/clusterd/clustering"
	"github.com/maastricht-university/clusterd/dataset"
)

// Request is one clustering job over an uploaded table.
type Request struct {
	Method      string
	Params      clustering.Params
	IDColumn    string
	Format      dataset.Format
	Standardize bool // z-score every feature column before clustering
}

type Result struct {
	ID          string
	Method      clustering.Method
	Assignments dataset.Assignments
	Clusters    int
	Noise       int
	Format      dataset.Format
	ContentType string
	Filename    string
	Output      []byte
	OutputPath  string // empty when persistence is off
}
