package server

import (
	"context"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

type ingestRequest struct {
	Path       string            `json:"path"`
	RootPath   string            `json:"rootPath"`
	Kind       constants.JobKind `json:"kind" validate:"omitempty,oneof=land contract"`
	SkipHidden *bool             `json:"skipHidden"`
}

// IngestFile queues one server-side file for background processing.
func (s *DocumentService) IngestFile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.ingestor == nil {
		return nil, common.NewServiceUnavailableError("ingest", nil)
	}
	var req ingestRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	path := strings.TrimSpace(req.Path)
	if err := validatePath("path", path); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx, s.logger).Info("ingest.file.start", "path", path, "kind", req.Kind)
	r, err := s.ingestor.IngestPath(ctx, path, req.Kind)
	if err != nil {
		return nil, err
	}
	return encode(r)
}

// IngestDirectory queues every supported file under rootPath. skipHidden
// defaults to true.
func (s *DocumentService) IngestDirectory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.ingestor == nil {
		return nil, common.NewServiceUnavailableError("ingest", nil)
	}
	var req ingestRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	root := strings.TrimSpace(req.RootPath)
	if err := validatePath("rootPath", root); err != nil {
		return nil, err
	}
	skipHidden := true
	if req.SkipHidden != nil {
		skipHidden = *req.SkipHidden
	}

	common.LoggerFromContext(ctx, s.logger).Info("ingest.directory.start", "root", root, "kind", req.Kind, "skip_hidden", skipHidden)
	results, stats, err := s.ingestor.IngestDirectory(ctx, root, req.Kind, skipHidden)
	if err != nil {
		return nil, err
	}
	return encode(map[string]any{"stats": stats, "results": results})
}

// maxPathLen matches PATH_MAX on Linux.
const maxPathLen = 4096

func validatePath(field, path string) error {
	v := common.NewValidator().Field(field, path, common.Required, common.MaxLength(maxPathLen))
	return common.ValidateAndReturnError(v)
}
