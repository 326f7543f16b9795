// Package files exposes the file-mutation engine as toolkit children:
// read_files, which returns content and stamps freshness records, and
// file_write_or_edit, which commits a full rewrite or a block edit.
package files

import (
	"context"
	"errors"
	"log"

	"github.com/hamzaessahbaoui/editkit/pkg/editor"
	"github.com/hamzaessahbaoui/editkit/toolkit"
)

// ParentName is the toolkit parent the file children register under.
const ParentName = "files"

// Service binds the tool handlers to one editor instance.
type Service struct {
	editor *editor.Editor
}

// NewService returns a Service backed by ed.
func NewService(ed *editor.Editor) *Service {
	return &Service{editor: ed}
}

// Parent assembles the file_operations parent with both children attached.
func (s *Service) Parent() toolkit.Parent {
	return toolkit.NewParent(
		ParentName,
		"Read files and write or edit them with whitelist-gated full rewrites or search/replace blocks.",
		toolkit.NewChild("read_files",
			"Read one or more files and record their current fingerprints for the session.",
			s.ReadFiles),
		toolkit.NewChild("file_write_or_edit",
			"Write a full file or apply search/replace blocks to it. The file must have been read by the same session since its last change, unless it is being created.",
			s.WriteOrEdit),
	)
}

// ReadFiles reads every requested path. Failures are reported per path so one
// missing file does not hide the others.
func (s *Service) ReadFiles(ctx context.Context, args ReadFilesArgs) (interface{}, error) {
	log.Printf("files: read_files session=%s paths=%d", args.SessionID, len(args.FilePaths))

	resp := ReadFilesResponse{Success: true, Files: make([]FileContent, 0, len(args.FilePaths))}
	for _, path := range args.FilePaths {
		result, err := s.editor.ReadFile(ctx, args.SessionID, path)
		if err != nil {
			resp.Success = false
			resp.Files = append(resp.Files, FileContent{Path: path, Error: err.Error()})
			continue
		}
		resp.Files = append(resp.Files, FileContent{
			Path:        result.Path,
			Content:     result.Content,
			Fingerprint: string(result.Fingerprint),
		})
	}
	return resp, nil
}

// WriteOrEdit commits one write or edit. Engine failures come back as
// toolkit errors carrying the engine's error code, so callers can tell a
// stale whitelist entry from a bad payload.
func (s *Service) WriteOrEdit(ctx context.Context, args WriteOrEditArgs) (interface{}, error) {
	log.Printf("files: file_write_or_edit session=%s path=%s change=%d%%",
		args.SessionID, args.FilePath, args.PercentageToChange)

	result, err := s.editor.WriteOrEdit(ctx, editor.EditRequest{
		SessionID:     args.SessionID,
		Path:          args.FilePath,
		ChangePercent: args.PercentageToChange,
		Payload:       args.FileContentOrPatchPayload,
	})
	if err != nil {
		var engineErr *editor.Error
		if errors.As(err, &engineErr) {
			return nil, toolkit.NewError(engineErr.Code, engineErr.Message)
		}
		return nil, toolkit.NewError(editor.CodeIO, err.Error())
	}

	return WriteOrEditResponse{
		Success:        true,
		ContentSummary: result.Summary.String(),
		Diff:           result.Summary.Diff,
		Warnings:       result.Warnings,
		Fingerprint:    string(result.Fingerprint),
	}, nil
}
