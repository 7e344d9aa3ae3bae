package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// UploadFileParams contains parameters for uploading a file to IPFS
type UploadFileParams struct {
	Path string
}

// UploadFileResult contains the IPFS path of an uploaded file
type UploadFileResult struct {
	File     string `json:"file"`
	IPFSPath string `json:"ipfsPath"`
	Size     int64  `json:"size"`
}

// UploadFile uploads a text proposal document to IPFS
type UploadFile struct {
	uploader FileUploader
	sink     ProgressSink
}

// NewUploadFile creates a new UploadFile use case
func NewUploadFile(uploader FileUploader, sink ProgressSink) *UploadFile {
	return &UploadFile{
		uploader: uploader,
		sink:     sink,
	}
}

// Run executes the upload file use case
func (uc *UploadFile) Run(ctx context.Context, params UploadFileParams) (*UploadFileResult, error) {
	if params.Path == "" {
		return nil, fmt.Errorf("no file to upload")
	}
	info, err := os.Stat(params.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", params.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", params.Path)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "uploading",
		Message: fmt.Sprintf("Uploading %s to ipfs", filepath.Base(params.Path)),
		Spinner: true,
	})
	ipfsPath, err := uc.uploader.Upload(ctx, params.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", params.Path, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "File uploaded",
	})
	return &UploadFileResult{
		File:     params.Path,
		IPFSPath: ipfsPath,
		Size:     info.Size(),
	}, nil
}
