package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/filex"
	"github.com/dmitrijs2005/careerkit/internal/netx"
)

const (
	ResumeContentType = "application/pdf"
	// MaxResumeSize caps uploaded documents at 10 MiB.
	MaxResumeSize = 10 << 20
)

var pdfMagic = []byte("%PDF-")

// ResumeService moves resume documents between the local disk and object
// storage through presigned URLs issued by the server.
type ResumeService struct {
	client client.Client
	http   netx.HTTPDoer
}

// NewResumeService constructs a ResumeService uploading through h.
func NewResumeService(c client.Client, h netx.HTTPDoer) *ResumeService {
	return &ResumeService{client: c, http: h}
}

// Upload reads the PDF at path and stores it. The returned URL describes the
// stored object; its Key is what DownloadURL accepts.
func (r *ResumeService) Upload(ctx context.Context, path string) (*models.PresignedURL, error) {
	body, err := filex.ReadLimited(path, MaxResumeSize)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, fmt.Errorf("%w: %s is not a PDF document", client.ErrInvalidArgument, path)
	}

	u, err := r.client.ResumeUploadURL(ctx, ResumeContentType)
	if err != nil {
		return nil, fmt.Errorf("upload url: %w", err)
	}
	if err := netx.PutPresigned(ctx, r.http, u.URL, body, ResumeContentType); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *ResumeService) DownloadURL(ctx context.Context, key string) (*models.PresignedURL, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", client.ErrInvalidArgument)
	}
	return r.client.ResumeDownloadURL(ctx, key)
}
