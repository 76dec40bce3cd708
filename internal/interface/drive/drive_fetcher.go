package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// RemoteFile is one file of the extract folder
type RemoteFile struct {
	ID   string
	Name string
}

// Client is the subset of the Drive API the fetcher uses
type Client interface {
	List(ctx context.Context, folderID, pageToken string) ([]RemoteFile, string, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// DriveExtractFetcher mirrors a Google Drive folder of extracts into a local directory
type DriveExtractFetcher struct {
	client   Client
	folderID string
	logger   logger.Logger
	attempts uint
	delay    time.Duration
}

// NewDriveExtractFetcher creates a fetcher backed by the Drive API
func NewDriveExtractFetcher(ctx context.Context, tokenSource oauth2.TokenSource, folderID string, logger logger.Logger) (repository.ExtractFetcher, error) {
	service, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return NewFetcher(&serviceClient{service: service}, folderID, logger), nil
}

// NewFetcher creates a fetcher on top of any Drive client
func NewFetcher(client Client, folderID string, logger logger.Logger) *DriveExtractFetcher {
	return &DriveExtractFetcher{
		client:   client,
		folderID: folderID,
		logger:   logger,
		attempts: 3,
		delay:    time.Second,
	}
}

// Fetch downloads every file of the folder into dir and returns their names
func (f *DriveExtractFetcher) Fetch(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create extract dir: %w", err)
	}

	var files []RemoteFile
	pageToken := ""
	for {
		page, next, err := f.client.List(ctx, f.folderID, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list drive folder: %w", err)
		}
		files = append(files, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		data, err := f.download(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", file.Name, err)
		}
		name := filepath.Base(file.Name)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		f.logger.Debug("Downloaded extract", "file", name, "bytes", len(data))
		names = append(names, name)
	}
	return names, nil
}

func (f *DriveExtractFetcher) download(ctx context.Context, file RemoteFile) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			return f.client.Download(ctx, file.ID)
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.MaxJitter(f.delay/2),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("Retrying drive download", "attempt", n+1, "file", file.Name, "error", err)
		}),
	)
}

// isRetryableError returns true for rate limiting, server errors and network failures
func isRetryableError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return !errors.Is(err, context.Canceled)
}

type serviceClient struct {
	service *drive.Service
}

func (c *serviceClient) List(ctx context.Context, folderID, pageToken string) ([]RemoteFile, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		Fields("nextPageToken, files(id, name, mimeType)").
		OrderBy("name")
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, "", err
	}
	files := make([]RemoteFile, 0, len(resp.Files))
	for _, file := range resp.Files {
		if file.MimeType == folderMimeType {
			continue
		}
		files = append(files, RemoteFile{ID: file.Id, Name: file.Name})
	}
	return files, resp.NextPageToken, nil
}

func (c *serviceClient) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
