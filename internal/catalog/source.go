package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Paintersrp/tome/internal/pathutil"
)

// Source is random-access backing storage for one catalog file.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
	// Name identifies the source in logs and errors.
	Name() string
}

// Downloader is the part of the S3 transfer manager used to fetch remote
// catalogs.
type Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

type fileSource struct {
	*os.File
	size int64
}

func (f *fileSource) Size() int64 { return f.size }

type memSource struct {
	*bytes.Reader
	name string
}

func (m *memSource) Close() error  { return nil }
func (m *memSource) Name() string { return m.name }

// FromBytes wraps an in-memory catalog.
func FromBytes(name string, data []byte) Source {
	return &memSource{Reader: bytes.NewReader(data), name: name}
}

// OpenFile opens a catalog on the local filesystem.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("catalog: stat %s: %w", path, err)
	}
	return &fileSource{File: f, size: info.Size()}, nil
}

// OpenS3 downloads s3://bucket/key into memory.
func OpenS3(ctx context.Context, d Downloader, uri string) (Source, error) {
	bucket, key, err := splitS3(uri)
	if err != nil {
		return nil, err
	}
	buf := manager.NewWriteAtBuffer(nil)
	if _, err := d.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("catalog: download %s: %w", uri, err)
	}
	return FromBytes(uri, buf.Bytes()), nil
}

// Open resolves a location to a Source. Locations starting with s3:// are
// fetched with a downloader built from the default AWS configuration;
// anything else is treated as a local path, optionally prefixed by file://.
func Open(ctx context.Context, location string) (Source, error) {
	if strings.HasPrefix(location, "s3://") {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: aws config: %w", err)
		}
		return OpenS3(ctx, manager.NewDownloader(s3.NewFromConfig(cfg)), location)
	}
	return OpenFile(pathutil.LocalPath(location))
}

func splitS3(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("catalog: invalid s3 location %q", uri)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("catalog: s3 location %q needs a bucket and a key", uri)
	}
	return u.Host, key, nil
}
