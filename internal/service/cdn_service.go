package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "github.com/telvana/streampanel/configs"
	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/transfer"
)

const uploadPrefix = "uploads/"

// CDNService proxies image uploads to an S3-compatible CDN bucket
// (Cloudflare R2). Keys are opaque identifiers derived from the original
// file name; deletion resolves a key either directly or by listing objects
// that match the derived name.
type CDNService struct {
	config cfg.Config
}

func NewCDNService(cfg cfg.Config) *CDNService {
	return &CDNService{config: cfg}
}

func (r *CDNService) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.CDN.AccessKey, r.config.CDN.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.CDN.AccountID))
	}), nil
}

// Upload pushes a decoded file to the bucket and returns its public URL and
// object key. Only image payloads are accepted.
func (r *CDNService) Upload(ctx context.Context, fileName string, data []byte) (*transfer.UploadResponse, error) {
	if len(data) == 0 {
		return nil, apperrors.Validationf("file data is required")
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, apperrors.Validationf("only image uploads are supported")
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := uploadPrefix + id + "-" + sanitizeFileName(fileName)

	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.CDN.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(kind.MIME.Value),
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &transfer.UploadResponse{
		URL: strings.TrimSuffix(r.config.CDN.PublicURL, "/") + "/" + key,
		Key: key,
	}, nil
}

// ResolveKey finds the object key for an upload identified only by its
// original file name.
func (r *CDNService) ResolveKey(ctx context.Context, fileName string) (string, error) {
	client, err := r.client(ctx)
	if err != nil {
		return "", err
	}

	name := sanitizeFileName(fileName)
	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.config.CDN.BucketName),
		Prefix: aws.String(uploadPrefix),
	})
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	for _, obj := range out.Contents {
		if obj.Key != nil && strings.HasSuffix(*obj.Key, "-"+name) {
			return *obj.Key, nil
		}
	}
	return "", apperrors.NotFoundf("upload %s", fileName)
}

func (r *CDNService) Delete(ctx context.Context, key string) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.CDN.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func sanitizeFileName(fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
