package media

import (
	"bytes"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"io"
	"mime"
	"path"
	"strings"
)

type S3Options struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 为空时使用 AWS 默认地址，自建（例如 MinIO）时填写并使用 path style
	Bucket    string
	PublicURL string // 拼接 key 得到对外地址
	Folder    string
}

// S3Store 把图片存到兼容 S3 的对象存储，不做缩放
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	folder    string
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		folder:    strings.Trim(opts.Folder, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, upload *Upload) (*Object, error) {
	// 文件不超过 5 MiB ，读进内存以便签名时可以重复读取
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	key := path.Join(s.folder, uuid.NewString()+extensionOf(upload))

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(upload.ContentType),
	}); err != nil {
		return nil, fmt.Errorf("s3 put object: %w", err)
	}

	return &Object{URL: s.publicURL + "/" + key, Ref: key}, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	}); err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}

	return nil
}

func extensionOf(upload *Upload) string {
	if ext := path.Ext(upload.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, err := mime.ExtensionsByType(upload.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
