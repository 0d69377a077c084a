package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Client creates an S3 client from static credentials. Path-style
// addressing is used so S3-compatible endpoints work.
func NewS3Client(cfg config.S3Config) (s3iface.S3API, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// NewS3Publisher creates a publisher writing keys under prefix
func NewS3Publisher(client s3iface.S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: nopLogger{},
	}
}

// SetLogger sets the logger used to report uploads
func (p *S3Publisher) SetLogger(logger core.Logger) *S3Publisher {
	p.logger = logger
	return p
}

// Key returns a new unique object key for a render of sceneName
func (p *S3Publisher) Key(sceneName string) string {
	return path.Join(p.prefix, sceneName, uuid.NewString()+".png")
}

// Publish uploads PNG data under a new key and returns the key
func (p *S3Publisher) Publish(ctx context.Context, sceneName string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(sceneName)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	p.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, p.bucket, size)
	return key, nil
}

// PublishImage encodes the writer's image as PNG and uploads it
func (p *S3Publisher) PublishImage(ctx context.Context, sceneName string, w *ImageWriter) (string, error) {
	var buf bytes.Buffer
	if err := w.Encode(&buf); err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}
	return p.Publish(ctx, sceneName, buf.Bytes())
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
