package objectstorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const (
	defaultPresignTTL = 15 * time.Minute
	maxListPageSize   = 1000
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client адаптер над S3: хранит файлы под сгенерированными ключами
// Бизнес-логики здесь нет
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
	ttl       time.Duration
	now       func() time.Time
	log       Logger
}

// NewS3Client создает клиента aws-sdk по конфигурации сервиса
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrInternal, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// NewClient создает адаптер поверх готового s3.Client
func NewClient(client *s3.Client, cfg Config, log Logger) *Client {
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	return &Client{
		s3:        client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		ttl:       ttl,
		now:       time.Now,
		log:       log,
	}
}

// Put сохраняет файл под ключом <prefix><unixms>-<uuid><ext>
func (c *Client) Put(ctx context.Context, prefix string, body []byte, contentType, originalName string) (*StoredObject, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}

	key := c.generateKey(prefix, originalName)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put %s: %v", ErrInternal, key, err)
	}

	c.log.Info("Object stored: key=%s, size=%d", key, len(body))

	return &StoredObject{Key: key, URL: c.URL(key)}, nil
}

// URL возвращает детерминированный публичный адрес ключа
func (c *Client) URL(key string) string {
	return c.publicURL + "/" + key
}

// PresignGet возвращает временную ссылку на объект
func (c *Client) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.ttl))
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", ErrInternal, key, err)
	}

	return req.URL, nil
}

// Exists проверяет наличие объекта
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("%w: empty key", ErrInvalidInput)
	}

	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: head %s: %v", ErrInternal, key, err)
	}

	return true, nil
}

// Delete удаляет объект. Отсутствующий объект - ошибка ErrObjectNotFound
func (c *Client) Delete(ctx context.Context, key string) error {
	exists, err := c.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}

	_, err = c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrInternal, key, err)
	}

	c.log.Info("Object deleted: key=%s", key)
	return nil
}

// List возвращает не более limit объектов с префиксом
func (c *Client) List(ctx context.Context, prefix string, limit int) ([]Object, error) {
	objects := make([]Object, 0)
	if limit <= 0 {
		return objects, nil
	}

	var token *string
	for len(objects) < limit {
		pageSize := limit - len(objects)
		if pageSize > maxListPageSize {
			pageSize = maxListPageSize
		}

		out, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(c.bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           aws.Int32(int32(pageSize)),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", ErrInternal, prefix, err)
		}

		for _, obj := range out.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	if len(objects) > limit {
		objects = objects[:limit]
	}

	return objects, nil
}

func (c *Client) generateKey(prefix, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("%s%d-%s%s", prefix, c.now().UnixMilli(), uuid.NewString(), ext)
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == 404
	}

	return false
}
