package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

type S3Service struct {
	client   *s3.Client
	bucket   string
	psClient *s3.PresignClient
	baseURL  string
}

func NewS3Service(ctx context.Context, cfg *config.S3Config) (*S3Service, error) {
	var client *s3.Client

	if cfg.Local {
		client = s3.New(s3.Options{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			),
			BaseEndpoint: aws.String(cfg.Endpoint),
			UsePathStyle: true,
		})

		if err := createBucketIfNotExists(ctx, client, cfg.Bucket); err != nil {
			return nil, util.LogError("[S3Service] ошибка создания бакета", err)
		}
	} else {
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, util.LogError("[S3Service] ошибка загрузки AWS config", err)
		}
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Service{
		client:   client,
		psClient: s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		baseURL:  publicBaseURL(cfg),
	}, nil
}

// publicBaseURL : адрес, по которому клиенты читают загруженные файлы
func publicBaseURL(cfg *config.S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Local:
		return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// createBucketIfNotExists создает бакет если он не существует
func createBucketIfNotExists(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})

	if err == nil {
		return nil // Бакет уже существует
	}

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})

	if err != nil {
		return util.LogError("[S3Service] ошибка создания бакета", err)
	}

	zap.L().Info("[S3Service] бакет успешно создан", zap.String("bucket", bucket))
	return nil
}

// Upload : загрузка небольших файлов (аватар, обложка, превью), возвращает публичный URL
func (s *S3Service) Upload(ctx context.Context, key string, upload *model.Upload) (string, error) {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = util.ContentTypeFor(upload.Filename)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(contentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", util.LogError("[S3Service] не удалось загрузить объект", err)
	}
	return s.ObjectURL(key), nil
}

// GeneratePresignedPutURL : генерация pre-signed URL для PUT
func (s *S3Service) GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	req, err := s.psClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expire
	})
	if err != nil {
		return "", util.LogError("[S3Service] не удалось сгенерировать presigned PUT URL", err)
	}
	return req.URL, nil
}

// Delete : принимает как ключ объекта, так и его публичный URL
func (s *S3Service) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyFromRef(ref)),
	})
	if err != nil {
		return util.LogError("[S3Service] не удалось удалить объект", err)
	}
	return nil
}

func (s *S3Service) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3Service) keyFromRef(ref string) string {
	if key, ok := strings.CutPrefix(ref, s.baseURL+"/"); ok {
		return key
	}
	return ref
}
