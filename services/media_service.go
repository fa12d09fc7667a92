package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/lqitha/lqitha-backend/config"
	apiError "github.com/lqitha/lqitha-backend/errors"
)

// MaxPhotoSize caps post photo uploads at 10 MB.
const MaxPhotoSize = 10 * 1024 * 1024

type MediaService interface {
	// UploadPhoto stores a post photo and a 200px thumbnail on S3 and
	// returns their public URLs.
	UploadPhoto(ctx context.Context, fileHeader *multipart.FileHeader, userID uint) (photoURL, thumbnailURL string, err error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func (m *mediaService) UploadPhoto(ctx context.Context, fileHeader *multipart.FileHeader, userID uint) (string, string, error) {
	if fileHeader.Size > MaxPhotoSize {
		return "", "", apiError.New("photo exceeds the maximum allowed size", http.StatusBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file for content type detection: %w", err)
	}
	contentType := http.DetectContentType(buffer[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", apiError.New(fmt.Sprintf("unsupported file type: %s", contentType), http.StatusBadRequest)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("failed to reset file read position: %w", err)
	}

	svc, err := m.s3Client(ctx)
	if err != nil {
		return "", "", err
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	base := fmt.Sprintf("%d_%s", userID, uuid.New().String())
	photoKey := fmt.Sprintf("photos/%s%s", base, ext)

	photoURL, err := m.putObject(ctx, svc, photoKey, file, contentType)
	if err != nil {
		return "", "", err
	}

	thumbnailURL, err := m.uploadThumbnail(ctx, svc, file, base)
	if err != nil {
		return "", "", err
	}

	return photoURL, thumbnailURL, nil
}

func (m *mediaService) uploadThumbnail(ctx context.Context, svc *s3.Client, file multipart.File, base string) (string, error) {
	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to reset file read position: %w", err)
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, nil); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbnailKey := fmt.Sprintf("thumbnails/%s_thumbnail.jpg", base)
	return m.putObject(ctx, svc, thumbnailKey, bytes.NewReader(buf.Bytes()), "image/jpeg")
}

func (m *mediaService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := fig.LoadDefaultConfig(ctx,
		fig.WithRegion(m.Config.AwsRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) putObject(ctx context.Context, svc *s3.Client, key string, body io.Reader, contentType string) (string, error) {
	bucket := m.Config.AwsBucket
	if bucket == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	_, err := svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, m.Config.AwsRegion, key), nil
}
