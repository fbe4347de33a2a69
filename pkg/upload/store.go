package upload

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// contentKey içeriğin blake2b-256 özetinden dosya adı üretir. Aynı içerik her
// zaman aynı anahtarı üretir; tekrar yüklemeler aynı nesneyi ezer.
func contentKey(f FileHandle) (string, []byte, error) {
	rc, err := f.Open()
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyFile
	}
	sum := blake2b.Sum256(data)
	hexSum := hex.EncodeToString(sum[:])
	// iki seviyeli dizin: ab/cdef...ext
	return hexSum[:2] + "/" + hexSum[2:] + extensionFor(f), data, nil
}

// DiskStore dosyaları yerel dizine yazar ve public URL döndürür.
type DiskStore struct {
	dir       string
	publicURL string
}

// NewDiskStore yeni bir DiskStore oluşturur. Dizin yoksa oluşturulur.
func NewDiskStore(dir, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("yükleme dizini oluşturulamadı: %w", err)
	}
	return &DiskStore{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Upload dosyayı içerik adresli isimle diske yazar.
func (s *DiskStore) Upload(ctx context.Context, f FileHandle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, data, err := contentKey(f)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if _, statErr := os.Stat(target); statErr == nil {
		return s.publicURL + "/" + key, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	configslog.Log.Debug("Dosya diske yazıldı", zap.String("key", key), zap.Int("bytes", len(data)))
	return s.publicURL + "/" + key, nil
}

// S3PutAPI S3Store'un ihtiyaç duyduğu S3 istemci alt kümesidir.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store dosyaları S3 bucket'ına yükler.
type S3Store struct {
	client    S3PutAPI
	bucket    string
	prefix    string
	publicURL string
	timeout   time.Duration
}

// NewS3Store verilen istemciyle S3Store oluşturur. publicURL boşsa bucket'ın
// sanal host adresi kullanılır.
func NewS3Store(client S3PutAPI, bucket, region, publicURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET tanımlı değil")
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Store{
		client:    client,
		bucket:    bucket,
		prefix:    "cards/",
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   30 * time.Second,
	}, nil
}

// NewS3StoreFromEnv varsayılan AWS kimlik zinciriyle istemci kurar.
func NewS3StoreFromEnv(ctx context.Context, bucket, region, publicURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws yapılandırması yüklenemedi: %w", err)
	}
	return NewS3Store(s3.NewFromConfig(cfg), bucket, region, publicURL)
}

// Upload dosyayı içerik adresli anahtarla S3'e koyar.
func (s *S3Store) Upload(ctx context.Context, f FileHandle) (string, error) {
	key, data, err := contentKey(f)
	if err != nil {
		return "", err
	}
	objectKey := s.prefix + key

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(f.ContentType()),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata:      map[string]string{"original_name": f.Name()},
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", objectKey, err)
	}
	return s.publicURL + "/" + objectKey, nil
}

var (
	_ Uploader = (*DiskStore)(nil)
	_ Uploader = (*S3Store)(nil)
)
