package uploads

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hitkalariya/portfolio-api/internal/config"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SignedUpload is everything the admin frontend needs to PUT an image
// straight to the bucket without the file passing through this server.
type SignedUpload struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresAt int64  `json:"expires_at"`
}

type Signer struct {
	cfg     config.UploadsConfig
	presign *s3.PresignClient
}

func NewSigner(ctx context.Context, cfg config.UploadsConfig) (*Signer, error) {
	if cfg.Bucket == "" || cfg.SecretID == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("uploads bucket/secret_id/secret_key are required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.SecretID, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Signer{cfg: cfg, presign: s3.NewPresignClient(client)}, nil
}

// SignUpload issues a presigned PUT URL for one object. The key embeds a
// random component so concurrent uploads of the same filename never
// collide.
func (s *Signer) SignUpload(ctx context.Context, folder, filename, contentType string) (*SignedUpload, error) {
	filename = unsafeFilenameChars.ReplaceAllString(filename, "_")
	if filename == "" || strings.Trim(filename, "._") == "" {
		return nil, appErr.ErrInvalid
	}
	expire := time.Duration(s.cfg.ExpireSecond) * time.Second
	key := path.Join(s.cfg.Prefix, folder, time.Now().Format("2006/01")+"-"+randomSuffix()+"-"+filename)
	key = strings.TrimPrefix(key, "/")

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(expire))
	if err != nil {
		return nil, err
	}

	publicURL := ""
	if s.cfg.PublicURL != "" {
		publicURL = strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	return &SignedUpload{
		URL:       req.URL,
		Method:    req.Method,
		Key:       key,
		PublicURL: publicURL,
		ExpiresAt: time.Now().Add(expire).Unix(),
	}, nil
}

func randomSuffix() string {
	bytes := make([]byte, 6)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
