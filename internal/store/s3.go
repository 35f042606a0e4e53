package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/smithy-go"

	"github.com/assetpack/apo/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrS3Op = errors.New("operational error")
var ErrS3Unknown = errors.New("unknown error")

const (
	StoreTypeS3 = "s3"

	KeyStoreType               = "type"
	KeyStoreAWSBucket          = "aws_bucket"
	KeyStoreAWSRegion          = "aws_region"
	KeyStoreAWSAccessKeyId     = "aws_access_key_id"
	KeyStoreAWSSecretAccessKey = "aws_secret_access_key"
	KeyStoreAWSEndpoint        = "aws_endpoint"
	KeyStorePrefix             = "prefix"

	DefaultPrefix = "products"
)

type ConfigMap map[string]any

func (c ConfigMap) GetString(key string) (string, bool) {
	return utils.JsGetString(c, key)
}

// AsStoreConfig parses raw JSON into a ConfigMap.
func AsStoreConfig(bytes []byte) (ConfigMap, error) {
	var js any
	err := json.Unmarshal(bytes, &js)
	if err != nil {
		return nil, fmt.Errorf("invalid json config: %w", err)
	}
	sc, ok := js.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid json config. must be a map")
	}
	return sc, nil
}

// CreateS3StoreConfig validates raw JSON as an S3 store config and
// normalizes the type key.
func CreateS3StoreConfig(bytes []byte) (ConfigMap, error) {
	sc, err := AsStoreConfig(bytes)
	if err != nil {
		return nil, err
	}
	if sType, found := sc.GetString(KeyStoreType); found {
		if sType != StoreTypeS3 {
			return nil, fmt.Errorf("invalid json config. type must be \"s3\" or absent")
		}
	}

	sc[KeyStoreType] = StoreTypeS3

	_, found := sc.GetString(KeyStoreAWSBucket)
	if !found {
		return nil, fmt.Errorf("invalid json config. must have string \"aws_bucket\"")
	}

	_, foundAk := sc.GetString(KeyStoreAWSAccessKeyId)
	_, foundSk := sc.GetString(KeyStoreAWSSecretAccessKey)
	if (!foundAk && foundSk) || (foundAk && !foundSk) {
		return nil, fmt.Errorf("invalid json config. must have string \"aws_access_key_id\" and string \"aws_secret_access_key\" when setting credentials explicit")
	}

	return sc, nil
}

//go:generate mockery --name S3Client --outpkg s3mocks --output ../testutils/s3mocks
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	Options() s3.Options
}

// S3Store uploads packaged product folders to an S3 bucket under
// {prefix}/{productID}/{filename} keys.
type S3Store struct {
	region string
	bucket string
	prefix string

	client S3Client
}

func NewS3Store(cfg ConfigMap) (*S3Store, error) {

	bucket, found := cfg.GetString(KeyStoreAWSBucket)
	if !found {
		return nil, fmt.Errorf("cannot create an AWS S3 store. Invalid config. aws_bucket is either not found or not a string")
	}

	optFns := []func(*config.LoadOptions) error{}

	region, found := cfg.GetString(KeyStoreAWSRegion)
	if found {
		optFns = append(optFns, config.WithRegion(region))
	}

	ak, foundAk := cfg.GetString(KeyStoreAWSAccessKeyId)
	sk, foundSk := cfg.GetString(KeyStoreAWSSecretAccessKey)
	endpoint, foundEp := cfg.GetString(KeyStoreAWSEndpoint)
	if (!foundAk && foundSk) || (foundAk && !foundSk) {
		return nil, fmt.Errorf("cannot create an AWS S3 store. Invalid config. aws_access_key_id and aws_secret_access_key must be set both as type string when setting credentials explicit")
	}
	if foundAk {
		optFns = append(optFns, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(ak, sk, "")))
	}

	configS3, err := config.LoadDefaultConfig(context.Background(), optFns...)
	if foundEp {
		configS3.BaseEndpoint = aws.String(endpoint)
	}
	if err != nil {
		err := fmt.Errorf("error loading S3 configuration: %w", err)
		return nil, err
	}

	c := s3.NewFromConfig(configS3, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	prefix, found := cfg.GetString(KeyStorePrefix)
	if !found {
		prefix = DefaultPrefix
	}

	return &S3Store{
		bucket: bucket,
		region: region,
		prefix: prefix,
		client: c,
	}, nil
}

func (s *S3Store) Bucket() string {
	return s.bucket
}

func (s *S3Store) Prefix() string {
	return s.prefix
}

// UploadProduct uploads every regular file in dir under
// {prefix}/{productID}/{filename}. Individual file failures are logged and
// skipped; the error reports only folder-level failures, so a partially
// uploaded folder still counts as attempted.
func (s *S3Store) UploadProduct(ctx context.Context, dir, productID string) error {
	log := utils.GetLogger(ctx, "S3Store")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read product folder %s: %w", dir, err)
	}

	uploaded := 0
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !e.Type().IsRegular() {
			continue
		}
		localPath := filepath.Join(dir, e.Name())
		key := path.Join(s.prefix, productID, e.Name())

		data, err := os.ReadFile(localPath)
		if err != nil {
			log.Warn("failed to read file for upload", "file", localPath, "error", err.Error())
			continue
		}
		contentType := utils.DetectMediaType("", e.Name(), utils.ReadCloserGetterFromBytes(data))
		if err := s3WriteObject(ctx, s.client, s.bucket, key, data, contentType); err != nil {
			log.Warn("failed to upload file", "file", localPath, "key", key, "error", err.Error())
			continue
		}
		uploaded++
		log.Info("uploaded file", "bucket", s.bucket, "key", key)
	}

	log.Debug(fmt.Sprintf("uploaded %d file(s) for product %s", uploaded, productID))
	return nil
}

func s3WriteObject(ctx context.Context, client S3Client, bucket string, objectKey string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	if err != nil {
		utils.GetLogger(ctx, "S3Store").Warn("failed to write object to S3", "object", objectKey, "bucket", bucket, "error", err.Error())

		var oe *smithy.OperationError
		if errors.As(err, &oe) {
			return fmt.Errorf("%w, object: %s error: %s", ErrS3Op, objectKey, err.Error())
		}
		return fmt.Errorf("%w, object: %s error: %s", ErrS3Unknown, objectKey, err.Error())
	}

	msg := fmt.Sprintf("object %s successfully written to S3: bucket %s", objectKey, bucket)
	utils.GetLogger(ctx, "S3Store").Debug(msg)

	return nil
}
