package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var s3Client *s3.Client
var presignClient *s3.PresignClient
var s3Bucket string
var s3Region string

const (
	// Durée de validité des URLs signées
	UploadURLExpiry = 15 * time.Minute
	ReadURLExpiry   = 1 * time.Hour

	// Timeout des appels sortants vers S3
	signTimeout = 5 * time.Second
)

func InitS3() error {
	s3Bucket = os.Getenv("AWS_BUCKET_NAME")
	s3Region = os.Getenv("AWS_REGION")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(s3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("chargement config AWS: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	presignClient = s3.NewPresignClient(s3Client)
	return nil
}

// NormalizeKey garantit que la clé commence par le segment "images/"
func NormalizeKey(key string) string {
	segments := []string{}
	for _, s := range strings.Split(key, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 || segments[0] != "images" {
		segments = append([]string{"images"}, segments...)
	}
	return strings.Join(segments, "/")
}

// NewObjectKey génère une clé unique sous le préfixe du propriétaire :
// images/{ownerID}/{horodatage}_{uuid}.{extension}
func NewObjectKey(ownerID, contentType string) string {
	extension := strings.TrimPrefix(contentType, "image/")
	timestamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("images/%s/%s_%s.%s", ownerID, timestamp, uuid.New().String(), extension)
}

// GenerateUploadURL produit une URL signée d'upload (PUT direct vers S3)
// ainsi qu'une URL de lecture et la clé de stockage à persister.
func GenerateUploadURL(ownerID, contentType string) (uploadURL, publicURL, key string, err error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", "", fmt.Errorf("type de contenu invalide : %s", contentType)
	}
	if presignClient == nil {
		return "", "", "", fmt.Errorf("client S3 non initialisé")
	}

	key = NewObjectKey(ownerID, contentType)

	ctx, cancel := context.WithTimeout(context.Background(), signTimeout)
	defer cancel()

	putReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadURLExpiry))
	if err != nil {
		return "", "", "", fmt.Errorf("signature URL upload : %w", err)
	}

	getReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ReadURLExpiry))
	if err != nil {
		return "", "", "", fmt.Errorf("signature URL lecture : %w", err)
	}

	return putReq.URL, getReq.URL, key, nil
}

// GetImageURL retourne une URL de lecture signée valable 1 heure.
// La clé persistée reste la clé brute, jamais l'URL signée.
func GetImageURL(key string) (string, error) {
	if presignClient == nil {
		return "", fmt.Errorf("client S3 non initialisé")
	}

	ctx, cancel := context.WithTimeout(context.Background(), signTimeout)
	defer cancel()

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(NormalizeKey(key)),
	}, s3.WithPresignExpires(ReadURLExpiry))
	if err != nil {
		return "", fmt.Errorf("signature URL lecture : %w", err)
	}

	return req.URL, nil
}

func DeleteFromS3(key string) error {
	if s3Client == nil {
		return fmt.Errorf("client S3 non initialisé")
	}

	ctx, cancel := context.WithTimeout(context.Background(), signTimeout)
	defer cancel()

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(NormalizeKey(key)),
	})
	if err != nil {
		return fmt.Errorf("erreur suppression S3 : %w", err)
	}
	return nil
}
