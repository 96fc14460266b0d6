package initializers

import (
	"context"
	filestorage "refdesk-backend/lib/file-storage"
	s3client "refdesk-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}

	s3client.Client = minioClient
	filestorage.NewInstance(minioClient)

	err = filestorage.Instance.MakeBucket(ctx)
	if err != nil {
		log.WithError(err).Error("failed to ensure the attachment bucket")
	}
}
