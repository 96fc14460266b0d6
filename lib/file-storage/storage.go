package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"refdesk-backend/config"
	"refdesk-backend/db"
	attachmentstore "refdesk-backend/lib/file-storage/store"
	"refdesk-backend/models"
	attachmentapimodels "refdesk-backend/models/api/attachment"
	dbmodels "refdesk-backend/models/db"
)

const (
	OwnerAssignment = "assignment"
	OwnerReference  = "reference"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	Upload(ctx context.Context, userID, ownerType, ownerID, fileName, contentType string, file []byte) (id string, err error)
	Download(ctx context.Context, id string) (attachmentapimodels.AttachmentView, []byte, error)
	ListByOwner(ownerType, ownerID string) ([]attachmentapimodels.AttachmentView, error)
	Delete(ctx context.Context, userID, id string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
		store:    attachmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    attachmentstore.Provider
}

func (i impl) MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}

func (i impl) Upload(ctx context.Context, userID, ownerType, ownerID, fileName, contentType string, file []byte) (id string, err error) {
	logger := log.WithField("user_id", userID).WithField("owner_id", ownerID)
	if ownerType != OwnerAssignment && ownerType != OwnerReference {
		return "", models.NewValidationError("unsupported attachment owner", map[string]string{"owner_type": "unknown owner type"})
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := ownerType + "/" + ownerID + "/" + uuid.NewString()
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.WithError(err).Error("failed to upload file to object storage")
		return "", errors.Wrap(err, "failed to upload file")
	}
	id, err = i.store.Create(dbmodels.Attachment{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        int64(len(file)),
		UploadedBy:  userID,
	})
	if err != nil {
		logger.WithError(err).Error("failed to store attachment record")
		return "", err
	}
	logger.WithField("rec_id", id).Info("attachment uploaded")
	return id, nil
}

func (i impl) Download(ctx context.Context, id string) (attachmentapimodels.AttachmentView, []byte, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return attachmentapimodels.AttachmentView{}, nil, err
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return attachmentapimodels.AttachmentView{}, nil, errors.Wrap(err, "failed to get file from object storage")
	}
	defer object.Close()
	file, err := io.ReadAll(object)
	if err != nil {
		return attachmentapimodels.AttachmentView{}, nil, errors.Wrap(err, "failed to read file from object storage")
	}
	return attachmentapimodels.AttachmentConvert(*rec), file, nil
}

func (i impl) ListByOwner(ownerType, ownerID string) ([]attachmentapimodels.AttachmentView, error) {
	recList, err := i.store.ListByOwner(ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	result := make([]attachmentapimodels.AttachmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, attachmentapimodels.AttachmentConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(ctx context.Context, userID, id string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.UploadedBy != userID {
		return models.NewForbiddenError("only the uploader may delete an attachment")
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("failed to remove file from object storage")
		return errors.Wrap(err, "failed to remove file")
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("failed to delete attachment record")
		return err
	}
	logger.Info("attachment deleted")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.Attachment, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("attachment not found")
	}
	return rec, nil
}
