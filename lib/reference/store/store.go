package referencestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"refdesk-backend/models"
	referenceapimodels "refdesk-backend/models/api/reference"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Reference) (id string, err error)
	GetByID(id string) (*dbmodels.Reference, error)
	ExistByRefNumber(refNumber string) (bool, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(userID string, filter referenceapimodels.ReferenceFilter) ([]dbmodels.Reference, int64, error)
	// ListAll applies the filter without pagination, for register exports.
	ListAll(userID string, filter referenceapimodels.ReferenceFilter) ([]dbmodels.Reference, error)
	// ArchiveClosedBefore moves every closed reference older than the cutoff
	// into the archived state. Repeated runs are no-ops.
	ArchiveClosedBefore(cutoff time.Time) (int64, error)
	// PurgeArchivedBefore hard-deletes references archived before the cutoff.
	PurgeArchivedBefore(cutoff time.Time) (int64, error)
	ListOverdue(now time.Time) ([]dbmodels.Reference, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		DB: DB,
	}
}

type impl struct {
	DB *gorm.DB
}

func (i impl) Create(rec dbmodels.Reference) (id string, err error) {
	err = i.DB.Omit("Holder", "Creator").Create(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to create reference record")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Reference, error) {
	var rec dbmodels.Reference
	err := i.DB.Preload("Holder").Preload("Creator").Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reference record")
	}
	return &rec, nil
}

func (i impl) ExistByRefNumber(refNumber string) (bool, error) {
	var count int64
	err := i.DB.Model(&dbmodels.Reference{}).Where("ref_number = ?", refNumber).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check reference number")
	}
	return count > 0, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	result := i.DB.Model(&dbmodels.Reference{}).Where("id = ?", id).Updates(updMap)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update reference record")
	}
	if result.RowsAffected == 0 {
		return errors.New("reference record not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	result := i.DB.Where("id = ?", id).Delete(&dbmodels.Reference{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete reference record")
	}
	if result.RowsAffected == 0 {
		return errors.New("reference record not found")
	}
	return nil
}

func (i impl) List(userID string, filter referenceapimodels.ReferenceFilter) ([]dbmodels.Reference, int64, error) {
	query := i.applyFilter(userID, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count reference records")
	}
	page, limit := filter.GetPage()
	var recList []dbmodels.Reference
	err := query.Preload("Holder").Preload("Creator").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recList).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list reference records")
	}
	return recList, count, nil
}

func (i impl) ListAll(userID string, filter referenceapimodels.ReferenceFilter) ([]dbmodels.Reference, error) {
	var recList []dbmodels.Reference
	err := i.applyFilter(userID, filter).
		Preload("Holder").Preload("Creator").
		Order("created_at desc").
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reference records")
	}
	return recList, nil
}

func (i impl) applyFilter(userID string, filter referenceapimodels.ReferenceFilter) *gorm.DB {
	query := i.DB.Model(&dbmodels.Reference{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.HeldByMe {
		query = query.Where("held_by = ?", userID)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("ref_number ILIKE ? OR subject ILIKE ?", search, search)
	}
	return query
}

func (i impl) ArchiveClosedBefore(cutoff time.Time) (int64, error) {
	now := time.Now()
	result := i.DB.Model(&dbmodels.Reference{}).
		Where("status = ? AND closed_at < ?", models.ReferenceClosed, cutoff).
		Updates(map[string]interface{}{
			"status":      models.ReferenceArchived,
			"archived_at": now,
		})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to archive reference records")
	}
	return result.RowsAffected, nil
}

func (i impl) PurgeArchivedBefore(cutoff time.Time) (int64, error) {
	result := i.DB.Where("status = ? AND archived_at < ?", models.ReferenceArchived, cutoff).
		Delete(&dbmodels.Reference{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to purge reference records")
	}
	return result.RowsAffected, nil
}

func (i impl) ListOverdue(now time.Time) ([]dbmodels.Reference, error) {
	var recList []dbmodels.Reference
	err := i.DB.Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
		[]models.ReferenceStatus{models.ReferenceOpen, models.ReferenceInProgress}, now).
		Find(&recList).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list overdue reference records")
	}
	return recList, nil
}
