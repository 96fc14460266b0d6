package workflowhandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"refdesk-backend/db"
	audithandler "refdesk-backend/lib/audit"
	templatehandler "refdesk-backend/lib/form-template"
	templatestore "refdesk-backend/lib/form-template/store"
	notificationhandler "refdesk-backend/lib/notification"
	settingshandler "refdesk-backend/lib/settings"
	usersstore "refdesk-backend/lib/users/store"
	"refdesk-backend/lib/utils/lock"
	assignmentstore "refdesk-backend/lib/workflow/assignment-store"
	submissionstore "refdesk-backend/lib/workflow/submission-store"
	"refdesk-backend/models"
	formapimodels "refdesk-backend/models/api/form"
	dbmodels "refdesk-backend/models/db"
)

const lockWait = 5 * time.Second

type Provider interface {
	SaveDraft(ctx context.Context, userID, ip string, data formapimodels.DraftData) (formapimodels.AssignmentView, error)
	Delegate(ctx context.Context, userID string, data formapimodels.DelegateData) (formapimodels.AssignmentView, error)
	MarkBack(ctx context.Context, userID string, data formapimodels.MarkBackData) (formapimodels.AssignmentView, error)
	Approve(ctx context.Context, userID, designation string, data formapimodels.ApproveData) (formapimodels.AssignmentView, error)
	MarkFinal(ctx context.Context, userID, designation string, data formapimodels.AssignmentActionData) (formapimodels.AssignmentView, error)
	SubmitToDistributor(ctx context.Context, userID string, data formapimodels.AssignmentActionData) (formapimodels.AssignmentView, error)
	Chain(assignmentID string) ([]formapimodels.AssignmentView, error)
	Inbox(userID string, filter formapimodels.InboxFilter) ([]formapimodels.AssignmentView, error)
	Sent(userID string, filter formapimodels.InboxFilter) ([]formapimodels.AssignmentView, error)
	MarkRead(userID, assignmentID string) error
	GetSubmission(userID string, role models.UserRole, id string) (formapimodels.SubmissionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		stores:   newStores(db.DB),
		db:       db.DB,
		settings: settingshandler.Instance,
		notifier: notificationhandler.Instance,
		audit:    audithandler.Instance,
	}
}

// stores bundles every store the engine touches so a transaction can swap
// them out for tx-bound instances in one place.
type stores struct {
	assignments assignmentstore.Provider
	submissions submissionstore.Provider
	templates   templatestore.Provider
	users       usersstore.Provider
}

func newStores(DB *gorm.DB) stores {
	return stores{
		assignments: assignmentstore.NewInstance(DB),
		submissions: submissionstore.NewInstance(DB),
		templates:   templatestore.NewInstance(DB),
		users:       usersstore.NewInstance(DB),
	}
}

type impl struct {
	stores
	db       *gorm.DB
	settings settingshandler.Provider
	notifier notificationhandler.Provider
	audit    audithandler.Provider
}

func (i impl) inTx(fn func(s stores) error) error {
	if i.db == nil {
		return fn(i.stores)
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		return fn(newStores(tx))
	})
}

// withLock serializes transitions on a single assignment. Two concurrent
// operations on the same record never interleave their read-modify-write.
func (i impl) withLock(ctx context.Context, assignmentID string, fn func(s stores) error) error {
	taken, err := lock.WithDelay(ctx, "assignment:"+assignmentID, lockWait, func() error {
		return i.inTx(fn)
	})
	if err != nil {
		return err
	}
	if !taken {
		return models.NewConflictError("assignment is busy, retry the operation")
	}
	return nil
}

func (i impl) SaveDraft(ctx context.Context, userID, ip string, data formapimodels.DraftData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID)
	rec, err := i.resolveAssignment(i.stores, userID, data.AssignmentID, data.TemplateID)
	if err != nil {
		return view, err
	}
	err = i.withLock(ctx, rec.ID, func(s stores) error {
		rec, err := i.loadHeld(s, userID, rec.ID)
		if err != nil {
			return err
		}
		nextStatus, err := models.CheckTransition(rec.Status, rec.IsFinalized, models.ActionSaveDraft)
		if err != nil {
			return err
		}
		template, err := s.templates.GetByID(rec.TemplateID)
		if err != nil {
			return err
		}
		if template == nil {
			return models.NewNotFoundError("template not found")
		}
		if err := templatehandler.ValidateSubmission(template.Fields, data.Data); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status": nextStatus,
		}
		if rec.DataID == nil {
			submissionID, err := s.submissions.Create(dbmodels.Submission{
				TemplateID:  rec.TemplateID,
				SubmittedBy: userID,
				Data:        data.Data,
				IPAddress:   ip,
			})
			if err != nil {
				return err
			}
			updMap["data_id"] = submissionID
			updMap["last_action"] = models.LastActionDraftSaved
		} else {
			err = s.submissions.Update(*rec.DataID, map[string]interface{}{"data": data.Data})
			if err != nil {
				return err
			}
			updMap["last_action"] = models.LastActionDraftUpdated
		}
		return s.assignments.Update(rec.ID, updMap)
	})
	if err != nil {
		logger.WithError(err).Warn("failed to save draft")
		return view, err
	}
	logger.WithField("rec_id", rec.ID).Info("draft saved")
	i.audit.Log(userID, "assignment", rec.ID, "save_draft", dbmodels.EntityChanges{Description: "draft saved"})
	return i.freshView(rec.ID)
}

func (i impl) Delegate(ctx context.Context, userID string, data formapimodels.DelegateData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID)
	if data.AssignedToID == userID {
		return view, models.NewForbiddenError("a form can not be delegated to yourself")
	}
	parent, err := i.resolveAssignment(i.stores, userID, data.ParentAssignmentID, data.TemplateID)
	if err != nil {
		return view, err
	}
	target, err := i.users.GetByID(data.AssignedToID)
	if err != nil {
		return view, err
	}
	if target == nil || !target.IsActive {
		return view, models.NewNotFoundError("target user not found")
	}
	snapshot, err := i.settings.Snapshot()
	if err != nil {
		return view, err
	}
	var childID string
	err = i.withLock(ctx, parent.ID, func(s stores) error {
		parent, err := i.loadHeld(s, userID, parent.ID)
		if err != nil {
			return err
		}
		if _, err := models.CheckTransition(parent.Status, parent.IsFinalized, models.ActionDelegate); err != nil {
			return err
		}
		if parent.DelegationChain.Contains(data.AssignedToID) && !snapshot.AllowChainRedelegation {
			return models.NewConflictError("target user already appears in the delegation chain")
		}
		chain := append(dbmodels.UserIDList{}, parent.DelegationChain...)
		chain = append(chain, userID)
		parentID := parent.ID
		childID, err = s.assignments.Create(dbmodels.Assignment{
			TemplateID:         parent.TemplateID,
			AssignedTo:         data.AssignedToID,
			AssignedBy:         userID,
			DataID:             parent.DataID,
			Status:             models.AssignmentPending,
			ParentAssignmentID: &parentID,
			DelegationChain:    chain,
			IsHolder:           true,
			Remarks:            data.Remarks,
			Instructions:       parent.Instructions,
		})
		if err != nil {
			return err
		}
		return s.assignments.Update(parent.ID, map[string]interface{}{
			"last_action": models.LastActionDelegated,
			"is_holder":   false,
		})
	})
	if err != nil {
		logger.WithError(err).Warn("failed to delegate assignment")
		return view, err
	}
	logger.WithField("rec_id", childID).Info("assignment delegated")
	i.notifier.Send(data.AssignedToID, models.NotifyFormDelegated, "A form was delegated to you",
		"You are the next holder of a form in a delegation chain.", childID)
	i.audit.Log(userID, "assignment", childID, "delegate", dbmodels.EntityChanges{Description: "assignment delegated"})
	return i.freshView(childID)
}

func (i impl) MarkBack(ctx context.Context, userID string, data formapimodels.MarkBackData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID).WithField("rec_id", data.AssignmentID)
	var targetUserID, targetRecID string
	err = i.withLock(ctx, data.AssignmentID, func(s stores) error {
		rec, err := i.loadHeld(s, userID, data.AssignmentID)
		if err != nil {
			return err
		}
		if _, err := models.CheckTransition(rec.Status, rec.IsFinalized, models.ActionMarkBack); err != nil {
			return err
		}
		returnTo := data.ReturnToID
		if returnTo == "" {
			returnTo = rec.DelegationChain.Last()
		}
		if returnTo == "" {
			return models.NewConflictError("assignment has no previous holder to return to")
		}
		target, err := i.findInLineage(s, rec, returnTo)
		if err != nil {
			return err
		}
		err = s.assignments.Update(target.ID, map[string]interface{}{
			"is_holder":   true,
			"is_read":     false,
			"last_action": models.LastActionMarkedBack,
			"remarks":     data.Remarks,
		})
		if err != nil {
			return err
		}
		targetUserID, targetRecID = target.AssignedTo, target.ID
		return s.assignments.Update(rec.ID, map[string]interface{}{
			"is_holder":   false,
			"last_action": models.LastActionMarkedBack,
		})
	})
	if err != nil {
		logger.WithError(err).Warn("failed to mark assignment back")
		return view, err
	}
	logger.Info("assignment marked back")
	i.notifier.Send(targetUserID, models.NotifyFormMarkedBack, "A form was returned to you",
		"A form you delegated has been marked back to you.", targetRecID)
	i.audit.Log(userID, "assignment", data.AssignmentID, "mark_back", dbmodels.EntityChanges{Description: "assignment marked back"})
	return i.freshView(data.AssignmentID)
}

func (i impl) Approve(ctx context.Context, userID, designation string, data formapimodels.ApproveData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID).WithField("rec_id", data.AssignmentID)
	snapshot, err := i.settings.Snapshot()
	if err != nil {
		return view, err
	}
	if !snapshot.HasApprovalAuthority(designation) {
		return view, models.NewForbiddenError("your designation carries no approval authority")
	}
	var assignerID string
	err = i.withLock(ctx, data.AssignmentID, func(s stores) error {
		rec, err := i.loadHeld(s, userID, data.AssignmentID)
		if err != nil {
			return err
		}
		nextStatus, err := models.CheckTransition(rec.Status, rec.IsFinalized, models.ActionApprove)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":      nextStatus,
			"last_action": models.LastActionApproved,
			"remarks":     data.Remarks,
		}
		if data.Finalize {
			updMap["is_finalized"] = true
		}
		assignerID = rec.AssignedBy
		return s.assignments.Update(rec.ID, updMap)
	})
	if err != nil {
		logger.WithError(err).Warn("failed to approve assignment")
		return view, err
	}
	logger.Info("assignment approved")
	i.notifier.Send(assignerID, models.NotifyFormApproved, "Form approved",
		"A form you handed over has been approved.", data.AssignmentID)
	i.audit.Log(userID, "assignment", data.AssignmentID, "approve", dbmodels.EntityChanges{Description: "assignment approved"})
	return i.freshView(data.AssignmentID)
}

func (i impl) MarkFinal(ctx context.Context, userID, designation string, data formapimodels.AssignmentActionData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID).WithField("rec_id", data.AssignmentID)
	snapshot, err := i.settings.Snapshot()
	if err != nil {
		return view, err
	}
	if !snapshot.HasApprovalAuthority(designation) {
		return view, models.NewForbiddenError("your designation carries no approval authority")
	}
	var assignerID string
	err = i.withLock(ctx, data.AssignmentID, func(s stores) error {
		rec, err := i.loadHeld(s, userID, data.AssignmentID)
		if err != nil {
			return err
		}
		if _, err := models.CheckTransition(rec.Status, rec.IsFinalized, models.ActionMarkFinal); err != nil {
			return err
		}
		lastAction := models.LastActionAutoApproved
		if rec.Status == models.AssignmentApproved {
			lastAction = models.LastActionApproved
		}
		assignerID = rec.AssignedBy
		return s.assignments.Update(rec.ID, map[string]interface{}{
			"is_finalized": true,
			"last_action":  lastAction,
			"remarks":      data.Remarks,
		})
	})
	if err != nil {
		logger.WithError(err).Warn("failed to finalize assignment")
		return view, err
	}
	logger.Info("assignment finalized")
	i.notifier.Send(assignerID, models.NotifyFormFinalized, "Form finalized",
		"A form in your chain has been finalized and locked.", data.AssignmentID)
	i.audit.Log(userID, "assignment", data.AssignmentID, "mark_final", dbmodels.EntityChanges{Description: "assignment finalized"})
	return i.freshView(data.AssignmentID)
}

func (i impl) SubmitToDistributor(ctx context.Context, userID string, data formapimodels.AssignmentActionData) (view formapimodels.AssignmentView, err error) {
	logger := log.WithField("user_id", userID).WithField("rec_id", data.AssignmentID)
	var distributorID string
	err = i.withLock(ctx, data.AssignmentID, func(s stores) error {
		rec, err := i.loadHeld(s, userID, data.AssignmentID)
		if err != nil {
			return err
		}
		if !rec.IsFinalized {
			return models.NewConflictError("assignment must be finalized before submission")
		}
		nextStatus, err := models.CheckTransition(rec.Status, rec.IsFinalized, models.ActionSubmit)
		if err != nil {
			return err
		}
		root, err := i.lineageRoot(s, rec)
		if err != nil {
			return err
		}
		distributorID = root.AssignedBy
		return s.assignments.Update(rec.ID, map[string]interface{}{
			"status":      nextStatus,
			"last_action": models.LastActionSubmitted,
			"remarks":     data.Remarks,
		})
	})
	if err != nil {
		logger.WithError(err).Warn("failed to submit assignment")
		return view, err
	}
	logger.Info("assignment submitted to distributor")
	i.notifier.Send(distributorID, models.NotifyFormSubmitted, "Form submitted",
		"A form you distributed has been completed and submitted.", data.AssignmentID)
	i.audit.Log(userID, "assignment", data.AssignmentID, "submit", dbmodels.EntityChanges{Description: "assignment submitted to distributor"})
	return i.freshView(data.AssignmentID)
}

func (i impl) Chain(assignmentID string) ([]formapimodels.AssignmentView, error) {
	chain, err := i.assignments.Chain(assignmentID)
	if err != nil {
		log.WithField("rec_id", assignmentID).WithError(err).Error("failed to load assignment chain")
		return nil, err
	}
	if len(chain) == 0 {
		return nil, models.NewNotFoundError("assignment not found")
	}
	// Chain walks leaf to root; the caller reads it root first.
	result := make([]formapimodels.AssignmentView, 0, len(chain))
	for idx := len(chain) - 1; idx >= 0; idx-- {
		result = append(result, formapimodels.AssignmentConvert(chain[idx]))
	}
	return result, nil
}

func (i impl) Inbox(userID string, filter formapimodels.InboxFilter) ([]formapimodels.AssignmentView, error) {
	page, limit := filter.GetPage()
	recList, err := i.assignments.ListInbox(userID, filter.OnlyUnread, "", page, limit)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list inbox")
		return nil, err
	}
	return convertAssignments(recList), nil
}

func (i impl) Sent(userID string, filter formapimodels.InboxFilter) ([]formapimodels.AssignmentView, error) {
	page, limit := filter.GetPage()
	recList, err := i.assignments.ListSent(userID, page, limit)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to list sent assignments")
		return nil, err
	}
	return convertAssignments(recList), nil
}

func (i impl) MarkRead(userID, assignmentID string) error {
	rec, err := i.loadOwned(i.stores, userID, assignmentID)
	if err != nil {
		return err
	}
	if rec.IsRead {
		return nil
	}
	return i.assignments.Update(rec.ID, map[string]interface{}{"is_read": true})
}

func (i impl) GetSubmission(userID string, role models.UserRole, id string) (formapimodels.SubmissionView, error) {
	rec, err := i.submissions.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to load submission")
		return formapimodels.SubmissionView{}, err
	}
	if rec == nil {
		return formapimodels.SubmissionView{}, models.NewNotFoundError("submission not found")
	}
	allowed, err := i.canReadSubmission(userID, role, rec)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("failed to check submission access")
		return formapimodels.SubmissionView{}, err
	}
	if !allowed {
		return formapimodels.SubmissionView{}, models.NewForbiddenError("submission belongs to another delegation chain")
	}
	return formapimodels.SubmissionConvert(*rec), nil
}

// canReadSubmission limits reads to the submitter, the template creator,
// anyone on the delegation chain and admins.
func (i impl) canReadSubmission(userID string, role models.UserRole, rec *dbmodels.Submission) (bool, error) {
	if role.IsAdmin() || rec.SubmittedBy == userID {
		return true, nil
	}
	template, err := i.templates.GetByID(rec.TemplateID)
	if err != nil {
		return false, err
	}
	if template != nil && template.CreatedBy == userID {
		return true, nil
	}
	chain, err := i.assignments.ListByData(rec.ID)
	if err != nil {
		return false, err
	}
	for _, asg := range chain {
		if asg.AssignedTo == userID || asg.AssignedBy == userID {
			return true, nil
		}
	}
	return false, nil
}

// resolveAssignment finds the record an operation addresses, by id when given
// and by (template, caller) otherwise.
func (i impl) resolveAssignment(s stores, userID, assignmentID, templateID string) (*dbmodels.Assignment, error) {
	if assignmentID != "" {
		return i.loadOwned(s, userID, assignmentID)
	}
	rec, err := s.assignments.GetByTemplateAndAssignee(templateID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("no assignment for this template")
	}
	return rec, nil
}

func (i impl) loadOwned(s stores, userID, id string) (*dbmodels.Assignment, error) {
	rec, err := s.assignments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("assignment not found")
	}
	if rec.AssignedTo != userID {
		return nil, models.NewForbiddenError("assignment belongs to another user")
	}
	return rec, nil
}

// loadHeld is loadOwned plus the current-holder check every mutating
// transition requires. A record handed over by delegate or mark-back stays
// readable but is no longer actionable.
func (i impl) loadHeld(s stores, userID, id string) (*dbmodels.Assignment, error) {
	rec, err := i.loadOwned(s, userID, id)
	if err != nil {
		return nil, err
	}
	if !rec.IsHolder {
		return nil, models.NewConflictError("assignment has been handed over and is no longer actionable")
	}
	return rec, nil
}

// findInLineage walks parent links upward until it meets the assignment held
// by the requested user.
func (i impl) findInLineage(s stores, rec *dbmodels.Assignment, targetUserID string) (*dbmodels.Assignment, error) {
	current := rec
	for current.ParentAssignmentID != nil {
		parent, err := s.assignments.GetByID(*current.ParentAssignmentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		if parent.AssignedTo == targetUserID {
			return parent, nil
		}
		current = parent
	}
	return nil, models.NewNotFoundError("no previous holder with that user in the chain")
}

func (i impl) lineageRoot(s stores, rec *dbmodels.Assignment) (*dbmodels.Assignment, error) {
	current := rec
	for current.ParentAssignmentID != nil {
		parent, err := s.assignments.GetByID(*current.ParentAssignmentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		current = parent
	}
	return current, nil
}

func (i impl) freshView(id string) (formapimodels.AssignmentView, error) {
	rec, err := i.assignments.GetByID(id)
	if err != nil {
		return formapimodels.AssignmentView{}, err
	}
	if rec == nil {
		return formapimodels.AssignmentView{}, models.NewNotFoundError("assignment not found")
	}
	return formapimodels.AssignmentConvert(*rec), nil
}

func convertAssignments(recList []dbmodels.Assignment) []formapimodels.AssignmentView {
	result := make([]formapimodels.AssignmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, formapimodels.AssignmentConvert(rec))
	}
	return result
}
