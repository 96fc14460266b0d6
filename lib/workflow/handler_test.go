package workflowhandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	templatestore "refdesk-backend/lib/form-template/store"
	usersstore "refdesk-backend/lib/users/store"
	assignmentstore "refdesk-backend/lib/workflow/assignment-store"
	submissionstore "refdesk-backend/lib/workflow/submission-store"
	"refdesk-backend/models"
	auditapimodels "refdesk-backend/models/api/audit"
	formapimodels "refdesk-backend/models/api/form"
	notificationapimodels "refdesk-backend/models/api/notification"
	settingsapimodels "refdesk-backend/models/api/settings"
	dbmodels "refdesk-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeAssignments struct {
	seq  int
	recs map[string]dbmodels.Assignment
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{recs: map[string]dbmodels.Assignment{}}
}

func (f *fakeAssignments) Create(rec dbmodels.Assignment) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("asg-%v", f.seq)
	rec.CreatedAt = time.Now()
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeAssignments) GetByID(id string) (*dbmodels.Assignment, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeAssignments) GetByTemplateAndAssignee(templateID, userID string) (*dbmodels.Assignment, error) {
	var found *dbmodels.Assignment
	for id := range f.recs {
		rec := f.recs[id]
		if rec.TemplateID != templateID || rec.AssignedTo != userID {
			continue
		}
		if found == nil || rec.CreatedAt.After(found.CreatedAt) {
			found = &rec
		}
	}
	return found, nil
}

func (f *fakeAssignments) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("assignment not found")
	}
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.AssignmentStatus)
		case "last_action":
			rec.LastAction = value.(models.LastAction)
		case "is_holder":
			rec.IsHolder = value.(bool)
		case "is_read":
			rec.IsRead = value.(bool)
		case "is_finalized":
			rec.IsFinalized = value.(bool)
		case "remarks":
			rec.Remarks = value.(string)
		case "data_id":
			dataID := value.(string)
			rec.DataID = &dataID
		}
	}
	f.recs[id] = rec
	return nil
}

func (f *fakeAssignments) ListInbox(userID string, onlyUnread bool, status models.AssignmentStatus, page, limit int) ([]dbmodels.Assignment, error) {
	result := []dbmodels.Assignment{}
	for id := range f.recs {
		rec := f.recs[id]
		if rec.AssignedTo != userID {
			continue
		}
		if onlyUnread && rec.IsRead {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (f *fakeAssignments) ListSent(userID string, page, limit int) ([]dbmodels.Assignment, error) {
	result := []dbmodels.Assignment{}
	for id := range f.recs {
		rec := f.recs[id]
		if rec.AssignedBy == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeAssignments) ListByTemplate(templateID string) ([]dbmodels.Assignment, error) {
	result := []dbmodels.Assignment{}
	for id := range f.recs {
		rec := f.recs[id]
		if rec.TemplateID == templateID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeAssignments) ListByData(dataID string) ([]dbmodels.Assignment, error) {
	result := []dbmodels.Assignment{}
	for id := range f.recs {
		rec := f.recs[id]
		if rec.DataID != nil && *rec.DataID == dataID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeAssignments) CountByTemplate(templateID string) (int64, error) {
	list, _ := f.ListByTemplate(templateID)
	return int64(len(list)), nil
}

func (f *fakeAssignments) Chain(id string) ([]dbmodels.Assignment, error) {
	result := []dbmodels.Assignment{}
	current, ok := f.recs[id]
	for ok {
		result = append(result, current)
		if current.ParentAssignmentID == nil {
			break
		}
		current, ok = f.recs[*current.ParentAssignmentID]
	}
	return result, nil
}

type fakeSubmissions struct {
	seq  int
	recs map[string]dbmodels.Submission
}

func newFakeSubmissions() *fakeSubmissions {
	return &fakeSubmissions{recs: map[string]dbmodels.Submission{}}
}

func (f *fakeSubmissions) Create(rec dbmodels.Submission) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("sub-%v", f.seq)
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeSubmissions) GetByID(id string) (*dbmodels.Submission, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeSubmissions) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("submission not found")
	}
	if data, exists := updMap["data"]; exists {
		rec.Data = data.(dbmodels.SubmissionData)
	}
	f.recs[id] = rec
	return nil
}

func (f *fakeSubmissions) ListByTemplate(templateID string, page, limit int) ([]dbmodels.Submission, error) {
	result := []dbmodels.Submission{}
	for id := range f.recs {
		rec := f.recs[id]
		if rec.TemplateID == templateID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeSubmissions) CountByTemplate(templateID string) (int64, error) {
	list, _ := f.ListByTemplate(templateID, 1, 100)
	return int64(len(list)), nil
}

type fakeTemplates struct {
	recs map[string]dbmodels.Template
}

func (f *fakeTemplates) Create(rec dbmodels.Template) (string, error) { return rec.ID, nil }

func (f *fakeTemplates) GetByID(id string) (*dbmodels.Template, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTemplates) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeTemplates) Delete(id string) error                               { return nil }
func (f *fakeTemplates) ListOwned(userID string, page, limit int) ([]dbmodels.Template, error) {
	return nil, nil
}
func (f *fakeTemplates) ListSharedWith(userID string, page, limit int) ([]dbmodels.Template, error) {
	return nil, nil
}
func (f *fakeTemplates) ListActive(page, limit int) ([]dbmodels.Template, error) { return nil, nil }

type fakeUsers struct {
	recs map[string]dbmodels.User
}

func (f *fakeUsers) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f *fakeUsers) GetByID(id string) (*dbmodels.User, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeUsers) GetByEmail(email string) (*dbmodels.User, error)       { return nil, nil }
func (f *fakeUsers) ExistByEmail(email string) (bool, error)               { return false, nil }
func (f *fakeUsers) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeUsers) List() ([]dbmodels.User, error)                        { return nil, nil }

type fakeSettings struct {
	snapshot models.SettingsSnapshot
}

func (f *fakeSettings) UpdateSettingValue(code models.SystemSettingCode, value string) error {
	return nil
}
func (f *fakeSettings) GetList() ([]settingsapimodels.SystemSettingView, error) { return nil, nil }
func (f *fakeSettings) Snapshot() (models.SettingsSnapshot, error)              { return f.snapshot, nil }

type sentNotification struct {
	UserID string
	Code   models.NotificationCode
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Send(userID string, code models.NotificationCode, title, body, refID string) {
	f.sent = append(f.sent, sentNotification{UserID: userID, Code: code})
}
func (f *fakeNotifier) List(userID string, onlyUnread bool, page, limit int) ([]notificationapimodels.NotificationView, error) {
	return nil, nil
}
func (f *fakeNotifier) UnreadCount(userID string) (int64, error) { return 0, nil }
func (f *fakeNotifier) MarkRead(userID, id string) error         { return nil }
func (f *fakeNotifier) MarkAllRead(userID string) error          { return nil }

type fakeAudit struct{}

func (f *fakeAudit) Log(userID, entity, entityID, action string, changes dbmodels.EntityChanges) {}
func (f *fakeAudit) List(filter auditapimodels.AuditFilter) ([]auditapimodels.AuditLogView, int64, error) {
	return nil, 0, nil
}

type workflowEnv struct {
	handler     impl
	assignments *fakeAssignments
	submissions *fakeSubmissions
	notifier    *fakeNotifier
	settings    *fakeSettings
}

func newWorkflowEnv() workflowEnv {
	assignments := newFakeAssignments()
	submissions := newFakeSubmissions()
	notifier := &fakeNotifier{}
	templates := &fakeTemplates{recs: map[string]dbmodels.Template{
		"tpl-1": {
			BaseModel: dbmodels.BaseModel{ID: "tpl-1"},
			Title:     "Leave request",
			Fields: dbmodels.TemplateFields{Fields: []dbmodels.TemplateField{
				{ID: "summary", Type: "text", Label: "Summary", Required: true},
			}},
		},
	}}
	users := &fakeUsers{recs: map[string]dbmodels.User{
		"alice": {BaseModel: dbmodels.BaseModel{ID: "alice"}, IsActive: true},
		"bob":   {BaseModel: dbmodels.BaseModel{ID: "bob"}, IsActive: true},
		"carol": {BaseModel: dbmodels.BaseModel{ID: "carol"}, IsActive: true},
		"dana":  {BaseModel: dbmodels.BaseModel{ID: "dana"}, IsActive: false},
	}}
	settings := &fakeSettings{snapshot: models.SettingsSnapshot{
		ApprovalDesignations:   []string{"Director", "Deputy Director"},
		AllowChainRedelegation: false,
	}}
	handler := impl{
		stores: stores{
			assignments: assignments,
			submissions: submissions,
			templates:   templates,
			users:       users,
		},
		settings: settings,
		notifier: notifier,
		audit:    &fakeAudit{},
	}
	return workflowEnv{
		handler:     handler,
		assignments: assignments,
		submissions: submissions,
		notifier:    notifier,
		settings:    settings,
	}
}

func (e workflowEnv) seedRoot(assignedTo, assignedBy string) string {
	id, _ := e.assignments.Create(dbmodels.Assignment{
		TemplateID:      "tpl-1",
		AssignedTo:      assignedTo,
		AssignedBy:      assignedBy,
		Status:          models.AssignmentPending,
		DelegationChain: dbmodels.UserIDList{},
		IsHolder:        true,
	})
	return id
}

func requireConflict(t *testing.T, err error) {
	t.Helper()
	require.NotNil(t, err)
	domainErr, ok := models.AsDomainError(err)
	require.True(t, ok)
	require.Equal(t, models.ErrCodeConflict, domainErr.Code)
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	require.NotNil(t, err)
	domainErr, ok := models.AsDomainError(err)
	require.True(t, ok)
	require.Equal(t, models.ErrCodeForbidden, domainErr.Code)
}

func TestSaveDraft(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	t.Run(`first draft creates a submission`, func(t *testing.T) {
		view, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
			AssignmentID: rootID,
			Data:         dbmodels.SubmissionData{"summary": "first pass"},
		})
		require.Nil(t, err)
		require.Equal(t, models.AssignmentEdited, view.Status)
		require.NotNil(t, view.DataID)

		submission, err := env.submissions.GetByID(*view.DataID)
		require.Nil(t, err)
		require.NotNil(t, submission)
		require.Equal(t, "10.0.0.5", submission.IPAddress)
		require.Equal(t, models.LastActionDraftSaved, view.LastAction)
	})

	t.Run(`second draft updates in place`, func(t *testing.T) {
		view, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
			AssignmentID: rootID,
			Data:         dbmodels.SubmissionData{"summary": "second pass"},
		})
		require.Nil(t, err)
		require.Equal(t, models.LastActionDraftUpdated, view.LastAction)
		require.Equal(t, 1, env.submissions.seq)

		submission, _ := env.submissions.GetByID(*view.DataID)
		require.Equal(t, "second pass", submission.Data["summary"])
	})

	t.Run(`invalid payload is rejected whole`, func(t *testing.T) {
		_, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
			AssignmentID: rootID,
			Data:         dbmodels.SubmissionData{"unknown": "x"},
		})
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, models.ErrCodeValidation, domainErr.Code)
	})

	t.Run(`foreign assignment is forbidden`, func(t *testing.T) {
		_, err := env.handler.SaveDraft(ctx, "carol", "10.0.0.6", formapimodels.DraftData{
			AssignmentID: rootID,
			Data:         dbmodels.SubmissionData{"summary": "hijack"},
		})
		requireForbidden(t, err)
	})
}

func TestDelegate(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	t.Run(`self delegation is forbidden`, func(t *testing.T) {
		_, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
			ParentAssignmentID: rootID,
			AssignedToID:       "bob",
		})
		requireForbidden(t, err)
	})

	t.Run(`inactive target is not found`, func(t *testing.T) {
		_, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
			ParentAssignmentID: rootID,
			AssignedToID:       "dana",
		})
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, models.ErrCodeNotFound, domainErr.Code)
	})

	var childID string
	t.Run(`delegation hands the work over`, func(t *testing.T) {
		view, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
			ParentAssignmentID: rootID,
			AssignedToID:       "carol",
			Remarks:            "please fill in",
		})
		require.Nil(t, err)
		childID = view.ID
		require.Equal(t, "carol", view.AssignedTo)
		require.Equal(t, []string{"bob"}, view.DelegationChain)
		require.True(t, view.IsHolder)

		parent, _ := env.assignments.GetByID(rootID)
		require.False(t, parent.IsHolder)
		require.Equal(t, models.LastActionDelegated, parent.LastAction)

		require.Len(t, env.notifier.sent, 1)
		require.Equal(t, "carol", env.notifier.sent[0].UserID)
		require.Equal(t, models.NotifyFormDelegated, env.notifier.sent[0].Code)
	})

	t.Run(`handed over assignment is no longer actionable`, func(t *testing.T) {
		_, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
			AssignmentID: rootID,
			Data:         dbmodels.SubmissionData{"summary": "too late"},
		})
		requireConflict(t, err)
	})

	t.Run(`redelegation to a chain member is blocked`, func(t *testing.T) {
		_, err := env.handler.Delegate(ctx, "carol", formapimodels.DelegateData{
			ParentAssignmentID: childID,
			AssignedToID:       "bob",
		})
		requireConflict(t, err)
	})

	t.Run(`chain redelegation is allowed when the setting permits it`, func(t *testing.T) {
		env.settings.snapshot.AllowChainRedelegation = true
		view, err := env.handler.Delegate(ctx, "carol", formapimodels.DelegateData{
			ParentAssignmentID: childID,
			AssignedToID:       "bob",
		})
		require.Nil(t, err)
		require.Equal(t, "bob", view.AssignedTo)
		require.Equal(t, []string{"bob", "carol"}, view.DelegationChain)
		require.True(t, view.IsHolder)
	})
}

func TestMarkBack(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	childView, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
		ParentAssignmentID: rootID,
		AssignedToID:       "carol",
	})
	require.Nil(t, err)

	t.Run(`root has no previous holder`, func(t *testing.T) {
		single := newWorkflowEnv()
		soloID := single.seedRoot("bob", "alice")
		_, err := single.handler.MarkBack(ctx, "bob", formapimodels.MarkBackData{AssignmentID: soloID})
		requireConflict(t, err)
	})

	t.Run(`mark back returns the work to the last holder`, func(t *testing.T) {
		_, err := env.handler.MarkBack(ctx, "carol", formapimodels.MarkBackData{
			AssignmentID: childView.ID,
			Remarks:      "needs your figures",
		})
		require.Nil(t, err)

		parent, _ := env.assignments.GetByID(rootID)
		require.True(t, parent.IsHolder)
		require.False(t, parent.IsRead)
		require.Equal(t, models.LastActionMarkedBack, parent.LastAction)
		require.Equal(t, "needs your figures", parent.Remarks)

		child, _ := env.assignments.GetByID(childView.ID)
		require.False(t, child.IsHolder)
	})

	t.Run(`a second mark back conflicts`, func(t *testing.T) {
		_, err := env.handler.MarkBack(ctx, "carol", formapimodels.MarkBackData{
			AssignmentID: childView.ID,
		})
		requireConflict(t, err)
	})

	t.Run(`handed over assignment stays readable`, func(t *testing.T) {
		err := env.handler.MarkRead("carol", childView.ID)
		require.Nil(t, err)
	})
}

func TestApproveAndSubmit(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	_, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
		AssignmentID: rootID,
		Data:         dbmodels.SubmissionData{"summary": "done"},
	})
	require.Nil(t, err)

	t.Run(`approval requires authority regardless of state`, func(t *testing.T) {
		_, err := env.handler.Approve(ctx, "bob", "Clerk", formapimodels.ApproveData{AssignmentID: rootID})
		requireForbidden(t, err)
	})

	t.Run(`submission requires the finalized flag`, func(t *testing.T) {
		_, err := env.handler.SubmitToDistributor(ctx, "bob", formapimodels.AssignmentActionData{AssignmentID: rootID})
		requireConflict(t, err)
	})

	t.Run(`approve with finalize locks the assignment`, func(t *testing.T) {
		view, err := env.handler.Approve(ctx, "bob", "Director", formapimodels.ApproveData{
			AssignmentID: rootID,
			Finalize:     true,
		})
		require.Nil(t, err)
		require.Equal(t, models.AssignmentApproved, view.Status)
		require.True(t, view.IsFinalized)
	})

	t.Run(`finalized assignment rejects delegation`, func(t *testing.T) {
		_, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
			ParentAssignmentID: rootID,
			AssignedToID:       "carol",
		})
		requireConflict(t, err)
	})

	t.Run(`submit hands the result to the distributor`, func(t *testing.T) {
		view, err := env.handler.SubmitToDistributor(ctx, "bob", formapimodels.AssignmentActionData{AssignmentID: rootID})
		require.Nil(t, err)
		require.Equal(t, models.AssignmentSubmitted, view.Status)

		last := env.notifier.sent[len(env.notifier.sent)-1]
		require.Equal(t, "alice", last.UserID)
		require.Equal(t, models.NotifyFormSubmitted, last.Code)
	})

	t.Run(`submitted is terminal`, func(t *testing.T) {
		_, err := env.handler.SubmitToDistributor(ctx, "bob", formapimodels.AssignmentActionData{AssignmentID: rootID})
		requireConflict(t, err)
	})
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	childView, err := env.handler.Delegate(ctx, "bob", formapimodels.DelegateData{
		ParentAssignmentID: rootID,
		AssignedToID:       "carol",
	})
	require.Nil(t, err)

	chain, err := env.handler.Chain(childView.ID)
	require.Nil(t, err)
	require.Len(t, chain, 2)
	require.Equal(t, rootID, chain[0].ID)
	require.Equal(t, childView.ID, chain[1].ID)

	_, err = env.handler.Chain("missing")
	require.NotNil(t, err)
}

func TestGetSubmission(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv()
	rootID := env.seedRoot("bob", "alice")

	view, err := env.handler.SaveDraft(ctx, "bob", "10.0.0.5", formapimodels.DraftData{
		AssignmentID: rootID,
		Data:         dbmodels.SubmissionData{"summary": "quarterly figures"},
	})
	require.Nil(t, err)
	require.NotNil(t, view.DataID)
	subID := *view.DataID

	t.Run(`submitter reads their own data`, func(t *testing.T) {
		submission, err := env.handler.GetSubmission("bob", models.StaffRole, subID)
		require.Nil(t, err)
		require.Equal(t, "quarterly figures", submission.Data["summary"])
	})

	t.Run(`chain participant reads the shared data`, func(t *testing.T) {
		submission, err := env.handler.GetSubmission("alice", models.StaffRole, subID)
		require.Nil(t, err)
		require.Equal(t, subID, submission.ID)
	})

	t.Run(`admin reads any submission`, func(t *testing.T) {
		submission, err := env.handler.GetSubmission("dana", models.AdminRole, subID)
		require.Nil(t, err)
		require.Equal(t, subID, submission.ID)
	})

	t.Run(`unrelated user is rejected`, func(t *testing.T) {
		_, err := env.handler.GetSubmission("carol", models.StaffRole, subID)
		requireForbidden(t, err)
	})

	t.Run(`missing submission is not found`, func(t *testing.T) {
		_, err := env.handler.GetSubmission("bob", models.StaffRole, "missing")
		require.NotNil(t, err)
		domainErr, ok := models.AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, models.ErrCodeNotFound, domainErr.Code)
	})
}

var (
	_ assignmentstore.Provider = (*fakeAssignments)(nil)
	_ submissionstore.Provider = (*fakeSubmissions)(nil)
	_ templatestore.Provider   = (*fakeTemplates)(nil)
	_ usersstore.Provider      = (*fakeUsers)(nil)
)
