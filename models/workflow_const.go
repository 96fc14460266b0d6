package models

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "PENDING"
	AssignmentEdited    AssignmentStatus = "EDITED"
	AssignmentApproved  AssignmentStatus = "APPROVED"
	AssignmentSubmitted AssignmentStatus = "SUBMITTED"
)

var assignmentStatusHumanName = map[AssignmentStatus]string{
	AssignmentPending:   "Pending",
	AssignmentEdited:    "Edited",
	AssignmentApproved:  "Approved",
	AssignmentSubmitted: "Submitted",
}

func (s AssignmentStatus) ToHuman() string {
	if human, exist := assignmentStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type WorkflowAction string

const (
	ActionSaveDraft WorkflowAction = "SAVE_DRAFT"
	ActionDelegate  WorkflowAction = "DELEGATE"
	ActionMarkBack  WorkflowAction = "MARK_BACK"
	ActionApprove   WorkflowAction = "APPROVE"
	ActionMarkFinal WorkflowAction = "MARK_FINAL"
	ActionSubmit    WorkflowAction = "SUBMIT_TO_DISTRIBUTOR"
)

// LastAction is the audit label stored on an assignment after each transition.
type LastAction string

const (
	LastActionEdited       LastAction = "EDITED"
	LastActionApproved     LastAction = "APPROVED"
	LastActionSubmitted    LastAction = "SUBMITTED"
	LastActionMarkedBack   LastAction = "MARKED_BACK"
	LastActionDelegated    LastAction = "DELEGATED"
	LastActionDraftSaved   LastAction = "DRAFT_SAVED"
	LastActionDraftUpdated LastAction = "DRAFT_UPDATED"
	LastActionAutoApproved LastAction = "AUTO_APPROVED"
)

// transitions is the single source of truth for legal workflow moves.
// The value is the status the assignment holds after the action; actions that
// hand the work to another assignment keep the caller's status unchanged.
var transitions = map[AssignmentStatus]map[WorkflowAction]AssignmentStatus{
	AssignmentPending: {
		ActionSaveDraft: AssignmentEdited,
		ActionDelegate:  AssignmentPending,
		ActionMarkBack:  AssignmentPending,
		ActionApprove:   AssignmentApproved,
	},
	AssignmentEdited: {
		ActionSaveDraft: AssignmentEdited,
		ActionDelegate:  AssignmentEdited,
		ActionMarkBack:  AssignmentEdited,
		ActionApprove:   AssignmentApproved,
		ActionMarkFinal: AssignmentEdited,
	},
	AssignmentApproved: {
		ActionMarkFinal: AssignmentApproved,
		ActionSubmit:    AssignmentSubmitted,
	},
	AssignmentSubmitted: {},
}

// NextStatus reports whether action is legal for the given status and what the
// status becomes afterwards.
func (s AssignmentStatus) NextStatus(action WorkflowAction) (AssignmentStatus, bool) {
	allowed, ok := transitions[s]
	if !ok {
		return s, false
	}
	next, ok := allowed[action]
	if !ok {
		return s, false
	}
	return next, true
}

// CheckTransition validates action against the central transition table and the
// finalized lock. A finalized assignment accepts no mutating action at all,
// except the submit handover which requires it.
func CheckTransition(status AssignmentStatus, isFinalized bool, action WorkflowAction) (AssignmentStatus, error) {
	if isFinalized && action != ActionSubmit {
		return status, NewConflictError("assignment is finalized and accepts no further changes")
	}
	next, ok := status.NextStatus(action)
	if !ok {
		return status, NewConflictError("action " + string(action) + " is not allowed for status " + string(status))
	}
	return next, nil
}
