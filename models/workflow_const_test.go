package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	t.Run(`pending accepts drafts and approval`, func(t *testing.T) {
		next, err := CheckTransition(AssignmentPending, false, ActionSaveDraft)
		require.Nil(t, err)
		require.Equal(t, AssignmentEdited, next)

		next, err = CheckTransition(AssignmentPending, false, ActionApprove)
		require.Nil(t, err)
		require.Equal(t, AssignmentApproved, next)

		next, err = CheckTransition(AssignmentPending, false, ActionDelegate)
		require.Nil(t, err)
		require.Equal(t, AssignmentPending, next)
	})

	t.Run(`pending rejects submission`, func(t *testing.T) {
		_, err := CheckTransition(AssignmentPending, false, ActionSubmit)
		require.NotNil(t, err)
		domainErr, ok := AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, ErrCodeConflict, domainErr.Code)
	})

	t.Run(`approved accepts only finalize and submit`, func(t *testing.T) {
		next, err := CheckTransition(AssignmentApproved, false, ActionMarkFinal)
		require.Nil(t, err)
		require.Equal(t, AssignmentApproved, next)

		next, err = CheckTransition(AssignmentApproved, false, ActionSubmit)
		require.Nil(t, err)
		require.Equal(t, AssignmentSubmitted, next)

		_, err = CheckTransition(AssignmentApproved, false, ActionSaveDraft)
		require.NotNil(t, err)

		_, err = CheckTransition(AssignmentApproved, false, ActionDelegate)
		require.NotNil(t, err)
	})

	t.Run(`submitted is terminal`, func(t *testing.T) {
		for _, action := range []WorkflowAction{ActionSaveDraft, ActionDelegate, ActionMarkBack, ActionApprove, ActionMarkFinal, ActionSubmit} {
			_, err := CheckTransition(AssignmentSubmitted, false, action)
			require.NotNil(t, err, string(action))
		}
	})

	t.Run(`finalized blocks everything but submit`, func(t *testing.T) {
		for _, action := range []WorkflowAction{ActionSaveDraft, ActionDelegate, ActionMarkBack, ActionApprove, ActionMarkFinal} {
			_, err := CheckTransition(AssignmentApproved, true, action)
			require.NotNil(t, err, string(action))
		}

		next, err := CheckTransition(AssignmentApproved, true, ActionSubmit)
		require.Nil(t, err)
		require.Equal(t, AssignmentSubmitted, next)
	})
}
