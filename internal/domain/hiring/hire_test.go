package hiring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHire(t *testing.T) {
	userID := uuid.New()
	employeeID := uuid.New()

	hire, err := NewHire(userID, employeeID)
	require.NoError(t, err)

	assert.Equal(t, userID, hire.UserID)
	assert.Equal(t, employeeID, hire.EmployeeID)
	assert.True(t, hire.Active)
	assert.False(t, hire.HiredAt.IsZero())

	events := hire.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeEmployeeHired, events[0].EventType())

	hired, ok := events[0].(*EmployeeHiredEvent)
	require.True(t, ok)
	assert.Equal(t, userID, hired.UserID)
	assert.Equal(t, employeeID, hired.EmployeeID)
}

func TestNewHire_RequiresIDs(t *testing.T) {
	_, err := NewHire(uuid.Nil, uuid.New())
	assert.Error(t, err)

	_, err = NewHire(uuid.New(), uuid.Nil)
	assert.Error(t, err)
}

func TestHireResult_Hired(t *testing.T) {
	assert.True(t, (&HireResult{Status: StatusHired}).Hired())
	assert.False(t, (&HireResult{Status: StatusAlreadyHired}).Hired())
}
