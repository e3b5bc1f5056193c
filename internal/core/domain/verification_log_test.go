package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

func TestLogKind_IsProtected(t *testing.T) {
	assert.True(t, domain.LogSessionStart.IsProtected())
	assert.True(t, domain.LogSessionComplete.IsProtected())
	assert.False(t, domain.LogScan.IsProtected())
	assert.False(t, domain.LogDeletion.IsProtected())
}

func TestFlatten_DeletionWithoutItemEffect(t *testing.T) {
	action := domain.LogDeleted{DeletedLogID: "log_9", DeletedKind: domain.LogDeletion}

	fields, err := domain.Flatten(action)
	require.NoError(t, err)

	assert.Equal(t, domain.LogDeletion, fields.Kind)
	assert.Nil(t, fields.ItemCode)
	assert.Nil(t, fields.PreviousQuantity)
	require.NotNil(t, fields.ReferenceLogID)
	assert.Equal(t, "log_9", *fields.ReferenceLogID)

	back, err := domain.Unflatten(fields)
	require.NoError(t, err)
	assert.Equal(t, action, back)
}

func TestUnflatten_RejectsIncompleteCountLog(t *testing.T) {
	code := "MC-001"
	_, err := domain.Unflatten(domain.LogFields{Kind: domain.LogScan, ItemCode: &code})
	assert.Error(t, err)

	_, err = domain.Unflatten(domain.LogFields{Kind: "refund"})
	assert.Error(t, err)
}

func TestUnflatten_ScanKeepsDelta(t *testing.T) {
	code := "MC-001"
	prev, delta := 2, 1

	action, err := domain.Unflatten(domain.LogFields{Kind: domain.LogScan, ItemCode: &code, PreviousQuantity: &prev, NewQuantity: &delta})
	require.NoError(t, err)

	scan, ok := action.(domain.ScanRecorded)
	require.True(t, ok)
	assert.Equal(t, domain.ScanRecorded{ItemCode: code, PreviousQuantity: 2, Quantity: 1}, scan)
}
