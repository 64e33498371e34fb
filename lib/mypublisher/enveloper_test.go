package mypublisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lulab/website-backend/lib/mytime"
)

type somethingHappened struct {
	UID    string
	Amount int
}

func (e somethingHappened) GetEventTypeName() string {
	return "something.happened"
}

func (e somethingHappened) GetAggregateName() string {
	return e.UID
}

func TestEnveloper(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)

	enveloper := newEnveloper(nower)

	first, err := enveloper.do("checkout", somethingHappened{UID: "b-1", Amount: 4200})
	assert.NoError(t, err)
	assert.Equal(t, "checkout", first.Topic)
	assert.Equal(t, "something.happened", first.EventTypeName)
	assert.Equal(t, "b-1", first.AggregateUID)
	assert.Contains(t, first.EventPayload, `"Amount":4200`)
	assert.False(t, first.Published)

	// same event yields the same UID: republishing is idempotent
	second, err := enveloper.do("checkout", somethingHappened{UID: "b-1", Amount: 4200})
	assert.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)

	nower.EXPECT().Now().Return(mytime.ExampleTime)
	other, err := enveloper.do("checkout", somethingHappened{UID: "b-2", Amount: 4200})
	assert.NoError(t, err)
	assert.NotEqual(t, first.UID, other.UID)
}
