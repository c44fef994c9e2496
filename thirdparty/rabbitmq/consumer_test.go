package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/muhammadheryan/identity-service/constant"
	notifiermocks "github.com/muhammadheryan/identity-service/mocks/thirdparty/notifier"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/thirdparty/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleDelivery(t *testing.T) {
	delivery := model.OtpDelivery{
		AccountID: "acc-1",
		Role:      constant.RoleUser,
		Purpose:   constant.OtpPurposeVerification,
		Channel:   constant.ChannelEmail,
		To:        "a@x.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		TTL:       10 * time.Minute,
	}
	body, err := json.Marshal(delivery)
	require.NoError(t, err)

	expired := delivery
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	expiredBody, err := json.Marshal(expired)
	require.NoError(t, err)

	matchCode := mock.MatchedBy(func(d *model.OtpDelivery) bool { return d.Code == "123456" && d.To == "a@x.com" })

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		mockCall    func(d *notifiermocks.Dispatcher)
		want        rabbitmq.Outcome
	}{
		{
			name: "success: delivered",
			body: body,
			mockCall: func(d *notifiermocks.Dispatcher) {
				d.On("Dispatch", mock.Anything, matchCode).Return(nil).Once()
			},
			want: rabbitmq.OutcomeDelivered,
		},
		{
			name: "first failure is retried",
			body: body,
			mockCall: func(d *notifiermocks.Dispatcher) {
				d.On("Dispatch", mock.Anything, matchCode).Return(errors.New("smtp down")).Once()
			},
			want: rabbitmq.OutcomeRetry,
		},
		{
			name:        "second failure is dropped",
			body:        body,
			redelivered: true,
			mockCall: func(d *notifiermocks.Dispatcher) {
				d.On("Dispatch", mock.Anything, matchCode).Return(errors.New("smtp down")).Once()
			},
			want: rabbitmq.OutcomeDropped,
		},
		{
			name: "malformed body is dropped",
			body: []byte("{not json"),
			want: rabbitmq.OutcomeDropped,
		},
		{
			name: "expired code is not sent",
			body: expiredBody,
			want: rabbitmq.OutcomeDropped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := notifiermocks.NewDispatcher(t)
			if tt.mockCall != nil {
				tt.mockCall(dispatcher)
			}
			assert.Equal(t, tt.want, rabbitmq.HandleDelivery(context.Background(), dispatcher, tt.body, tt.redelivered))
		})
	}
}
