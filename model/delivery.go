package model

import (
	"time"

	"github.com/muhammadheryan/identity-service/constant"
)

// OtpDelivery is one code to be sent over one channel. It is also the queue message body.
type OtpDelivery struct {
	AccountID string           `json:"account_id"`
	Role      constant.Role    `json:"role"`
	Purpose   string           `json:"purpose"`
	Channel   constant.Channel `json:"channel"`
	To        string           `json:"to"`
	Code      string           `json:"code"`
	ExpiresAt time.Time        `json:"expires_at"`
	TTL       time.Duration    `json:"ttl"`
}
