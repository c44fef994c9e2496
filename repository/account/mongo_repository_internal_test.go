package account

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestMapMongoError(t *testing.T) {
	dupPhone := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: auth-app.admins index: uniq_phone dup key",
	}}}
	dupEmail := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: auth-app.users index: uniq_email dup key",
	}}}
	other := errors.New("connection reset")

	var dup *DuplicateFieldError
	assert.True(t, errors.As(mapMongoError(dupPhone), &dup))
	assert.Equal(t, FieldPhone, dup.Field)

	assert.True(t, errors.As(mapMongoError(dupEmail), &dup))
	assert.Equal(t, FieldEmail, dup.Field)

	assert.Equal(t, other, mapMongoError(other))
}
