package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Mongo struct {
	col *mongo.Collection
}

// NewMongoRepository binds the repository to the role's collection and makes sure the unique
// indexes exist. Phone is sparse so accounts without a phone never collide.
func NewMongoRepository(ctx context.Context, db *mongo.Database, role constant.Role) (AccountRepository, error) {
	r := &Mongo{col: db.Collection(TableName(role))}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Mongo) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("uniq_phone").SetUnique(true).SetSparse(true),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *Mongo) Create(ctx context.Context, data *model.AccountEntity) (*model.AccountEntity, error) {
	doc := data.Clone()
	doc.Version = 1
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, mapMongoError(err)
	}
	return doc, nil
}

func (r *Mongo) Get(ctx context.Context, filter *model.AccountFilter) (*model.AccountEntity, error) {
	query := bson.D{}
	if filter.ID != "" {
		query = append(query, bson.E{Key: "_id", Value: filter.ID})
	}
	if filter.Email != "" {
		query = append(query, bson.E{Key: "email", Value: filter.Email})
	}
	if filter.Phone != "" {
		query = append(query, bson.E{Key: "phone", Value: filter.Phone})
	}
	if len(query) == 0 {
		return nil, nil
	}

	var acc model.AccountEntity
	if err := r.col.FindOne(ctx, query).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

func (r *Mongo) Update(ctx context.Context, acc *model.AccountEntity) error {
	now := time.Now().UTC()
	next := acc.Clone()
	next.Version = acc.Version + 1
	next.UpdatedAt = &now

	filter := bson.D{{Key: "_id", Value: acc.ID}, {Key: "version", Value: acc.Version}}
	res, err := r.col.ReplaceOne(ctx, filter, next)
	if err != nil {
		return mapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrStaleRecord
	}

	acc.Version = next.Version
	acc.UpdatedAt = &now
	return nil
}

func mapMongoError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "uniq_phone") {
		return &DuplicateFieldError{Field: FieldPhone}
	}
	return &DuplicateFieldError{Field: FieldEmail}
}
