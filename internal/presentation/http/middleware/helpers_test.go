package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

var _ repository.IdempotencyRepository = (*fakeIdempotencyRepo)(nil)

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func idemKey(key string, userID uuid.UUID) string {
	return key + "|" + userID.String()
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := f.keys[idemKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	f.keys[idemKey(ikey.Key, ikey.UserID)] = ikey
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	for k, v := range f.keys {
		if v.IsExpired() {
			delete(f.keys, k)
		}
	}
	return nil
}
