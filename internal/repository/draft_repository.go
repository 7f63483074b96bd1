package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"tlms_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// DraftRepository 讲师编辑中的课程草稿快照，存 Redis，按讲师 ID 一人一份
type DraftRepository struct {
	RDB *redis.Client
}

func NewDraftRepository(rdb *redis.Client) *DraftRepository {
	return &DraftRepository{RDB: rdb}
}

const draftTTL = 30 * 24 * time.Hour

func draftKey(educatorID uint) string {
	return fmt.Sprintf("authoring:draft:%d", educatorID)
}

func (r *DraftRepository) Save(ctx context.Context, educatorID uint, draft *model.CourseDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, draftKey(educatorID), data, draftTTL).Err()
}

func (r *DraftRepository) Load(ctx context.Context, educatorID uint) (*model.CourseDraft, error) {
	data, err := r.RDB.Get(ctx, draftKey(educatorID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.CourseDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Delete(ctx context.Context, educatorID uint) error {
	return r.RDB.Del(ctx, draftKey(educatorID)).Err()
}
