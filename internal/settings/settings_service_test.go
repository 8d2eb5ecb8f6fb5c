package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows     map[string]string
	findHits int
	upserts  map[string]string
}

func newFakeRepo(rows map[string]string) *fakeRepo {
	if rows == nil {
		rows = map[string]string{}
	}
	return &fakeRepo{rows: rows, upserts: map[string]string{}}
}

func (f *fakeRepo) Find(ctx context.Context, schoolID, key string) (string, bool, error) {
	f.findHits++
	v, ok := f.rows[key]
	return v, ok, nil
}

func (f *fakeRepo) FindAllBySchool(ctx context.Context, schoolID string) ([]SystemSetting, error) {
	out := make([]SystemSetting, 0, len(f.rows))
	for k, v := range f.rows {
		out = append(out, SystemSetting{SettingKey: k, SettingValue: v})
	}
	return out, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, schoolID, key, value string) error {
	f.rows[key] = value
	f.upserts[key] = value
	return nil
}

func mustCache(t *testing.T, value string, found bool) string {
	t.Helper()
	raw, err := json.Marshal(cachedSetting{Value: value, Found: found})
	assert.NoError(t, err)
	return string(raw)
}

func TestGet_CacheMissFallsThroughAndCaches(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo(map[string]string{KeyGpsRadius: "150"})
	svc := NewService(repo, rdb)

	schoolID := uuid.New().String()
	ck := cacheKey(schoolID, KeyGpsRadius)

	mock.ExpectGet(ck).RedisNil()
	mock.ExpectSet(ck, []byte(mustCache(t, "150", true)), cacheTTL).SetVal("OK")

	value, found, err := svc.Get(context.Background(), schoolID, KeyGpsRadius)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "150", value)
	assert.Equal(t, 1, repo.findHits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CacheHitSkipsRepo(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo(nil)
	svc := NewService(repo, rdb)

	schoolID := uuid.New().String()
	ck := cacheKey(schoolID, KeyAlertMethod)

	mock.ExpectGet(ck).SetVal(mustCache(t, AlertMethodWhatsApp, true))

	value, found, err := svc.Get(context.Background(), schoolID, KeyAlertMethod)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, AlertMethodWhatsApp, value)
	assert.Zero(t, repo.findHits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissingKeyIsCachedNegative(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo(nil)
	svc := NewService(repo, rdb)

	schoolID := uuid.New().String()
	ck := cacheKey(schoolID, KeyGpsRadius)

	mock.ExpectGet(ck).RedisNil()
	mock.ExpectSet(ck, []byte(mustCache(t, "", false)), cacheTTL).SetVal("OK")

	value, found, err := svc.Get(context.Background(), schoolID, KeyGpsRadius)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateConfig_UpsertsAndInvalidates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := newFakeRepo(nil)
	svc := NewService(repo, rdb)

	schoolID := uuid.New().String()
	mock.ExpectDel(cacheKey(schoolID, KeyGpsRadius)).SetVal(1)

	err := svc.UpdateConfig(context.Background(), schoolID, map[string]string{KeyGpsRadius: "200"})
	assert.NoError(t, err)
	assert.Equal(t, "200", repo.upserts[KeyGpsRadius])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetConfig_FiltersKeys(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	repo := newFakeRepo(map[string]string{
		KeyGpsRadius:     "150",
		KeyAlertMethod:   AlertMethodDashboard,
		KeyLateThreshold: "15",
	})
	svc := NewService(repo, rdb)

	config, err := svc.GetConfig(context.Background(), uuid.New().String(), AttendanceConfigKeys)
	assert.NoError(t, err)
	assert.Equal(t, "150", config[KeyGpsRadius])
	assert.Equal(t, AlertMethodDashboard, config[KeyAlertMethod])

	all, err := svc.GetConfig(context.Background(), uuid.New().String(), nil)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}
