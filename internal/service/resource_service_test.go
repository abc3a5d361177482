package service

import (
	"testing"

	"book-admin-go/internal/model"
	"book-admin-go/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLabelStore 是 ResourceStore[model.Label] 的内存实现，记录每次调用。
type fakeLabelStore struct {
	rows         []model.Label
	lastCriteria map[string]interface{}
	patches      []map[string]interface{}
	inserted     []*model.Label
	removed      []*model.Label
	missing      bool
}

func (f *fakeLabelStore) Filter(criteria map[string]interface{}) ([]model.Label, error) {
	f.lastCriteria = criteria
	return f.rows, nil
}

func (f *fakeLabelStore) get(id int64) (*model.Label, error) {
	if f.missing {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range f.rows {
		if int64(f.rows[i].ID) == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLabelStore) GetForUpdate(id int64) (*model.Label, error) { return f.get(id) }
func (f *fakeLabelStore) GetForDelete(id int64) (*model.Label, error) { return f.get(id) }

func (f *fakeLabelStore) Insert(obj *model.Label) error {
	obj.ID = uint(len(f.rows) + 1)
	f.inserted = append(f.inserted, obj)
	f.rows = append(f.rows, *obj)
	return nil
}

func (f *fakeLabelStore) Patch(obj *model.Label, fields map[string]interface{}) error {
	f.patches = append(f.patches, fields)
	return nil
}

func (f *fakeLabelStore) Remove(obj *model.Label) error {
	f.removed = append(f.removed, obj)
	return nil
}

func (f *fakeLabelStore) InsertBatch(objs []model.Label, batchSize int) error { return nil }
func (f *fakeLabelStore) UpdateBatch(objs []model.Label, batchSize int) error { return nil }

func labelConfig() ResourceConfig {
	return ResourceConfig{
		Resource:            "标签",
		QueryField:          []string{"id", "name"},
		CreateField:         []string{"name", "description"},
		UpdateField:         []string{"id", "name", "description"},
		CreateRequiredField: []string{"name"},
	}
}

func labels(n int) []model.Label {
	rows := make([]model.Label, n)
	for i := range rows {
		rows[i].ID = uint(i + 1)
		rows[i].Name = "label"
	}
	return rows
}

func TestQueryFiltersByAllowList(t *testing.T) {
	store := &fakeLabelStore{rows: labels(2)}
	svc := NewResource[model.Label](store, labelConfig())

	_, total, err := svc.Query(map[string]interface{}{
		"name":   "sci-fi",
		"writer": "ignored", // 不在白名单内
		"id":     "",        // 空串被丢弃
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, map[string]interface{}{"name": "sci-fi"}, store.lastCriteria)
}

func TestQueryWithoutPaginationReturnsAll(t *testing.T) {
	store := &fakeLabelStore{rows: labels(5)}
	svc := NewResource[model.Label](store, labelConfig())

	items, total, err := svc.Query(map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, 5, total)
}

func TestQueryPaginates(t *testing.T) {
	store := &fakeLabelStore{rows: labels(5)}
	svc := NewResource[model.Label](store, labelConfig())

	items, total, err := svc.Query(map[string]interface{}{"offset": "2", "limit": "2"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, uint(3), items[0].ID)
	// total 是分页前的总数
	assert.Equal(t, 5, total)
}

func TestQueryBadOffsetFallsBackToFirstPage(t *testing.T) {
	store := &fakeLabelStore{rows: labels(5)}
	svc := NewResource[model.Label](store, labelConfig())

	items, _, err := svc.Query(map[string]interface{}{"offset": "abc", "limit": "3"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, uint(1), items[0].ID)
}

func TestQueryBadLimitIsParamError(t *testing.T) {
	store := &fakeLabelStore{rows: labels(5)}
	svc := NewResource[model.Label](store, labelConfig())

	_, _, err := svc.Query(map[string]interface{}{"offset": "1", "limit": "abc"})
	require.Error(t, err)
	assert.Equal(t, response.CodeParamErr, response.CodeOf(err))
}

func TestCreateStampsEditor(t *testing.T) {
	store := &fakeLabelStore{}
	svc := NewResource[model.Label](store, labelConfig())

	obj, err := svc.Create(map[string]interface{}{
		"name":        "sci-fi",
		"description": "科幻",
		"editor":      "forged", // 调用方提交的 editor 必须被覆盖
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "sci-fi", obj.Name)
	assert.Equal(t, "alice", obj.Editor)
	assert.Equal(t, uint(1), obj.ID)
}

func TestCreateMissingRequiredField(t *testing.T) {
	store := &fakeLabelStore{}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Create(map[string]interface{}{"description": "no name"}, "alice")
	require.Error(t, err)
	assert.Equal(t, response.CodeParamErr, response.CodeOf(err))
	assert.Empty(t, store.inserted)
}

func TestUpdateRequiresID(t *testing.T) {
	store := &fakeLabelStore{rows: labels(1)}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Update(map[string]interface{}{"name": "renamed"}, "alice")
	require.Error(t, err)
	assert.Equal(t, response.CodeParamErr, response.CodeOf(err))
}

func TestUpdateNotFound(t *testing.T) {
	store := &fakeLabelStore{missing: true}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Update(map[string]interface{}{"id": float64(42), "name": "renamed"}, "alice")
	require.Error(t, err)
	assert.Equal(t, response.CodeNoData, response.CodeOf(err))
}

func TestUpdatePatchesAllowedFieldsOnly(t *testing.T) {
	store := &fakeLabelStore{rows: labels(1)}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Update(map[string]interface{}{
		"id":      float64(1),
		"name":    "renamed",
		"is_used": true, // 不在更新白名单内
	}, "alice")
	require.NoError(t, err)
	require.Len(t, store.patches, 1)
	patch := store.patches[0]
	assert.Equal(t, "renamed", patch["name"])
	assert.Equal(t, "alice", patch["editor"])
	assert.NotContains(t, patch, "is_used")
	assert.NotContains(t, patch, "id")
}

func TestDeleteWritesIDMarker(t *testing.T) {
	store := &fakeLabelStore{rows: labels(3)}
	svc := NewResource[model.Label](store, labelConfig())

	id, err := svc.Delete(map[string]interface{}{"id": float64(3)}, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	require.Len(t, store.patches, 1)
	patch := store.patches[0]
	// 软删除标记写入行自身的 id，而不是布尔值
	assert.Equal(t, int64(3), patch["is_deleted"])
	assert.Equal(t, "alice", patch["editor"])
}

func TestDeleteFalsyRestoresRow(t *testing.T) {
	store := &fakeLabelStore{rows: labels(2)}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Delete(map[string]interface{}{"id": float64(2), "is_deleted": false}, "alice")
	require.NoError(t, err)
	require.Len(t, store.patches, 1)
	assert.Equal(t, int64(0), store.patches[0]["is_deleted"])
}

func TestDeleteMissingID(t *testing.T) {
	store := &fakeLabelStore{rows: labels(1)}
	svc := NewResource[model.Label](store, labelConfig())

	_, err := svc.Delete(map[string]interface{}{}, "alice")
	require.Error(t, err)
	assert.Equal(t, response.CodeParamErr, response.CodeOf(err))
}

func TestAbsDeleteRemovesRow(t *testing.T) {
	store := &fakeLabelStore{rows: labels(1)}
	svc := NewResource[model.Label](store, labelConfig())

	id, err := svc.AbsDelete(map[string]interface{}{"id": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Len(t, store.removed, 1)
}

func TestWriteHookFiresOnEveryWrite(t *testing.T) {
	store := &fakeLabelStore{rows: labels(2)}
	fired := 0
	svc := NewResource[model.Label](store, labelConfig(),
		WithWriteHook[model.Label](func() { fired++ }))

	_, err := svc.Create(map[string]interface{}{"name": "a"}, "alice")
	require.NoError(t, err)
	_, err = svc.Update(map[string]interface{}{"id": float64(1), "name": "b"}, "alice")
	require.NoError(t, err)
	_, err = svc.Delete(map[string]interface{}{"id": float64(2)}, "alice")
	require.NoError(t, err)
	_, err = svc.AbsDelete(map[string]interface{}{"id": float64(1)})
	require.NoError(t, err)

	assert.Equal(t, 4, fired)

	// 只读操作不触发
	_, _, err = svc.Query(map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, 4, fired)
}

func TestBookCreateValidatesEnum(t *testing.T) {
	store := &fakeBookStore{}
	svc := NewResource[model.Book](store, ResourceConfig{
		Resource:            "书籍",
		CreateField:         []string{"name", "kind", "publishing"},
		CreateRequiredField: []string{"name", "kind", "publishing"},
	})

	_, err := svc.Create(map[string]interface{}{
		"name":       "西游记",
		"kind":       "nonsense",
		"publishing": float64(1),
	}, "alice")
	require.Error(t, err)
	assert.Equal(t, response.CodeParamErr, response.CodeOf(err))

	obj, err := svc.Create(map[string]interface{}{
		"name":       "西游记",
		"kind":       model.KindClassical,
		"publishing": float64(1),
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.KindClassical, obj.Kind)
	assert.Equal(t, model.Published, obj.Publishing)
}

// fakeBookStore 只覆盖创建路径。
type fakeBookStore struct {
	rows []model.Book
}

func (f *fakeBookStore) Filter(criteria map[string]interface{}) ([]model.Book, error) {
	return f.rows, nil
}
func (f *fakeBookStore) GetForUpdate(id int64) (*model.Book, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBookStore) GetForDelete(id int64) (*model.Book, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBookStore) Insert(obj *model.Book) error {
	obj.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *obj)
	return nil
}
func (f *fakeBookStore) Patch(obj *model.Book, fields map[string]interface{}) error { return nil }
func (f *fakeBookStore) Remove(obj *model.Book) error                               { return nil }
func (f *fakeBookStore) InsertBatch(objs []model.Book, batchSize int) error         { return nil }
func (f *fakeBookStore) UpdateBatch(objs []model.Book, batchSize int) error         { return nil }
