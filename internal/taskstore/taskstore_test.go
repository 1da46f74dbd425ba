package taskstore_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/display"
	"tasklist/internal/taskstore"
	"tasklist/internal/testutil"
)

// session builds a fresh store over st, the way a new page load would.
func session(t *testing.T, st *testutil.MemoryStorage, opts ...taskstore.Option) (*taskstore.Store, *display.List) {
	t.Helper()
	list := display.NewList()
	s := taskstore.New(st, list, opts...)
	require.NoError(t, s.Initialize(context.Background()))
	return s, list
}

func stored(t *testing.T, st *testutil.MemoryStorage) []taskstore.Task {
	t.Helper()
	tasks, err := taskstore.Decode(st.Value(taskstore.StorageKey))
	require.NoError(t, err)
	return tasks
}

func rowAt(t *testing.T, list *display.List, n int) *display.Row {
	t.Helper()
	row, ok := list.At(n)
	require.True(t, ok, "row %d", n)
	return row
}

func TestInitialize_EmptyStorage(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)

	assert.Equal(t, 0, list.Len())
	assert.Empty(t, s.Tasks())
	assert.Equal(t, 0, st.Writes)
}

func TestInitialize_RendersStoredOrder(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, `[{"text":"a","completed":false},{"text":"b","completed":true}]`)

	s, list := session(t, st)

	assert.Equal(t, []taskstore.Task{
		{Text: "a", Completed: false},
		{Text: "b", Completed: true},
	}, s.Tasks())
	assert.True(t, rowAt(t, list, 2).Completed())
	assert.Equal(t, 0, st.Writes, "initialize must not write")
}

func TestInitialize_MalformedStorage(t *testing.T) {
	for _, value := range []string{"not valid json", "{}", "5", `"tasks"`, ""} {
		t.Run(value, func(t *testing.T) {
			st := testutil.NewMemoryStorage()
			st.Put(taskstore.StorageKey, value)

			list := display.NewList()
			s := taskstore.New(st, list)
			err := s.Initialize(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, 0, list.Len())
			assert.Equal(t, 0, st.Writes)
		})
	}
}

func TestInitialize_NullIsEmpty(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, "null")

	_, list := session(t, st)
	assert.Equal(t, 0, list.Len())
}

func TestInitialize_KeepsBlankRecords(t *testing.T) {
	st := testutil.NewMemoryStorage()
	value := `[{"text":"  ","completed":true},{"text":"kept","completed":false}]`
	st.Put(taskstore.StorageKey, value)

	s, list := session(t, st)

	assert.Equal(t, []taskstore.Task{
		{Text: "  ", Completed: true},
		{Text: "kept", Completed: false},
	}, s.Tasks())
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, stored(t, st), s.Tasks(), "display must match storage after load")

	_, err := s.ToggleTaskCompletion(context.Background(), rowAt(t, list, 2))
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"  ","completed":true},{"text":"kept","completed":true}]`, st.Value(taskstore.StorageKey))
}

func TestInitialize_BadRecordKeepsGoodRecords(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, `[{"text":"keep me","completed":false},{"text":"b","completed":1}]`)

	s, list := session(t, st)

	assert.Equal(t, []taskstore.Task{
		{Text: "keep me", Completed: false},
		{Text: "b", Completed: true},
	}, s.Tasks())
	assert.Equal(t, 2, list.Len())

	added, err := s.AddTask(context.Background(), "new")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []taskstore.Task{
		{Text: "keep me", Completed: false},
		{Text: "b", Completed: true},
		{Text: "new", Completed: false},
	}, stored(t, st))
}

func TestDecode_LooseRecords(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []taskstore.Task
	}{
		{"number text", `[{"text":7,"completed":false}]`, []taskstore.Task{{Text: "7"}}},
		{"bool text", `[{"text":true}]`, []taskstore.Task{{Text: "true"}}},
		{"null text", `[{"text":null,"completed":true}]`, []taskstore.Task{{Completed: true}}},
		{"missing fields", `[{}]`, []taskstore.Task{{}}},
		{"string completed", `[{"text":"a","completed":"yes"}]`, []taskstore.Task{{Text: "a", Completed: true}}},
		{"empty string completed", `[{"text":"a","completed":""}]`, []taskstore.Task{{Text: "a"}}},
		{"zero completed", `[{"text":"a","completed":0}]`, []taskstore.Task{{Text: "a"}}},
		{"object completed", `[{"text":"a","completed":{}}]`, []taskstore.Task{{Text: "a", Completed: true}}},
		{"non-object element", `[3,"x",null]`, []taskstore.Task{{}, {}, {}}},
		{"empty array", `[]`, []taskstore.Task{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := taskstore.Decode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_NotAnArray(t *testing.T) {
	for _, value := range []string{"{}", "5", `"tasks"`, "true", "not valid json", ""} {
		_, err := taskstore.Decode(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestInitialize_ReadFailure(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.GetErr = errors.New("disk gone")

	list := display.NewList()
	s := taskstore.New(st, list)
	err := s.Initialize(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, taskstore.ErrStorage)
	var storeErr *taskstore.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "load", storeErr.Op)
	assert.Equal(t, 0, list.Len())
}

func TestAddTask_TrimsAndSaves(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)

	added, err := s.AddTask(context.Background(), "  buy milk  ")

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "buy milk", rowAt(t, list, 1).Text())
	assert.False(t, rowAt(t, list, 1).Completed())
	assert.Equal(t, 1, st.Writes)
	assert.Equal(t, []taskstore.Task{{Text: "buy milk"}}, stored(t, st))
}

func TestAddTask_BlankRejected(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, `[{"text":"existing","completed":false}]`)
	s, list := session(t, st)

	for _, raw := range []string{"", "   ", "\t\n"} {
		added, err := s.AddTask(context.Background(), raw)
		assert.NoError(t, err)
		assert.False(t, added, "%q", raw)
	}

	assert.Equal(t, 1, list.Len())
	assert.Equal(t, 0, st.Writes)
	assert.Equal(t, `[{"text":"existing","completed":false}]`, st.Value(taskstore.StorageKey))
}

func TestAddTask_DuplicatesKept(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, _ := session(t, st)
	ctx := context.Background()

	_, err := s.AddTask(ctx, "same")
	require.NoError(t, err)
	_, err = s.AddTask(ctx, "same")
	require.NoError(t, err)

	assert.Len(t, stored(t, st), 2)
}

func TestSubmit_ClearsInput(t *testing.T) {
	st := testutil.NewMemoryStorage()
	field := display.NewField("  Write spec ")
	s, list := session(t, st, taskstore.WithInput(field))

	added, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "", field.Value())
	assert.Equal(t, "Write spec", rowAt(t, list, 1).Text())
}

func TestSubmit_BlankLeavesInput(t *testing.T) {
	st := testutil.NewMemoryStorage()
	field := display.NewField("   ")
	s, list := session(t, st, taskstore.WithInput(field))

	added, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, "   ", field.Value())
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, 0, st.Writes)
}

func TestSubmit_NoInput(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, _ := session(t, st)

	added, err := s.Submit(context.Background())
	assert.NoError(t, err)
	assert.False(t, added)
}

func TestToggle_TwiceRestores(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()
	_, err := s.AddTask(ctx, "a")
	require.NoError(t, err)
	row := rowAt(t, list, 1)

	toggled, err := s.ToggleTaskCompletion(ctx, row)
	require.NoError(t, err)
	assert.True(t, toggled)
	assert.True(t, row.Completed())
	assert.True(t, stored(t, st)[0].Completed)

	_, err = s.ToggleTaskCompletion(ctx, row)
	require.NoError(t, err)
	assert.False(t, row.Completed())
	assert.False(t, stored(t, st)[0].Completed)
	assert.Equal(t, 3, st.Writes)
}

func TestToggle_IgnoresNonRows(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()
	_, err := s.AddTask(ctx, "a")
	require.NoError(t, err)

	foreign := display.NewList().Append("a", false)
	var nilRow *display.Row
	for _, target := range []any{nil, "padding", list, foreign, nilRow} {
		toggled, err := s.ToggleTaskCompletion(ctx, target)
		assert.NoError(t, err)
		assert.False(t, toggled)
	}

	assert.False(t, rowAt(t, list, 1).Completed())
	assert.Equal(t, 1, st.Writes)
}

func TestOrderPreservation(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, err := s.AddTask(ctx, text)
		require.NoError(t, err)
	}

	_, err := s.ToggleTaskCompletion(ctx, rowAt(t, list, 2))
	require.NoError(t, err)

	want := []taskstore.Task{
		{Text: "a", Completed: false},
		{Text: "b", Completed: true},
		{Text: "c", Completed: false},
	}
	assert.Equal(t, want, s.Tasks())
	assert.Equal(t, want, stored(t, st))
}

func TestRoundTrip(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()
	for _, text := range []string{"one", "two", "three", "two"} {
		_, err := s.AddTask(ctx, text)
		require.NoError(t, err)
	}
	_, err := s.ToggleTaskCompletion(ctx, rowAt(t, list, 1))
	require.NoError(t, err)
	_, err = s.ToggleTaskCompletion(ctx, rowAt(t, list, 4))
	require.NoError(t, err)
	_, err = s.ToggleTaskCompletion(ctx, rowAt(t, list, 1))
	require.NoError(t, err)
	before := s.Tasks()

	reloaded, _ := session(t, st)

	assert.Equal(t, before, reloaded.Tasks())
}

func TestEndToEndReload(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()

	_, err := s.AddTask(ctx, "Write spec")
	require.NoError(t, err)
	_, err = s.AddTask(ctx, "Review spec")
	require.NoError(t, err)
	_, err = s.ToggleTaskCompletion(ctx, rowAt(t, list, 1))
	require.NoError(t, err)

	reloaded, _ := session(t, st)

	assert.Equal(t, []taskstore.Task{
		{Text: "Write spec", Completed: true},
		{Text: "Review spec", Completed: false},
	}, reloaded.Tasks())
}

func TestSaveFailure_KeepsDisplay(t *testing.T) {
	st := testutil.NewMemoryStorage()
	s, list := session(t, st)
	ctx := context.Background()
	st.SetErr = errors.New("quota exceeded")

	added, err := s.AddTask(ctx, "a")

	assert.True(t, added)
	require.Error(t, err)
	assert.ErrorIs(t, err, taskstore.ErrStorage)
	assert.Contains(t, err.Error(), "save tasks: quota exceeded")
	assert.Equal(t, 1, list.Len())

	toggled, err := s.ToggleTaskCompletion(ctx, rowAt(t, list, 1))
	assert.True(t, toggled)
	assert.ErrorIs(t, err, taskstore.ErrStorage)
	assert.True(t, rowAt(t, list, 1).Completed())

	st.SetErr = nil
	_, err = s.AddTask(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []taskstore.Task{
		{Text: "a", Completed: true},
		{Text: "b", Completed: false},
	}, stored(t, st))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, "not valid json")

	session(t, st, taskstore.WithLogger(log.New(&buf, "debug: ", 0)))

	assert.Contains(t, buf.String(), "debug: discarding malformed stored tasks")
}

func TestEncode_Format(t *testing.T) {
	value, err := taskstore.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	value, err = taskstore.Encode([]taskstore.Task{{Text: "a", Completed: true}})
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"a","completed":true}]`, value)
}
