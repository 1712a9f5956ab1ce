package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/session"
	"todoWeb/internal/models/task"
	"todoWeb/internal/repository"
	"todoWeb/internal/repository/inmemory"
	"todoWeb/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ service.AccountRepository = (*inmemory.AccountStorage)(nil)
	_ service.TaskRepository    = (*inmemory.TaskStorage)(nil)
	_ service.SessionRepository = (*inmemory.SessionStorage)(nil)
)

// TestAccountStorage_Create проверяет выдачу id и значения по умолчанию
func TestAccountStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	admin := &account.Account{Username: "admin", FirstName: "Admin", LastName: "Admin", Password: "password", IsAdmin: true}
	require.NoError(t, storage.Create(ctx, admin))
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, account.StatusEnabled, admin.StatusID)
	assert.False(t, admin.CreatedAt.IsZero())

	user := &account.Account{Username: "jdoe", FirstName: "John", LastName: "Doe", Password: "secret"}
	require.NoError(t, storage.Create(ctx, user))
	assert.Equal(t, int64(2), user.ID)

	found, err := storage.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "secret", found.Password)
}

func TestAccountStorage_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	require.NoError(t, storage.Create(ctx, &account.Account{Username: "jdoe"}))
	err := storage.Create(ctx, &account.Account{Username: "jdoe"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	accounts, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAccountStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	_, err := storage.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, storage.UpdateDetails(ctx, &account.Account{ID: 42}), repository.ErrNotFound)
	assert.ErrorIs(t, storage.UpdatePassword(ctx, 42, "x"), repository.ErrNotFound)
	assert.ErrorIs(t, storage.UpdateDetailsAndPassword(ctx, &account.Account{ID: 42}, "x"), repository.ErrNotFound)
}

func TestAccountStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	acc := &account.Account{Username: "jdoe", FirstName: "John", LastName: "Doe", Password: "old"}
	require.NoError(t, storage.Create(ctx, acc))

	require.NoError(t, storage.UpdateDetails(ctx, &account.Account{
		ID: acc.ID, Username: "ignored", FirstName: "Jane", LastName: "Roe", StatusID: account.StatusDisabled,
	}))
	require.NoError(t, storage.UpdatePassword(ctx, acc.ID, "new"))

	found, err := storage.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", found.Username)
	assert.Equal(t, "Jane", found.FirstName)
	assert.Equal(t, "Roe", found.LastName)
	assert.Equal(t, account.StatusDisabled, found.StatusID)
	assert.Equal(t, "new", found.Password)
}

func TestAccountStorage_UpdateDetailsAndPassword(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	acc := &account.Account{Username: "jdoe", FirstName: "John", LastName: "Doe", Password: "old", StatusID: account.StatusEnabled}
	require.NoError(t, storage.Create(ctx, acc))

	require.NoError(t, storage.UpdateDetailsAndPassword(ctx, &account.Account{
		ID: acc.ID, FirstName: "Jane", LastName: "Roe", StatusID: account.StatusDisabled, Password: "ignored",
	}, "password"))

	found, err := storage.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.FirstName)
	assert.Equal(t, "Roe", found.LastName)
	assert.Equal(t, account.StatusDisabled, found.StatusID)
	assert.Equal(t, "password", found.Password)
}

func TestAccountStorage_ListStableOrder(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	for i := 0; i < 10; i++ {
		require.NoError(t, storage.Create(ctx, &account.Account{Username: fmt.Sprintf("user%d", i)}))
	}

	first, err := storage.List(ctx)
	require.NoError(t, err)
	second, err := storage.List(ctx)
	require.NoError(t, err)

	require.Len(t, first, 10)
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}
}

func TestAccountStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewAccountStorage()

	acc := &account.Account{Username: "jdoe", FirstName: "John"}
	require.NoError(t, storage.Create(ctx, acc))
	acc.FirstName = "mutated"

	found, err := storage.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	found.FirstName = "mutated again"

	again, err := storage.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", again.FirstName)
}

func TestTaskStorage_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	taskToCreate := &task.Task{
		AccountID: 2,
		Details:   "Buy milk",
		Deadline:  time.Now().Add(24 * time.Hour),
	}

	require.NoError(t, storage.Create(ctx, taskToCreate))
	assert.Equal(t, int64(1), taskToCreate.ID)
	assert.Equal(t, task.StatusPending, taskToCreate.StatusID)
	assert.Equal(t, task.PriorityNormal, taskToCreate.PriorityID)
	assert.False(t, taskToCreate.CreatedAt.IsZero())
	assert.False(t, taskToCreate.LastUpdated.IsZero())
}

func TestTaskStorage_ListByAccountOrdered(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, storage.Create(ctx, &task.Task{
			AccountID: 2,
			Details:   fmt.Sprintf("task %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Deadline:  base.Add(48 * time.Hour),
		}))
	}
	require.NoError(t, storage.Create(ctx, &task.Task{AccountID: 3, Details: "other", CreatedAt: base}))

	tasks, err := storage.ListByAccount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "task 2", tasks[0].Details)
	assert.Equal(t, "task 1", tasks[1].Details)
	assert.Equal(t, "task 0", tasks[2].Details)
	for _, got := range tasks {
		assert.Equal(t, int64(2), got.AccountID)
	}
}

func TestTaskStorage_Filters(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	require.NoError(t, storage.Create(ctx, &task.Task{AccountID: 2, Details: "a", StatusID: task.StatusPending, PriorityID: task.PriorityHigh}))
	require.NoError(t, storage.Create(ctx, &task.Task{AccountID: 2, Details: "b", StatusID: task.StatusCompleted, PriorityID: task.PriorityHigh}))
	require.NoError(t, storage.Create(ctx, &task.Task{AccountID: 2, Details: "c", StatusID: task.StatusCompleted, PriorityID: task.PriorityLow}))
	require.NoError(t, storage.Create(ctx, &task.Task{AccountID: 3, Details: "d", StatusID: task.StatusCompleted, PriorityID: task.PriorityHigh}))

	completed, err := storage.ListByAccountAndStatus(ctx, 2, task.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	high, err := storage.ListByAccountAndPriority(ctx, 2, task.PriorityHigh)
	require.NoError(t, err)
	assert.Len(t, high, 2)
}

func TestTaskStorage_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	created := &task.Task{AccountID: 2, Details: "Buy milk", Deadline: time.Now()}
	require.NoError(t, storage.Create(ctx, created))

	later := time.Now().Add(time.Hour)
	require.NoError(t, storage.Update(ctx, &task.Task{
		ID:          created.ID,
		AccountID:   99,
		Details:     "Buy bread",
		StatusID:    task.StatusInProgress,
		PriorityID:  task.PriorityLow,
		Deadline:    later,
		LastUpdated: later,
	}))

	found, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.AccountID, "владелец не меняется при обновлении")
	assert.Equal(t, "Buy bread", found.Details)
	assert.Equal(t, task.StatusInProgress, found.StatusID)
	assert.Equal(t, task.PriorityLow, found.PriorityID)
	assert.True(t, found.LastUpdated.Equal(later))

	require.NoError(t, storage.Delete(ctx, created.ID))
	_, err = storage.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, storage.Delete(ctx, created.ID), repository.ErrNotFound)
	assert.ErrorIs(t, storage.Update(ctx, created), repository.ErrNotFound)
}

// TestTaskStorage_Concurrent проверяет потокобезопасность
func TestTaskStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = storage.Create(ctx, &task.Task{AccountID: 2, Details: fmt.Sprintf("task %d", i)})
			_, _ = storage.ListByAccount(ctx, 2)
		}(i)
	}
	wg.Wait()

	tasks, err := storage.ListByAccount(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, tasks, 50)
}

func TestSessionStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewSessionStorage()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := storage.GetLatestByAccount(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, storage.Create(ctx, &session.AccountSession{SessionID: "s1", AccountID: 2, SessionCreated: base, LastAccessed: base}))
	require.NoError(t, storage.Create(ctx, &session.AccountSession{SessionID: "s2", AccountID: 2, SessionCreated: base.Add(time.Hour), LastAccessed: base.Add(time.Hour)}))
	require.NoError(t, storage.Create(ctx, &session.AccountSession{SessionID: "s3", AccountID: 3, SessionCreated: base.Add(2 * time.Hour)}))

	latest, err := storage.GetLatestByAccount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "s2", latest.SessionID)

	sessions, err := storage.ListByAccount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].SessionID)
	assert.Equal(t, "s1", sessions[1].SessionID)

	accessed := base.Add(90 * time.Minute)
	require.NoError(t, storage.UpdateLastAccessed(ctx, "s2", accessed))
	require.NoError(t, storage.UpdateSessionEnd(ctx, "s2", accessed))

	found, err := storage.GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, found.LastAccessed.Equal(accessed))
	require.NotNil(t, found.SessionEnd)
	assert.True(t, found.SessionEnd.Equal(accessed))

	assert.ErrorIs(t, storage.UpdateLastAccessed(ctx, "missing", accessed), repository.ErrNotFound)
	assert.ErrorIs(t, storage.UpdateSessionEnd(ctx, "missing", accessed), repository.ErrNotFound)

	require.NoError(t, storage.DeleteByAccount(ctx, 2))
	sessions, err = storage.ListByAccount(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, storage.Delete(ctx, "s3"))
	_, err = storage.GetByID(ctx, "s3")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
