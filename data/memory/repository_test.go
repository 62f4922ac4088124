package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/data/repotest"
	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

func TestEventRepository_Contract(t *testing.T) {
	repotest.RunEventContract(t, func(t *testing.T) event.IRepository { return NewEventRepository() })
}

func TestUserRepository_Contract(t *testing.T) {
	repotest.RunUserContract(t, func(t *testing.T) user.IRepository { return NewUserRepository() })
}

func TestTicketRepository_Contract(t *testing.T) {
	repotest.RunTicketContract(t, func(t *testing.T) ticket.IRepository { return NewTicketRepository() })
}

// TestRepository_BulkInsertAtomic 测试批量插入遇到重复标识时不写入任何实体
func TestRepository_BulkInsertAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	existing := event.New(event.Props{Title: "a"})
	require.NoError(t, repo.Insert(ctx, existing))

	err := repo.BulkInsert(ctx, []*event.Event{event.New(event.Props{Title: "b"}), existing})

	var exists *repository.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_InsertStoresCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	e := event.New(event.Props{Title: "original"})
	require.NoError(t, repo.Insert(ctx, e))

	e.ChangeTitle("mutated after insert")

	got, err := repo.FindByID(ctx, e.ID())
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title())
}

func TestRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewEventRepository()

	_, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Insert(ctx, event.New(event.Props{})), context.Canceled)
}

// TestRepository_UnknownSortFallsBackToDefault 测试比较函数缺失时回退到默认排序
func TestRepository_UnknownSortFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[*event.Event, event.EventID](Options[*event.Event, event.Filter]{
		Kind:        event.Kind,
		Sortable:    []string{"title", "popularity"},
		Comparators: event.Comparators(),
		DefaultSort: event.DefaultSort,
	})
	base := time.Now()
	older := event.New(event.Props{Title: "older", CreatedAt: base})
	newer := event.New(event.Props{Title: "newer", CreatedAt: base.Add(time.Second)})
	require.NoError(t, repo.BulkInsert(ctx, []*event.Event{older, newer}))

	params := repository.NewSearchParams(repository.SearchInput[event.Filter]{Sort: "popularity"}, repo.SortableFields(), nil)
	result, err := repo.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "newer", result.Items[0].Title())
}

func TestTransactor(t *testing.T) {
	ctx := context.Background()
	tx := NewTransactor()

	called := false
	require.NoError(t, tx.Run(ctx, repository.TxCreate, event.Kind, func(ctx context.Context) error {
		called = true
		return nil
	}))
	assert.True(t, called)

	cause := errors.New("boom")
	err := tx.Run(ctx, repository.TxDelete, event.Kind, func(ctx context.Context) error { return cause })

	var txErr *repository.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, repository.TxDelete, txErr.Op)
	assert.Equal(t, event.Kind, txErr.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to delete Event: boom", err.Error())
}
