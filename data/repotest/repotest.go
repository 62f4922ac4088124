// Package repotest 提供可搜索仓储的共享契约测试
//
// 每个仓储实现（内存、SQL）在自己的测试中调用这里的 Run* 函数，
// 保证所有后端的过滤/排序/分页结果完全一致。
package repotest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

// base 测试数据的基准时间，使用整秒 UTC 以便各后端无损往返
var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newEvent(title string, price float64, createdAt time.Time) *event.Event {
	return event.New(event.Props{
		Title:                 title,
		Description:           "description of " + title,
		Date:                  base.AddDate(0, 1, 0),
		Location:              "Lisboa",
		Price:                 price,
		TotalAvailableTickets: 100,
		CreatedAt:             createdAt,
	})
}

func prices(items []*event.Event) []float64 {
	out := make([]float64, len(items))
	for i, e := range items {
		out[i] = e.Price()
	}
	return out
}

func titles(items []*event.Event) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Title()
	}
	return out
}

// RunEventContract 执行活动仓储契约测试，newRepo 每次返回空仓储
func RunEventContract(t *testing.T, newRepo func(t *testing.T) event.IRepository) {
	ctx := context.Background()

	t.Run("Insert 与 FindByID", func(t *testing.T) {
		repo := newRepo(t)
		e := newEvent("Concert", 42.5, base)
		require.NoError(t, repo.Insert(ctx, e))

		got, err := repo.FindByID(ctx, e.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, e.ID(), got.ID())
		assert.Equal(t, e.Title(), got.Title())
		assert.Equal(t, e.Description(), got.Description())
		assert.Equal(t, e.Location(), got.Location())
		assert.Equal(t, e.Price(), got.Price())
		assert.Equal(t, e.TotalAvailableTickets(), got.TotalAvailableTickets())
		assert.True(t, e.Date().Equal(got.Date()))
		assert.True(t, e.CreatedAt().Equal(got.CreatedAt()))
	})

	t.Run("FindByID 不存在返回 nil", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.FindByID(ctx, event.NewEventID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("重复插入", func(t *testing.T) {
		repo := newRepo(t)
		e := newEvent("Concert", 10, base)
		require.NoError(t, repo.Insert(ctx, e))

		err := repo.Insert(ctx, e)
		var exists *repository.AlreadyExistsError
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("Update", func(t *testing.T) {
		repo := newRepo(t)
		e := newEvent("Concert", 10, base)
		require.NoError(t, repo.Insert(ctx, e))

		e.ChangeTitle("Renamed")
		e.UpdatePrice(99)
		require.NoError(t, repo.Update(ctx, e))

		got, err := repo.FindByID(ctx, e.ID())
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title())
		assert.Equal(t, 99.0, got.Price())

		err = repo.Update(ctx, newEvent("missing", 1, base))
		assert.True(t, errors.Is(err, repository.ErrEntityNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		e := newEvent("Concert", 10, base)
		require.NoError(t, repo.Insert(ctx, e))
		require.NoError(t, repo.Delete(ctx, e.ID()))

		got, err := repo.FindByID(ctx, e.ID())
		require.NoError(t, err)
		assert.Nil(t, got)

		err = repo.Delete(ctx, e.ID())
		var nf *repository.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, event.Kind, nf.Kind)
	})

	t.Run("BulkInsert 与 FindAll 保持插入顺序", func(t *testing.T) {
		repo := newRepo(t)
		items := []*event.Event{
			newEvent("b", 2, base),
			newEvent("a", 1, base.Add(time.Hour)),
			newEvent("c", 3, base.Add(-time.Hour)),
		}
		require.NoError(t, repo.BulkInsert(ctx, items))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, titles(all))
	})

	t.Run("按价格升序分页", func(t *testing.T) {
		repo := newRepo(t)
		for i, p := range []float64{30, 10, 50, 20, 40} {
			require.NoError(t, repo.Insert(ctx, newEvent(fmt.Sprintf("e%d", i), p, base)))
		}

		result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Page: 1, PerPage: 2, Sort: event.SortPrice, SortDirection: "asc",
		}))
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 20}, prices(result.Items))
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 3, result.LastPage)
		assert.Equal(t, 1, result.CurrentPage)
		assert.Equal(t, 2, result.PerPage)
		assert.Equal(t, event.SortPrice, result.Sort)
		assert.Equal(t, repository.SortAsc, result.SortDirection)
	})

	t.Run("默认按创建时间倒序", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.BulkInsert(ctx, []*event.Event{
			newEvent("old", 1, base),
			newEvent("new", 1, base.Add(2*time.Hour)),
			newEvent("mid", 1, base.Add(time.Hour)),
		}))

		result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{}))
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "mid", "old"}, titles(result.Items))
		assert.Empty(t, result.Sort)
	})

	t.Run("排序稳定性", func(t *testing.T) {
		repo := newRepo(t)
		// 价格并列组：{a1,a2,a3}=10，{b1,b2}=20
		require.NoError(t, repo.BulkInsert(ctx, []*event.Event{
			newEvent("a1", 10, base),
			newEvent("b1", 20, base),
			newEvent("a2", 10, base),
			newEvent("b2", 20, base),
			newEvent("a3", 10, base),
		}))

		asc, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Sort: event.SortPrice, SortDirection: "asc",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2", "a3", "b1", "b2"}, titles(asc.Items))

		desc, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Sort: event.SortPrice, SortDirection: "desc",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"b1", "b2", "a1", "a2", "a3"}, titles(desc.Items))
	})

	t.Run("每页条数规律", func(t *testing.T) {
		repo := newRepo(t)
		const total = 7
		for i := 0; i < total; i++ {
			require.NoError(t, repo.Insert(ctx, newEvent(fmt.Sprintf("e%d", i), float64(i), base)))
		}

		for _, perPage := range []int{1, 2, 3, 7, 10} {
			for page := 1; page <= 5; page++ {
				result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
					Page: page, PerPage: perPage, Sort: event.SortPrice, SortDirection: "asc",
				}))
				require.NoError(t, err)
				want := min(perPage, max(0, total-perPage*(page-1)))
				assert.Len(t, result.Items, want, "page=%d perPage=%d", page, perPage)
				assert.Equal(t, total, result.Total)
				assert.Equal(t, repository.LastPage(total, perPage), result.LastPage)
			}
		}
	})

	t.Run("过滤", func(t *testing.T) {
		repo := newRepo(t)
		rock := newEvent("Rock Festival", 30, base)
		jazz := newEvent("Jazz Night", 60, base)
		jazz.ChangeLocation("Porto")
		jazz.ChangeDate(base.AddDate(0, 3, 0))
		ete := newEvent("ÉTÉ Festival", 20, base)
		ete.ChangeLocation("Orléans")
		ete.ChangeDate(base.AddDate(0, 0, 10))
		require.NoError(t, repo.BulkInsert(ctx, []*event.Event{rock, jazz, ete}))

		min40 := 40.0
		tests := []struct {
			name   string
			filter event.Filter
			want   []string
		}{
			{name: "标题", filter: event.Filter{Title: "ROCK"}, want: []string{"Rock Festival"}},
			{name: "地点", filter: event.Filter{Location: "port"}, want: []string{"Jazz Night"}},
			{name: "日期区间", filter: event.Filter{DateRange: &event.DateRange{Start: base.AddDate(0, 2, 0)}}, want: []string{"Jazz Night"}},
			{name: "日期闭区间边界", filter: event.Filter{DateRange: &event.DateRange{Start: rock.Date(), End: rock.Date()}}, want: []string{"Rock Festival"}},
			{name: "价格区间", filter: event.Filter{PriceRange: &event.PriceRange{Min: &min40}}, want: []string{"Jazz Night"}},
			{name: "无匹配", filter: event.Filter{Title: "opera"}, want: []string{}},
			{name: "非 ASCII 原样匹配", filter: event.Filter{Title: "ÉTÉ"}, want: []string{"ÉTÉ Festival"}},
			{name: "非 ASCII 不折叠", filter: event.Filter{Title: "été"}, want: []string{}},
			{name: "ASCII 部分折叠", filter: event.Filter{Location: "ORLé"}, want: []string{"ÉTÉ Festival"}},
			{name: "按字节序排序", filter: event.Filter{Title: "festival"}, want: []string{"Rock Festival", "ÉTÉ Festival"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := tt.filter
				result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
					Sort: event.SortTitle, SortDirection: "asc", Filter: &f,
				}))
				require.NoError(t, err)
				assert.Equal(t, tt.want, titles(result.Items))
				assert.Equal(t, len(tt.want), result.Total)
			})
		}
	})

	t.Run("边界日期往返与排序", func(t *testing.T) {
		repo := newRepo(t)
		dates := map[string]time.Time{
			"epoch":   time.Unix(0, 0).UTC(),
			"1500":    time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC),
			"2300":    time.Date(2300, 6, 1, 8, 30, 0, 0, time.UTC),
			"nano":    base.Add(123456789 * time.Nanosecond),
			"y9999":   time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC),
			"cet": time.Date(1970, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
		}
		order := []string{"nano", "1500", "y9999", "epoch", "2300", "cet"}
		events := make([]*event.Event, 0, len(order))
		for _, title := range order {
			e := newEvent(title, 10, base)
			e.ChangeDate(dates[title])
			require.False(t, e.Notification().HasErrors(), title)
			events = append(events, e)
		}
		require.NoError(t, repo.BulkInsert(ctx, events))

		for _, e := range events {
			got, err := repo.FindByID(ctx, e.ID())
			require.NoError(t, err, e.Title())
			require.NotNil(t, got)
			assert.True(t, e.Date().Equal(got.Date()), "%s: %s != %s", e.Title(), e.Date(), got.Date())
		}

		result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Sort: event.SortDate, SortDirection: "asc",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"1500", "epoch", "cet", "nano", "2300", "y9999"}, titles(result.Items), "epoch 与 lisbon+ 同一时刻，保持插入顺序")

		result, err = repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Sort: event.SortDate, SortDirection: "asc",
			Filter: &event.Filter{DateRange: &event.DateRange{
				Start: dates["1500"],
				End:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			}},
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"1500", "epoch", "cet"}, titles(result.Items))
		assert.Equal(t, 3, result.Total)

		result, err = repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{
			Filter: &event.Filter{DateRange: &event.DateRange{Start: time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		}))
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.Total)
	})

	t.Run("超出最后一页", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, newEvent("only", 1, base)))

		result, err := repo.Search(ctx, event.NewSearchParams(repository.SearchInput[event.Filter]{Page: 3}))
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.NotNil(t, result.Items)
		assert.Equal(t, 1, result.Total)
		assert.Equal(t, 1, result.LastPage)
		assert.Equal(t, 3, result.CurrentPage)
	})

	t.Run("返回副本", func(t *testing.T) {
		repo := newRepo(t)
		e := newEvent("Concert", 10, base)
		require.NoError(t, repo.Insert(ctx, e))

		got, err := repo.FindByID(ctx, e.ID())
		require.NoError(t, err)
		got.UpdatePrice(1000)

		again, err := repo.FindByID(ctx, e.ID())
		require.NoError(t, err)
		assert.Equal(t, 10.0, again.Price())
	})
}

func newUser(name, email string, createdAt time.Time) *user.User {
	return user.New(user.Props{Name: name, Email: email, Password: "secret123", CreatedAt: createdAt})
}

func names(items []*user.User) []string {
	out := make([]string, len(items))
	for i, u := range items {
		out[i] = u.Name()
	}
	return out
}

// RunUserContract 执行用户仓储契约测试
func RunUserContract(t *testing.T, newRepo func(t *testing.T) user.IRepository) {
	ctx := context.Background()

	seed := func(t *testing.T, repo user.IRepository) {
		require.NoError(t, repo.BulkInsert(ctx, []*user.User{
			newUser("Alice", "alice@example.com", base),
			newUser("Bob", "bob@example.org", base.Add(time.Minute)),
			newUser("alice", "alice2@example.com", base.Add(2*time.Minute)),
		}))
	}

	t.Run("Insert 与 FindByID", func(t *testing.T) {
		repo := newRepo(t)
		u := newUser("Alice", "alice@example.com", base)
		require.NoError(t, repo.Insert(ctx, u))

		got, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID(), got.ID())
		assert.Equal(t, "Alice", got.Name())
		assert.Equal(t, "alice@example.com", got.Email())
		assert.Equal(t, "secret123", got.Password())
		assert.True(t, u.CreatedAt().Equal(got.CreatedAt()))
	})

	t.Run("FindByEmail 不区分大小写", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		got, err := repo.FindByEmail(ctx, "BOB@EXAMPLE.ORG")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Bob", got.Name())

		got, err = repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("FindByName 完全匹配", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.FindByName(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "alice"}, names(found))

		found, err = repo.FindByName(ctx, "Ali")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("非 ASCII 字符不折叠大小写", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, newUser("Élodie", "elodie@example.com", base)))

		found, err := repo.FindByName(ctx, "éLODIE")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = repo.FindByName(ctx, "ÉLODIE")
		require.NoError(t, err)
		assert.Equal(t, []string{"Élodie"}, names(found))

		result, err := repo.Search(ctx, user.NewSearchParams(repository.SearchInput[user.Filter]{
			Filter: &user.Filter{Name: "élo"},
		}))
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.Total)
	})

	t.Run("过滤与默认排序", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		result, err := repo.Search(ctx, user.NewSearchParams(repository.SearchInput[user.Filter]{
			Filter: &user.Filter{Email: "example.com"},
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "Alice"}, names(result.Items))
		assert.Equal(t, 2, result.Total)
	})

	t.Run("按邮箱排序", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		result, err := repo.Search(ctx, user.NewSearchParams(repository.SearchInput[user.Filter]{
			Sort: user.SortEmail, SortDirection: "asc",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "Alice", "Bob"}, names(result.Items), "alice2@ 按字节序排在 alice@ 之前")
	})
}

// RunTicketContract 执行门票仓储契约测试
func RunTicketContract(t *testing.T, newRepo func(t *testing.T) ticket.IRepository) {
	ctx := context.Background()
	evt := newEvent("Concert", 80, base)
	alice := newUser("Alice", "alice@example.com", base)
	bob := newUser("Bob", "bob@example.com", base)

	newTicket := func(owner *user.User, status ticket.Status, price float64) *ticket.Ticket {
		return ticket.New(ticket.Props{
			Event:        ticket.SnapshotEvent(evt),
			User:         ticket.SnapshotUser(owner),
			PurchaseDate: base,
			Price:        price,
			Status:       status,
			CreatedAt:    base,
		})
	}

	t.Run("Insert 与 FindByID 保留快照", func(t *testing.T) {
		repo := newRepo(t)
		tk := newTicket(alice, ticket.StatusActive, 80)
		require.NoError(t, repo.Insert(ctx, tk))

		got, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tk.ID(), got.ID())
		assert.Equal(t, evt.ID(), got.Event().ID)
		assert.Equal(t, "Concert", got.Event().Title)
		assert.Equal(t, "Lisboa", got.Event().Location)
		assert.Equal(t, 80.0, got.Event().Price)
		assert.True(t, evt.Date().Equal(got.Event().Date))
		assert.Equal(t, alice.ID(), got.User().ID)
		assert.Equal(t, "Alice", got.User().Name)
		assert.Equal(t, "alice@example.com", got.User().Email)
		assert.Equal(t, ticket.StatusActive, got.Status())
		assert.True(t, base.Equal(got.PurchaseDate()))
	})

	t.Run("按状态过滤保持相对顺序", func(t *testing.T) {
		repo := newRepo(t)
		first := newTicket(alice, ticket.StatusActive, 10)
		used := newTicket(alice, ticket.StatusUsed, 20)
		second := newTicket(bob, ticket.StatusActive, 30)
		require.NoError(t, repo.BulkInsert(ctx, []*ticket.Ticket{first, used, second}))

		result, err := repo.Search(ctx, ticket.NewSearchParams(repository.SearchInput[ticket.Filter]{
			Filter: &ticket.Filter{Status: "active"},
		}))
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, first.ID(), result.Items[0].ID())
		assert.Equal(t, second.ID(), result.Items[1].ID())
		assert.Equal(t, 2, result.Total)
	})

	t.Run("按用户与活动过滤", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.BulkInsert(ctx, []*ticket.Ticket{
			newTicket(alice, ticket.StatusActive, 10),
			newTicket(bob, ticket.StatusActive, 20),
			newTicket(alice, ticket.StatusCancelled, 30),
		}))

		result, err := repo.Search(ctx, ticket.NewSearchParams(repository.SearchInput[ticket.Filter]{
			Sort: ticket.SortPrice, SortDirection: "desc",
			Filter: &ticket.Filter{UserID: alice.ID(), EventID: evt.ID()},
		}))
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, 30.0, result.Items[0].Price())
		assert.Equal(t, 10.0, result.Items[1].Price())
	})

	t.Run("FindByUserID", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.BulkInsert(ctx, []*ticket.Ticket{
			newTicket(alice, ticket.StatusActive, 10),
			newTicket(bob, ticket.StatusActive, 20),
			newTicket(alice, ticket.StatusUsed, 30),
		}))

		found, err := repo.FindByUserID(ctx, alice.ID())
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 10.0, found[0].Price())
		assert.Equal(t, 30.0, found[1].Price())

		found, err = repo.FindByUserID(ctx, user.NewUserID())
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("更新状态", func(t *testing.T) {
		repo := newRepo(t)
		tk := newTicket(alice, ticket.StatusActive, 10)
		require.NoError(t, repo.Insert(ctx, tk))

		tk.Cancel()
		require.NoError(t, repo.Update(ctx, tk))

		got, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, ticket.StatusCancelled, got.Status())
	})
}
