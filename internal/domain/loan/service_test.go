package loan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

// fixedClock 固定时钟,逾期判定测试用
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakeTxManager 直通事务管理器
// 内存仓储没有真实事务,直接执行fn即可;加锁保证串行,
// 模拟行锁对同一本书并发借阅的序列化效果
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeLoanRepo 内存版借阅仓储
type fakeLoanRepo struct {
	mu     sync.Mutex
	nextID uint
	loans  map[uint]*Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{nextID: 1, loans: make(map[uint]*Loan)}
}

func (r *fakeLoanRepo) Create(ctx context.Context, l *Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID
	r.nextID++
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) FindByID(ctx context.Context, id uint) (*Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, ErrLoanNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLoanRepo) Update(ctx context.Context, l *Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[l.ID]; !ok {
		return ErrLoanNotFound
	}
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) ExistsOpenByBookID(ctx context.Context, bookID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.BookID == bookID && l.IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepo) FindByBookID(ctx context.Context, bookID uint, page PageParams) ([]*Loan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*Loan
	for _, l := range r.loans {
		if l.BookID == bookID {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeLoanRepo) Find(ctx context.Context, params FilterParams) ([]*Loan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*Loan
	for _, l := range r.loans {
		// OR语义:匹配图书ISBN或借阅人任一条件
		isbnMatch := params.ISBN != "" && l.Book != nil && l.Book.ISBN == params.ISBN
		customerMatch := params.Customer != "" && l.Customer == params.Customer
		if isbnMatch || customerMatch {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeLoanRepo) FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*Loan
	for _, l := range r.loans {
		if l.IsOpen() && !l.LoanDate.After(cutoff) {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

// fakeBookRepo 内存版图书仓储(借阅测试只用到FindByID/LockByID)
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	_, err := r.FindByISBN(ctx, isbn)
	return err == nil, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error { return nil }

func (r *fakeBookRepo) Find(ctx context.Context, params book.FilterParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

// newTestService 组装测试用借阅服务
func newTestService(now time.Time, books ...*book.Book) (Service, *fakeLoanRepo) {
	repo := newFakeLoanRepo()
	svc := NewServiceWithClock(repo, newFakeBookRepo(books...), &fakeTxManager{}, fixedClock{now: now})
	return svc, repo
}

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func testBook(id uint, isbn string) *book.Book {
	return &book.Book{ID: id, Title: "测试图书", Author: "测试作者", ISBN: isbn}
}

func TestCreateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("正常借出", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		assert.NotZero(t, l.ID)
		assert.Equal(t, uint(1), l.BookID)
		assert.True(t, l.IsOpen(), "新借阅应处于未归还状态")
		assert.Nil(t, l.Returned, "新借阅的归还标记应为NULL")
	})

	t.Run("图书已借出应拒绝", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		_, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		// 同一本书第二次借出,无论借阅人是谁都应拒绝
		_, err = svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
		assert.ErrorIs(t, err, ErrBookAlreadyLoaned)
	})

	t.Run("不同图书互不影响", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"), testBook(2, "456"))

		_, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		// 同一借阅人可以同时借多本不同的书
		_, err = svc.CreateLoan(ctx, 2, "张三", "zhangsan@example.com", testNow)
		assert.NoError(t, err)
	})

	t.Run("图书不存在应拒绝", func(t *testing.T) {
		svc, _ := newTestService(testNow)

		_, err := svc.CreateLoan(ctx, 999, "张三", "zhangsan@example.com", testNow)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("借阅信息不完整应拒绝", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		_, err := svc.CreateLoan(ctx, 0, "张三", "zhangsan@example.com", testNow)
		assert.ErrorIs(t, err, ErrMissingBook)

		_, err = svc.CreateLoan(ctx, 1, "", "zhangsan@example.com", testNow)
		assert.ErrorIs(t, err, ErrInvalidLoan)

		_, err = svc.CreateLoan(ctx, 1, "张三", "", testNow)
		assert.ErrorIs(t, err, ErrInvalidLoan)
	})

	t.Run("失败的借阅不产生写入", func(t *testing.T) {
		svc, repo := newTestService(testNow, testBook(1, "123"))

		_, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		_, err = svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
		require.ErrorIs(t, err, ErrBookAlreadyLoaned)

		assert.Len(t, repo.loans, 1, "被拒绝的借阅不应写入任何记录")
	})

	t.Run("并发借阅同一本书只成功一次", func(t *testing.T) {
		svc, repo := newTestService(testNow, testBook(1, "123"))

		const workers = 10
		var wg sync.WaitGroup
		errs := make([]error, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
			}(i)
		}
		wg.Wait()

		success := 0
		for _, err := range errs {
			if err == nil {
				success++
			} else {
				assert.ErrorIs(t, err, ErrBookAlreadyLoaned)
			}
		}
		assert.Equal(t, 1, success, "并发借阅同一本书只应有一个成功")
		assert.Len(t, repo.loans, 1)
	})
}

func TestReturnLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("正常归还", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		returned, err := svc.ReturnLoan(ctx, l.ID, true)
		require.NoError(t, err)

		assert.False(t, returned.IsOpen(), "归还后应处于已归还状态")
	})

	t.Run("归还后可再次借出", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		_, err = svc.ReturnLoan(ctx, l.ID, true)
		require.NoError(t, err)

		// 归还后同一本书可以被借出
		l2, err := svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
		require.NoError(t, err)
		assert.NotEqual(t, l.ID, l2.ID, "再次借出应产生新的借阅记录")
	})

	t.Run("重复归还按幂等处理", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		_, err = svc.ReturnLoan(ctx, l.ID, true)
		require.NoError(t, err)

		// 对已归还的借阅再次设置归还标记,不报错
		returned, err := svc.ReturnLoan(ctx, l.ID, true)
		require.NoError(t, err)
		assert.False(t, returned.IsOpen())
	})

	t.Run("returned为false是自环迁移", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
		require.NoError(t, err)

		// 未归还状态下设置returned=false,仍为未归还
		updated, err := svc.ReturnLoan(ctx, l.ID, false)
		require.NoError(t, err)
		assert.True(t, updated.IsOpen())

		// 仍视为借出中,再次借出应拒绝
		_, err = svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
		assert.ErrorIs(t, err, ErrBookAlreadyLoaned)
	})

	t.Run("借阅记录不存在返回NotFound", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "123"))

		_, err := svc.ReturnLoan(ctx, 999, true)
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})
}

func TestGetOverdueLoans(t *testing.T) {
	ctx := context.Background()

	// 当前时间2024-06-15,宽限4天,截止日期2024-06-11
	// 借出日期在6-11当天或更早的未归还借阅为逾期
	loanDate := func(day int) time.Time {
		return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
	}

	t.Run("按宽限天数划分逾期", func(t *testing.T) {
		svc, _ := newTestService(testNow,
			testBook(1, "111"), testBook(2, "222"), testBook(3, "333"), testBook(4, "444"))

		// 6-10借出:超过宽限,逾期
		_, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", loanDate(10))
		require.NoError(t, err)

		// 6-11借出:恰好到达截止日期,逾期
		_, err = svc.CreateLoan(ctx, 2, "李四", "lisi@example.com", loanDate(11))
		require.NoError(t, err)

		// 6-12借出:还在宽限期内,不逾期
		_, err = svc.CreateLoan(ctx, 3, "王五", "wangwu@example.com", loanDate(12))
		require.NoError(t, err)

		// 6-15借出:当天,不逾期
		_, err = svc.CreateLoan(ctx, 4, "赵六", "zhaoliu@example.com", loanDate(15))
		require.NoError(t, err)

		overdue, err := svc.GetOverdueLoans(ctx, 4)
		require.NoError(t, err)

		require.Len(t, overdue, 2)
		customers := []string{overdue[0].Customer, overdue[1].Customer}
		assert.ElementsMatch(t, []string{"张三", "李四"}, customers)
	})

	t.Run("已归还的借阅不算逾期", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "111"))

		l, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", loanDate(1))
		require.NoError(t, err)

		_, err = svc.ReturnLoan(ctx, l.ID, true)
		require.NoError(t, err)

		overdue, err := svc.GetOverdueLoans(ctx, 4)
		require.NoError(t, err)
		assert.Empty(t, overdue)
	})

	t.Run("宽限天数非法时使用默认值", func(t *testing.T) {
		svc, _ := newTestService(testNow, testBook(1, "111"), testBook(2, "222"))

		// 6-11借出:按默认4天宽限,逾期
		_, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", loanDate(11))
		require.NoError(t, err)

		// 6-12借出:不逾期
		_, err = svc.CreateLoan(ctx, 2, "李四", "lisi@example.com", loanDate(12))
		require.NoError(t, err)

		overdue, err := svc.GetOverdueLoans(ctx, 0)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, "张三", overdue[0].Customer)
	})
}

func TestFindLoans(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLoanRepo()
	svc := NewServiceWithClock(repo, newFakeBookRepo(), &fakeTxManager{}, fixedClock{now: testNow})

	// 直接向仓储写入带关联图书的借阅记录
	seed := func(bookID uint, isbn, customer string) {
		require.NoError(t, repo.Create(ctx, &Loan{
			BookID:        bookID,
			Book:          testBook(bookID, isbn),
			Customer:      customer,
			CustomerEmail: customer + "@example.com",
			LoanDate:      testNow,
		}))
	}
	seed(1, "111", "张三")
	seed(2, "222", "李四")
	seed(3, "333", "王五")

	page := func() FilterParams {
		return FilterParams{Page: 1, PageSize: 20}
	}

	t.Run("只按ISBN匹配", func(t *testing.T) {
		params := page()
		params.ISBN = "111"

		loans, total, err := svc.FindLoans(ctx, params)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.Equal(t, "张三", loans[0].Customer)
	})

	t.Run("只按借阅人匹配", func(t *testing.T) {
		params := page()
		params.Customer = "李四"

		loans, total, err := svc.FindLoans(ctx, params)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.Equal(t, uint(2), loans[0].BookID)
	})

	t.Run("两个条件取并集", func(t *testing.T) {
		// ISBN匹配张三的借阅,借阅人匹配李四的借阅,OR语义下两条都返回
		params := page()
		params.ISBN = "111"
		params.Customer = "李四"

		loans, total, err := svc.FindLoans(ctx, params)
		require.NoError(t, err)
		require.Equal(t, int64(2), total)

		customers := make([]string, 0, len(loans))
		for _, l := range loans {
			customers = append(customers, l.Customer)
		}
		assert.ElementsMatch(t, []string{"张三", "李四"}, customers)
	})

	t.Run("两个条件都为空返回空", func(t *testing.T) {
		_, total, err := svc.FindLoans(ctx, page())
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

// TestLoanLifecycleScenario 借阅全流程
// 借出 → 同书再借被拒 → 归还 → 再次借出成功
func TestLoanLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(testNow, testBook(1, "123"))

	// 1. 张三借出
	l1, err := svc.CreateLoan(ctx, 1, "张三", "zhangsan@example.com", testNow)
	require.NoError(t, err)
	require.True(t, l1.IsOpen())

	// 2. 李四借同一本书,被拒
	_, err = svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
	require.ErrorIs(t, err, ErrBookAlreadyLoaned)

	// 3. 张三归还
	_, err = svc.ReturnLoan(ctx, l1.ID, true)
	require.NoError(t, err)

	// 4. 李四再次借出,成功
	l2, err := svc.CreateLoan(ctx, 1, "李四", "lisi@example.com", testNow)
	require.NoError(t, err)
	assert.True(t, l2.IsOpen())
	assert.NotEqual(t, l1.ID, l2.ID)
}

func TestLoanIsOverdue(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		loanDate time.Time
		returned *bool
		want     bool
	}{
		{"超过宽限未归还", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), nil, true},
		{"恰好到达截止日期", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), nil, true},
		{"宽限期内", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), nil, false},
		{"当天借出", today, nil, false},
		{"已归还", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), boolPtr(true), false},
		{"returned为false仍未归还", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), boolPtr(false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Loan{LoanDate: tt.loanDate, Returned: tt.returned}
			assert.Equal(t, tt.want, l.IsOverdue(today, 4))
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}
