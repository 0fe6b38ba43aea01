package registry

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"bank-ledger/internal/adapter/repository/gormrepo"
	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/ledger"
	"bank-ledger/internal/domain/user"
	"bank-ledger/internal/infrastructure/logging"
	"bank-ledger/internal/testutil/ledgertest"
	"bank-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *gormrepo.UserRepository
	accounts *gormrepo.AccountRepository
	uc       *Usecase
}

func setup(t *testing.T, opts ...Option) fixture {
	t.Helper()
	db := ledgertest.OpenDB(t)
	f := fixture{
		db:       db,
		users:    gormrepo.NewUserRepository(db),
		accounts: gormrepo.NewAccountRepository(db),
	}
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	f.uc = NewUsecase(gormrepo.NewGormUoW(db), f.users, f.accounts, opts...)
	return f
}

// seq hands out the given numbers in order, repeating the last one.
func seq(numbers ...string) (func() string, *int) {
	var mu sync.Mutex
	calls := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		i := calls
		calls++
		if i >= len(numbers) {
			i = len(numbers) - 1
		}
		return numbers[i]
	}, &calls
}

func register(t *testing.T, uc *Usecase, email string) (*user.User, *account.Account) {
	t.Helper()
	u, a, err := uc.RegisterUser(context.Background(), RegisterUserInput{Username: "u", Email: email, Credential: "hash"})
	require.NoError(t, err)
	return u, a
}

func TestRegisterUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u, a := register(t, f.uc, "Ana@Example.com ")
	assert.True(t, id.IsID32(u.UserID))
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, id.IsAccountNumber(a.AccountNumber))
	assert.Equal(t, account.TypeSavings, a.Type)
	assert.True(t, a.Balance.IsZero())

	got, err := f.uc.FindAccount(ctx, account.Ref{UserID: u.UserID})
	require.NoError(t, err)
	assert.Equal(t, a.AccountNumber, got.AccountNumber)

	_, _, err = f.uc.RegisterUser(ctx, RegisterUserInput{Username: "x", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)

	_, _, err = f.uc.RegisterUser(ctx, RegisterUserInput{Username: "", Email: "b@example.com"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

// A failed account open must not leave an orphan user behind.
func TestRegisterUser_RollsBackUserOnExhaustion(t *testing.T) {
	next, _ := seq("11111111")
	f := setup(t, WithNumberSource(next), WithPolicy(Policy{SingleAccountPerUser: true, MaxNumberAttempts: 2}))
	ctx := context.Background()

	register(t, f.uc, "first@example.com")
	_, _, err := f.uc.RegisterUser(ctx, RegisterUserInput{Username: "b", Email: "second@example.com"})
	require.ErrorIs(t, err, ledger.ErrExhaustedIDSpace)

	var n int64
	require.NoError(t, f.db.Model(&user.User{}).Where("email = ?", "second@example.com").Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateAccount_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.CreateAccount(ctx, "nope", account.TypeSavings)
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)

	_, err = f.uc.CreateAccount(ctx, id.NewID32(), account.Type("checking"))
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)

	_, err = f.uc.CreateAccount(ctx, id.NewID32(), account.TypeSavings)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCreateAccount_SingleAccountPolicy(t *testing.T) {
	f := setup(t)
	u, _ := register(t, f.uc, "a@example.com")

	_, err := f.uc.CreateAccount(context.Background(), u.UserID, account.TypeCurrent)
	assert.ErrorIs(t, err, ledger.ErrDuplicateAccount)
}

func TestCreateAccount_MultiAccountPolicy(t *testing.T) {
	f := setup(t, WithPolicy(Policy{SingleAccountPerUser: false}))
	ctx := context.Background()
	u, first := register(t, f.uc, "a@example.com")

	second, err := f.uc.CreateAccount(ctx, u.UserID, account.TypeCurrent)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccountNumber, second.AccountNumber)

	oldest, err := f.uc.FindAccount(ctx, account.Ref{UserID: u.UserID})
	require.NoError(t, err)
	assert.Equal(t, first.AccountNumber, oldest.AccountNumber)

	list, err := f.uc.ListAccounts(ctx, u.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateAccount_RetriesCollisions(t *testing.T) {
	next, calls := seq("11111111", "11111111", "11111111", "22222222")
	f := setup(t, WithNumberSource(next), WithPolicy(Policy{MaxNumberAttempts: 5}))
	ctx := context.Background()

	u, a := register(t, f.uc, "a@example.com")
	assert.Equal(t, "11111111", a.AccountNumber)

	b, err := f.uc.CreateAccount(ctx, u.UserID, account.TypeCurrent)
	require.NoError(t, err)
	assert.Equal(t, "22222222", b.AccountNumber)
	assert.Equal(t, 4, *calls)
}

func TestCreateAccount_ExhaustedIDSpace(t *testing.T) {
	next, calls := seq("11111111")
	f := setup(t, WithNumberSource(next), WithPolicy(Policy{MaxNumberAttempts: 3}))
	u, _ := register(t, f.uc, "a@example.com")

	_, err := f.uc.CreateAccount(context.Background(), u.UserID, account.TypeSavings)
	assert.ErrorIs(t, err, ledger.ErrExhaustedIDSpace)
	assert.Equal(t, 1+3, *calls)
}

func TestCreateAccount_ConcurrentNumbersStayUnique(t *testing.T) {
	// every number is handed out twice, so half the draws collide
	var mu sync.Mutex
	draws := 0
	next := func() string {
		mu.Lock()
		defer mu.Unlock()
		n := 10_000_000 + draws/2
		draws++
		return strconv.Itoa(n)
	}
	f := setup(t, WithNumberSource(next))

	const workers = 20
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, a, err := f.uc.RegisterUser(context.Background(), RegisterUserInput{
				Username: "u", Email: "user" + strconv.Itoa(i) + "@example.com",
			})
			if err != nil {
				t.Errorf("register %d: %v", i, err)
				return
			}
			numbers <- a.AccountNumber
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for n := range numbers {
		assert.False(t, seen[n], "duplicate account number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func TestCreateAccount_ConcurrentSameUserSucceedsOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := &user.User{UserID: id.NewID32(), Username: "u", Email: "u@example.com"}
	require.NoError(t, f.users.Create(ctx, u))

	const workers = 10
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dupes  int
		unexpected []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.CreateAccount(ctx, u.UserID, account.TypeSavings)
			mu.Lock()
			defer mu.Unlock()
			switch ledger.KindOf(err) {
			case "":
				ok++
			case ledger.KindDuplicateAccount:
				dupes++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dupes)
}

func TestFindAccount_Refs(t *testing.T) {
	f := setup(t, WithPolicy(Policy{SingleAccountPerUser: false}))
	ctx := context.Background()
	u, first := register(t, f.uc, "a@example.com")
	second, err := f.uc.CreateAccount(ctx, u.UserID, account.TypeCurrent)
	require.NoError(t, err)

	got, err := f.uc.FindAccount(ctx, account.Ref{UserID: u.UserID, AccountNumber: second.AccountNumber})
	require.NoError(t, err)
	assert.Equal(t, second.AccountNumber, got.AccountNumber, "account number wins")

	got, err = f.uc.FindAccount(ctx, account.Ref{AccountNumber: first.AccountNumber})
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, got.AccountID)

	_, err = f.uc.FindAccount(ctx, account.Ref{})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	_, err = f.uc.FindAccount(ctx, account.Ref{AccountNumber: "0123"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	_, err = f.uc.FindAccount(ctx, account.Ref{AccountNumber: "99999999"})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestListAccounts_UnknownUser(t *testing.T) {
	f := setup(t)
	_, err := f.uc.ListAccounts(context.Background(), id.NewID32())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCloseAccount(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u, a := register(t, f.uc, "a@example.com")

	txs := gormrepo.NewTransactionRepository(f.db)
	for i := 0; i < 2; i++ {
		require.NoError(t, txs.Append(ctx, &account.Transaction{
			TxID: id.NewID32(), AccountID: a.ID, UserID: u.UserID, Type: account.TxDeposit,
			Amount: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(5),
		}))
	}

	c, err := f.uc.CloseAccount(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.EqualValues(t, 2, c.TransactionsRemoved)
	assert.Equal(t, u.UserID, c.UserID)

	_, err = f.uc.FindAccount(ctx, account.Ref{AccountNumber: a.AccountNumber})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	left, err := txs.ListByUserID(ctx, u.UserID, 0)
	require.NoError(t, err)
	assert.Empty(t, left)

	// the owner slot is free again
	_, err = f.uc.CreateAccount(ctx, u.UserID, account.TypeSavings)
	assert.NoError(t, err)

	_, err = f.uc.CloseAccount(ctx, a.AccountNumber)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = f.uc.CloseAccount(ctx, "bad")
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}
