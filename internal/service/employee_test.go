package service

import (
	"context"
	"testing"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/lib/utils"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// md5("123456"), the format of rows imported from the old admin.
const legacyDefaultDigest = "e10adc3949ba59abbe56e057f20f883e"

func newEmployeeService(t *testing.T, employees ...*model.Employee) (*EmployeeService, *fakeEmployees) {
	t.Helper()
	store := &fakeEmployees{byUsername: map[string]*model.Employee{}}
	for _, e := range employees {
		store.byUsername[e.Username] = e
	}
	return NewEmployeeService(store, fakeTokens{}, &nopLogger), store
}

func bcryptEmployee(t *testing.T, id int64, username, password string, status int) *model.Employee {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &model.Employee{ID: id, Username: username, Name: "Name " + username, Password: hash, Status: status}
}

func TestLogin_Success(t *testing.T) {
	svc, store := newEmployeeService(t, bcryptEmployee(t, 1, "admin", "secret", model.StatusEnable))

	resp, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "admin", resp.UserName)
	assert.Equal(t, "Name admin", resp.Name)
	assert.Equal(t, "token-for-employee", resp.Token)
	assert.Zero(t, store.passwordFor, "bcrypt hashes are not rewritten")
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc, _ := newEmployeeService(t)

	_, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newEmployeeService(t, bcryptEmployee(t, 1, "admin", "secret", model.StatusEnable))

	_, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, errs.ErrPasswordError)
}

func TestLogin_LockedAccount(t *testing.T) {
	svc, _ := newEmployeeService(t, bcryptEmployee(t, 2, "clerk", "secret", model.StatusDisable))

	_, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "clerk", Password: "secret"})
	assert.ErrorIs(t, err, errs.ErrAccountLocked)
}

func TestLogin_LockedAccountStillNeedsPassword(t *testing.T) {
	svc, _ := newEmployeeService(t, bcryptEmployee(t, 2, "clerk", "secret", model.StatusDisable))

	_, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "clerk", Password: "nope"})
	assert.ErrorIs(t, err, errs.ErrPasswordError)
}

func TestLogin_UpgradesLegacyDigest(t *testing.T) {
	admin := &model.Employee{ID: 1, Username: "admin", Password: legacyDefaultDigest, Status: model.StatusEnable}
	svc, store := newEmployeeService(t, admin)

	_, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "admin", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.passwordFor)

	ok, legacy, err := utils.VerifyPassword(store.passwordHash, "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, legacy)
}

func TestLogin_UpgradeFailureDoesNotFailLogin(t *testing.T) {
	admin := &model.Employee{ID: 1, Username: "admin", Password: legacyDefaultDigest, Status: model.StatusEnable}
	svc, store := newEmployeeService(t, admin)
	store.passwordErr = errBoom

	resp, err := svc.Login(context.Background(), &model.EmployeeLoginRequest{Username: "admin", Password: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestCreateEmployee_DefaultPasswordAndEnabled(t *testing.T) {
	svc, store := newEmployeeService(t)

	e, err := svc.Create(context.Background(), &model.CreateEmployeeRequest{EmployeeFields: model.EmployeeFields{
		Username: "zhang", Name: "Zhang", Phone: "13800000000", Sex: "1", IDNumber: "110101199001011234",
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(100), e.ID)
	assert.Equal(t, model.StatusEnable, store.created.Status)

	ok, _, err := utils.VerifyPassword(store.created.Password, model.DefaultPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetEmployee_NotFound(t *testing.T) {
	svc, _ := newEmployeeService(t)

	_, err := svc.GetByID(context.Background(), 9)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, 404, httpErr.Status)
}

func TestPageEmployees_EmptyRecords(t *testing.T) {
	svc, _ := newEmployeeService(t)

	page, err := svc.Page(context.Background(), &model.EmployeePageQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Records)
}
