package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/databases/databasetest"
	"collegeaccounts_backend/internals/features/finance/exam_fees/calculator"
	"collegeaccounts_backend/internals/features/finance/exam_fees/model"
	"collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

type fixture struct {
	svc   *ExamFeeService
	mr    *miniredis.Miniredis
	actor uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := databasetest.Open(t)
	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	u := &userModel.UserModel{Name: "Accounts Officer", Email: "officer@example.com", Password: "hash", Role: userModel.RoleAccountant, IsActive: true}
	require.NoError(t, db.Create(u).Error)

	return fixture{svc: NewExamFeeService(db, zap.NewNop(), store), mr: mr, actor: u.ID}
}

func input(this, other int64, thisRate, otherRate, expense string) calculator.ExamFeeInput {
	tr := decimal.RequireFromString(thisRate)
	or := decimal.RequireFromString(otherRate)
	ex := decimal.RequireFromString(expense)
	return calculator.ExamFeeInput{
		Year:                  2024,
		ExamCategory:          calculator.CategoryBoardUniversity,
		ExamName:              "HSC Board Exam",
		ThisCollegeCount:      &this,
		ThisCollegeRate:       &tr,
		OtherCollegeCount:     &other,
		OtherCollegeRate:      &or,
		ExamManagementExpense: &ex,
		Percents:              calculator.DefaultPercents(),
	}
}

func (f fixture) primeCache(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Cache.Set(cache.KeyDashboardSummary, []byte(`{}`), time.Minute))
}

func (f fixture) cached() bool {
	return f.mr.Exists("collegeaccounts:" + cache.KeyDashboardSummary)
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.primeCache(t)

	m, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(7000).Equal(m.ExamFeeTotalIncome))
	assert.True(t, decimal.NewFromInt(7000).Equal(m.ExamFeeTotalExpenses))
	assert.True(t, decimal.NewFromInt(6000).Equal(m.ExamFeeDistributableFund))
	require.NotNil(t, m.CreatedByUser)
	assert.Equal(t, f.actor, m.CreatedByUser.ID)
	assert.False(t, f.cached(), "write drops the dashboard summary")
}

func TestCreate_RejectedInputIsNotStored(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.primeCache(t)

	_, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "8000"))
	assert.Equal(t, domainerr.ExpenseExceedsIncome, domainerr.KindOf(err))

	rows, total, err := f.svc.List(ctx, repository.ListFilter{Params: helper.Params{Page: 1, PerPage: 10}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
	assert.True(t, f.cached(), "rejections leave the cache alone")
}

func TestUpdate_RecomputesEverything(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)

	next := input(10, 0, "100", "0", "0")
	next.ExamCategory = calculator.CategoryInternal
	next.ExamName = "Class XI Annual Exam"
	updated, err := f.svc.Update(ctx, f.actor, m.ExamFeeID, next)
	require.NoError(t, err)

	assert.Equal(t, m.ExamFeeID, updated.ExamFeeID)
	assert.Equal(t, "Internal", updated.ExamFeeCategory)
	assert.Equal(t, int64(10), updated.ExamFeeTotalStudents)
	assert.True(t, decimal.NewFromInt(1000).Equal(updated.ExamFeeTotalIncome))
	assert.True(t, decimal.NewFromInt(560).Equal(updated.ExamFeeDistribution.Data().StaffInvigilators.Amount))
	require.NotNil(t, updated.UpdatedByUser)
}

func TestUpdate_InvalidInputKeepsStoredRecord(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)

	bad := input(100, 50, "50", "40", "1000")
	bad.Percents.AdminCommittee = decimal.NewFromInt(31)
	_, err = f.svc.Update(ctx, f.actor, m.ExamFeeID, bad)
	assert.Equal(t, domainerr.DistributionPercentMismatch, domainerr.KindOf(err))

	got, err := f.svc.Get(ctx, m.ExamFeeID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(32).Equal(got.ExamFeeDistribution.Data().AdminCommittee.Percent))
}

func TestUpdateAndGet_Missing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, f.actor, uuid.New(), input(1, 0, "1", "0", "0"))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))

	_, err = f.svc.Get(ctx, uuid.New())
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)
	f.primeCache(t)

	require.NoError(t, f.svc.Delete(ctx, f.actor, m.ExamFeeID))
	assert.False(t, f.cached())

	var raw model.ExamFee
	require.NoError(t, f.svc.DB.Unscoped().Where("exam_fee_id = ?", m.ExamFeeID).Take(&raw).Error)
	assert.True(t, raw.ExamFeeDeletedAt.Valid)
	require.NotNil(t, raw.ExamFeeUpdatedBy)
	assert.Equal(t, f.actor, *raw.ExamFeeUpdatedBy, "deleter is recorded")

	_, err = f.svc.Get(ctx, m.ExamFeeID)
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(f.svc.Delete(ctx, f.actor, m.ExamFeeID)))

	_, err = f.svc.Update(ctx, f.actor, m.ExamFeeID, input(1, 0, "1", "0", "0"))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))
}

func TestList_UnknownCategory(t *testing.T) {
	f := setup(t)
	_, _, err := f.svc.List(context.Background(), repository.ListFilter{Category: "Quiz"})
	assert.Equal(t, domainerr.InvalidFieldValue, domainerr.KindOf(err))
}

func TestPreview(t *testing.T) {
	f := setup(t)
	rec, err := f.svc.Preview(input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(rec.Distribution.GovtTreasury.Amount))

	_, total, err := f.svc.List(context.Background(), repository.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "preview stores nothing")
}

func seedExports(t *testing.T, f fixture) []*model.ExamFee {
	t.Helper()
	ctx := context.Background()
	a, err := f.svc.Create(ctx, f.actor, input(100, 50, "50", "40", "1000"))
	require.NoError(t, err)
	in := input(20, 0, "150.5", "0", "10")
	in.ExamCategory = calculator.CategoryApplicationFee
	in.ExamName = "Class XI Admission Application Fee"
	b, err := f.svc.Create(ctx, f.actor, in)
	require.NoError(t, err)
	return []*model.ExamFee{a, b}
}

func TestExport_CSV(t *testing.T) {
	f := setup(t)
	seedExports(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), repository.ListFilter{
		Params: helper.Params{SortBy: "total_income", SortOrder: "asc"},
	}, FormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, "Application Fee", records[1][1])
	assert.Equal(t, "3010", records[1][7])
	assert.Equal(t, "7000", records[2][7])
	assert.Equal(t, "3360", records[2][15])
}

func TestExport_CSVEscapesFormulaText(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, name := range []string{"=HYPERLINK(\"http://x\")", "+1+1", "-2", "@SUM(A1)", "Normal - Exam"} {
		in := input(10, 0, "10", "0", "0")
		in.ExamName = name
		_, err := f.svc.Create(ctx, f.actor, in)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(ctx, repository.ListFilter{
		Params: helper.Params{SortBy: "created_at", SortOrder: "asc"},
	}, FormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	names := make([]string, 0, 5)
	for _, r := range records[1:] {
		names = append(names, r[2])
		assert.Equal(t, "100", r[7], "numbers stay numeric")
	}
	assert.ElementsMatch(t, []string{"'=HYPERLINK(\"http://x\")", "'+1+1", "'-2", "'@SUM(A1)", "Normal - Exam"}, names)
}

func TestExport_XLSX(t *testing.T) {
	f := setup(t)
	seedExports(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), repository.ListFilter{Category: "Board/University"}, FormatXLSX, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Exam Name", rows[0][2])
	assert.Equal(t, "HSC Board Exam", rows[1][2])
	assert.Equal(t, "7000", rows[1][7])
}

func TestExport_UnknownFormat(t *testing.T) {
	f := setup(t)
	err := f.svc.Export(context.Background(), repository.ListFilter{}, "pdf", &bytes.Buffer{})
	assert.Equal(t, domainerr.InvalidFieldValue, domainerr.KindOf(err))
}
