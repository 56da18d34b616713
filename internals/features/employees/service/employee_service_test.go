package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/databases/databasetest"
	"collegeaccounts_backend/internals/features/employees/model"
	"collegeaccounts_backend/internals/features/employees/repository"
	userModel "collegeaccounts_backend/internals/features/users/user/model"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/cache"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

type fixture struct {
	svc   *EmployeeService
	mr    *miniredis.Miniredis
	actor uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.Open(t)
	u := &userModel.UserModel{Name: "Head Clerk", Email: "clerk@example.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(u).Error)

	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return fixture{svc: NewEmployeeService(db, zap.NewNop(), store), mr: mr, actor: u.ID}
}

func teacher(name, designation, id, nid, etin string) Input {
	return Input{
		model.FieldName:        name,
		model.FieldDesignation: designation,
		model.FieldDepartment:  "Physics",
		model.FieldIDNumber:    id,
		model.FieldBCSBatch:    "28th",
		model.FieldNIDNumber:   nid,
		model.FieldETIN:        etin,
	}
}

func TestCreate_StoresCategoryFieldsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := Input{
		model.FieldName:        "Karim",
		model.FieldDesignation: "Office Assistant",
		model.FieldDepartment:  "Physics", // tidak dipakai kategori ini
		model.FieldNIDNumber:   "1990123456",
		model.FieldETIN:        "ET-1",
	}
	m, err := f.svc.Create(ctx, f.actor, "nonGovernment4thClass", in)
	require.NoError(t, err)
	assert.Nil(t, m.EmployeeDepartment)
	assert.Nil(t, m.EmployeeIDNumber)
	require.NotNil(t, m.CreatedByUser)
	assert.Equal(t, "clerk@example.com", m.CreatedByUser.Email)
}

func TestCreate_InvalidCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.actor, "janitor", Input{})
	assert.Equal(t, domainerr.InvalidCategory, domainerr.KindOf(err))

	_, _, err = f.svc.List(context.Background(), "janitor", "", helper.Params{})
	assert.Equal(t, domainerr.InvalidCategory, domainerr.KindOf(err))
}

func TestCreate_MissingRequiredFieldsListsLabels(t *testing.T) {
	f := newFixture(t)
	in := teacher("Dr. Ayesha", "Professor", "", "", "ET-9")
	in[model.FieldDepartment] = ""

	_, err := f.svc.Create(context.Background(), f.actor, "governmentTeacher", in)
	de, ok := domainerr.As(err)
	require.True(t, ok)
	assert.Equal(t, domainerr.MissingRequiredField, de.Kind)
	assert.Equal(t, "department", de.Field)
	assert.Equal(t, "missing required fields: Department, ID Number, NID Number", de.Message)
}

func TestCreate_DuplicatePerCategoryAmongActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.actor, "governmentTeacher", teacher("A", "Professor", "T-1", "NID-1", "ET-1"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.actor, "governmentTeacher", teacher("B", "Lecture", "T-2", "NID-1", "ET-2"))
	de, ok := domainerr.As(err)
	require.True(t, ok)
	assert.Equal(t, domainerr.DuplicateUniqueField, de.Kind)
	assert.Equal(t, "nid_number", de.Field)
	assert.Equal(t, "NID Number already exists for this category", de.Message)

	// kategori lain boleh pakai nilai yang sama
	_, err = f.svc.Create(ctx, f.actor, "guestTeacher", teacher("B", "Guest Lecturer", "T-1", "NID-1", "ET-1"))
	require.NoError(t, err)

	// setelah dihapus, nilainya bisa dipakai lagi
	require.NoError(t, f.svc.Delete(ctx, f.actor, "governmentTeacher", first.EmployeeID))
	_, err = f.svc.Create(ctx, f.actor, "governmentTeacher", teacher("C", "Professor", "T-1", "NID-1", "ET-1"))
	require.NoError(t, err)
}

func TestCreate_UniqueIndexBackstop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.actor, "librarian", Input{
		model.FieldName: "L1", model.FieldDesignation: "Librarian", model.FieldIDNumber: "LB-1",
		model.FieldNIDNumber: "N-1", model.FieldETIN: "E-1",
	})
	require.NoError(t, err)

	// lewati checkUnique: insert langsung harus ditolak index unik
	dup := &model.Employee{
		EmployeeCategory: "librarian", EmployeeName: "L2", EmployeeDesignation: "Librarian",
		EmployeeNIDNumber: "N-1", EmployeeETIN: "E-2",
	}
	err = repository.Create(ctx, f.svc.DB, dup)
	require.Error(t, err)
	cfg, _ := model.LookupCategory("librarian")
	assert.Equal(t, domainerr.DuplicateUniqueField, domainerr.KindOf(fromUniqueViolation(cfg, err)))
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.actor, "governmentTeacher", teacher("A", "Professor", "T-1", "NID-1", "ET-1"))
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, f.actor, "governmentTeacher", teacher("B", "Lecture", "T-2", "NID-2", "ET-2"))
	require.NoError(t, err)

	// nilai unik milik sendiri boleh dipertahankan
	in := teacher("A. Rahman", "Associate Professor", "T-1", "NID-1", "ET-1")
	in[model.FieldBCSBatch] = ""
	got, err := f.svc.Update(ctx, f.actor, "governmentTeacher", a.EmployeeID, in)
	require.NoError(t, err)
	assert.Equal(t, "A. Rahman", got.EmployeeName)
	assert.Nil(t, got.EmployeeBCSBatch)
	require.NotNil(t, got.UpdatedByUser)

	// bentrok dengan baris lain
	_, err = f.svc.Update(ctx, f.actor, "governmentTeacher", b.EmployeeID, teacher("B", "Lecture", "T-1", "NID-2", "ET-2"))
	de, ok := domainerr.As(err)
	require.True(t, ok)
	assert.Equal(t, domainerr.DuplicateUniqueField, de.Kind)
	assert.Equal(t, "id_number", de.Field)

	// id dari kategori lain → not found
	_, err = f.svc.Update(ctx, f.actor, "guestTeacher", b.EmployeeID, teacher("B", "Lecture", "T-9", "NID-9", "ET-9"))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))

	_, err = f.svc.Update(ctx, f.actor, "governmentTeacher", uuid.New(), teacher("X", "Lecture", "T-9", "NID-9", "ET-9"))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))
}

func TestList_DesignationOrderThenCreatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mk := func(name, designation, n string) {
		_, err := f.svc.Create(ctx, f.actor, "governmentTeacher", teacher(name, designation, "T-"+n, "NID-"+n, "ET-"+n))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	mk("Lecturer One", "Lecture", "1")
	mk("Prof One", "Professor", "2")
	mk("Visiting", "Visiting Scholar", "3")
	mk("Prof Two", "Professor", "4")
	mk("Assoc", "Associate Professor", "5")

	rows, total, err := f.svc.List(ctx, "governmentTeacher", "", helper.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	var names []string
	for _, r := range rows {
		names = append(names, r.EmployeeName)
	}
	assert.Equal(t, []string{"Prof One", "Prof Two", "Assoc", "Lecturer One", "Visiting"}, names)

	rows, total, err = f.svc.List(ctx, "governmentTeacher", "nid-4", helper.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Prof Two", rows[0].EmployeeName)

	rows, total, err = f.svc.List(ctx, "governmentTeacher", "", helper.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Assoc", rows[0].EmployeeName)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, f.actor, "government4thClass", Input{
		model.FieldName: "Jamal", model.FieldDesignation: "Book Sorter", model.FieldIDNumber: "G4-1",
		model.FieldNIDNumber: "N-1", model.FieldETIN: "E-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(f.svc.Delete(ctx, f.actor, "government3rdClass", m.EmployeeID)))
	require.NoError(t, f.svc.Delete(ctx, f.actor, "government4thClass", m.EmployeeID))
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(f.svc.Delete(ctx, f.actor, "government4thClass", m.EmployeeID)))

	_, err = f.svc.Get(ctx, "government4thClass", m.EmployeeID)
	assert.Equal(t, domainerr.NotFound, domainerr.KindOf(err))

	var row model.Employee
	require.NoError(t, f.svc.DB.Unscoped().Where("employee_id = ?", m.EmployeeID).First(&row).Error)
	assert.True(t, row.EmployeeDeletedAt.Valid)
	require.NotNil(t, row.EmployeeUpdatedBy)
	assert.Equal(t, f.actor, *row.EmployeeUpdatedBy)
}

func TestWritesInvalidateDashboardCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Cache.Set(cache.KeyDashboardSummary, []byte(`{}`), time.Minute))
	_, err := f.svc.Create(ctx, f.actor, "administration", Input{
		model.FieldName: "Principal X", model.FieldDesignation: "Principal", model.FieldIDNumber: "A-1",
		model.FieldNIDNumber: "N-1", model.FieldETIN: "E-1",
	})
	require.NoError(t, err)

	v, err := f.svc.Cache.Get(cache.KeyDashboardSummary)
	require.NoError(t, err)
	assert.Nil(t, v)

	// rejected write leaves the cache alone
	require.NoError(t, f.svc.Cache.Set(cache.KeyDashboardSummary, []byte(`{}`), time.Minute))
	_, err = f.svc.Create(ctx, f.actor, "administration", Input{})
	require.Error(t, err)
	v, err = f.svc.Cache.Get(cache.KeyDashboardSummary)
	require.NoError(t, err)
	assert.NotNil(t, v)
}
