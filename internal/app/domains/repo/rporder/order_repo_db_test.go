package rporder

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/pkg/errorx"
)

var dbNow = time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC)

// timeArg 按时间点比较 time.Time 参数
type timeArg time.Time

func (a timeArg) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && t.Equal(time.Time(a))
}

func newMockRepo(t *testing.T) (*OrderRepositoryImpl, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return &OrderRepositoryImpl{db: db}, mock
}

func mustReconcile(t *testing.T, update etorder.StatusUpdate) *etorder.StatusPatch {
	t.Helper()
	patch, err := etorder.Reconcile(update, dbNow)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	return patch
}

func verifyMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestApplyStatusPatchCommitsUpdateAndNote(t *testing.T) {
	repo, mock := newMockRepo(t)
	patch := mustReconcile(t, etorder.StatusUpdate{OrderStatus: "shipped", AdminNote: "awb 77"})
	patch.Note.ID = 42

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
		WithArgs("shipped", "shipped", timeArg(dbNow), "ord_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `order_admin_notes`")).
		WithArgs(int64(42), "ord_1", "awb 77", timeArg(dbNow)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	if err := repo.ApplyStatusPatch(context.Background(), "ord_1", patch, dbNow); err != nil {
		t.Fatalf("ApplyStatusPatch returned error: %v", err)
	}
	verifyMock(t, mock)
}

func TestApplyStatusPatchMissingOrderRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	patch := mustReconcile(t, etorder.StatusUpdate{OrderStatus: "packed", AdminNote: "x"})
	patch.Note.ID = 7

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `orders` WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectRollback()

	err := repo.ApplyStatusPatch(context.Background(), "missing", patch, dbNow)
	if !errors.Is(err, errorx.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	verifyMock(t, mock)
}

func TestApplyStatusPatchUnchangedValuesStillCommit(t *testing.T) {
	repo, mock := newMockRepo(t)
	patch := mustReconcile(t, etorder.StatusUpdate{PaymentStatus: "paid"})

	// MySQL 对未变化的行返回 0 affected rows
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `orders` WHERE id = ?")).
		WithArgs("ord_1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectCommit()

	if err := repo.ApplyStatusPatch(context.Background(), "ord_1", patch, dbNow); err != nil {
		t.Fatalf("ApplyStatusPatch returned error: %v", err)
	}
	verifyMock(t, mock)
}

func TestApplyStatusPatchNoteFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	patch := mustReconcile(t, etorder.StatusUpdate{Action: "cancel", AdminNote: "fraud check"})
	patch.Note.ID = 9

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `order_admin_notes`")).
		WillReturnError(errors.New("Duplicate entry '9' for key 'PRIMARY'"))
	mock.ExpectRollback()

	err := repo.ApplyStatusPatch(context.Background(), "ord_1", patch, dbNow)
	if err == nil || errors.Is(err, errorx.ErrOrderNotFound) {
		t.Fatalf("expected note insert error, got %v", err)
	}
	verifyMock(t, mock)
}

func TestApplyStatusPatchEmptyPatchSkipsDatabase(t *testing.T) {
	repo, mock := newMockRepo(t)

	if err := repo.ApplyStatusPatch(context.Background(), "ord_1", &etorder.StatusPatch{}, dbNow); err != nil {
		t.Fatalf("ApplyStatusPatch returned error: %v", err)
	}
	verifyMock(t, mock)
}

func TestGetByIDPreloadsNotesInOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := dbNow.Add(-time.Hour)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "status", "order_status", "payment_status", "payment_method",
			"transaction_id", "total_amount", "items", "created_at", "updated_at",
		}).AddRow(
			"ord_1", "u_1", "shipped", "shipped", "paid", "upi",
			"pay_1", 1299.0, []byte(`[{"ProductID":"p1","Quantity":1,"Price":1299}]`), created, dbNow,
		))
	mock.ExpectQuery("SELECT \\* FROM `order_admin_notes` WHERE .*order_id.* ORDER BY created_at ASC, id ASC").
		WithArgs("ord_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "note", "created_at"}).
			AddRow(int64(3), "ord_1", "packed", created).
			AddRow(int64(5), "ord_1", "handed to courier", created).
			AddRow(int64(4), "ord_1", "awb 77", dbNow))

	order, err := repo.GetByID(context.Background(), "ord_1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if order.OrderStatus != etorder.OrderStatusShipped || order.PaymentMethod != etorder.PaymentMethodUPI {
		t.Fatalf("order mismatch: %+v", order)
	}
	wantIDs := []int64{3, 5, 4}
	if len(order.AdminNotes) != len(wantIDs) {
		t.Fatalf("notes got %+v", order.AdminNotes)
	}
	for i, id := range wantIDs {
		if order.AdminNotes[i].ID != id {
			t.Fatalf("note %d: got id %d want %d", i, order.AdminNotes[i].ID, id)
		}
	}
	verifyMock(t, mock)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, errorx.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	verifyMock(t, mock)
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `orders` WHERE order_status = ? AND user_id = ?")).
		WithArgs("shipped", "u_1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE order_status = \\? AND user_id = \\? ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "order_status", "created_at"}).
			AddRow("ord_3", "u_1", "shipped", "shipped", dbNow))

	orders, total, err := repo.List(context.Background(),
		ListFilter{OrderStatus: etorder.OrderStatusShipped, UserID: "u_1"}, 2, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 || len(orders) != 1 || orders[0].ID != "ord_3" {
		t.Fatalf("list got total=%d orders=%+v", total, orders)
	}
	verifyMock(t, mock)
}
