package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

var errStore = errors.New("store error")

func TestPostgresLoad(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT value::text FROM kv_store WHERE key=\$1`).
		WithArgs(KeyProfile).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"id":"profile"}`))

	svc := NewPostgres(mock)
	v, ok, err := svc.Load(context.Background(), KeyProfile)
	if err != nil || !ok || string(v) != `{"id":"profile"}` {
		t.Fatalf("unexpected load: %q %v %v", v, ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresLoadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT value::text FROM kv_store`).
		WithArgs(KeyTasks).
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := NewPostgres(mock).Load(context.Background(), KeyTasks)
	if err != nil || ok {
		t.Fatalf("missing key should not be an error: ok=%v err=%v", ok, err)
	}
}

func TestPostgresLoadError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT value::text FROM kv_store`).
		WithArgs(KeyTasks).
		WillReturnError(errStore)

	if _, _, err := NewPostgres(mock).Load(context.Background(), KeyTasks); !errors.Is(err, errStore) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestPostgresCommitIsTransactional(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs(KeyProfile, `{"id":"profile"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs(KeyTravelRecords, `[]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = NewPostgres(mock).Commit(context.Background(), map[string][]byte{
		KeyTravelRecords: []byte(`[]`),
		KeyProfile:       []byte(`{"id":"profile"}`),
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCommitRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs(KeyProfile, `{}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs(KeyTravelRecords, `[]`).
		WillReturnError(errStore)
	mock.ExpectRollback()

	err = NewPostgres(mock).Commit(context.Background(), map[string][]byte{
		KeyProfile:       []byte(`{}`),
		KeyTravelRecords: []byte(`[]`),
	})
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresBeginError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errStore)
	if err := NewPostgres(mock).Commit(context.Background(), map[string][]byte{KeyTasks: []byte(`[]`)}); err == nil {
		t.Fatalf("expected begin error")
	}
}
