// Package mock provides the in-process stand-ins the feature suite runs
// against: a shared in-memory sqlite database and a miniredis instance.
package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db wraps the shared sqlite connection and the models it was migrated
// with, keyed by table name for the seeding steps.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb opens the singleton in-memory database and migrates the given
// models. Every scenario shares one connection; resets happen per scenario
// through ClearDB.
func NewDb(schema string, models map[string]any) *Db {
	once.Do(func() {
		db = open(schema, models)
	})

	return db
}

func open(schema string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps the shared-cache memory DB alive for the
	// whole suite.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		schema: schema,
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB brings every table back to empty, re-creating the schema when
// needed. sqlite settles the shared schema asynchronously, so the whole
// sequence retries a few times.
func (d *Db) ClearDB() error {
	for attempt := 1; ; attempt++ {
		if attempt > 5 {
			return fmt.Errorf("failed to clear database after 5 attempts")
		}

		if err := d.DbConn.Exec("ATTACH ':memory:' AS " + d.schema).Error; err != nil {
			if !strings.Contains(err.Error(), "is already in use") {
				return err
			}
			// Already attached from a previous pass; tables exist
		} else {
			if err := d.rebuildTables(); err != nil {
				continue
			}

			time.Sleep(200 * time.Millisecond)

			_ = d.DbConn.Exec("PRAGMA schema_version").Error

			if err := d.checkTables(); err != nil {
				continue
			}
		}

		if err := d.truncateTables(); err != nil {
			continue
		}

		return nil
	}
}

// rebuildTables drops and re-migrates every registered model inside one
// exclusive transaction.
func (d *Db) rebuildTables() (err error) {
	tx := d.DbConn.Exec("BEGIN EXCLUSIVE")
	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Exec("ROLLBACK").Error
			err = fmt.Errorf("panic occurred while rebuilding tables: %v", rec)
		} else if err != nil {
			if errTx := tx.Exec("ROLLBACK").Error; errTx != nil {
				panic(errTx)
			}
		} else {
			if errTx := tx.Exec("COMMIT").Error; errTx != nil {
				panic(errTx)
			}
		}
	}()

	modelList := make([]any, 0, len(d.models))
	for _, model := range d.models {
		modelList = append(modelList, model)

		tableName, err := d.tableName(tx, model)
		if err != nil {
			return err
		}

		if err := tx.Exec("DROP TABLE IF EXISTS " + tableName).Error; err != nil {
			return err
		}
	}

	if err := tx.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !tx.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

// truncateTables empties every table without dropping it and resets the
// sqlite autoincrement counters.
func (d *Db) truncateTables() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}

		tableName, err := d.tableName(d.DbConn, model)
		if err != nil {
			return err
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tableName).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}

	return nil
}

// checkTables verifies each registered model migrated and is queryable.
func (d *Db) checkTables() error {
	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
		if err := d.DbConn.Find(&model).Error; err != nil {
			return fmt.Errorf("failed to query table for model %T: %w", model, err)
		}
	}

	return nil
}

// tableName resolves the table a model maps to.
func (d *Db) tableName(conn *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: conn}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

// GetModel returns the migrated model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
