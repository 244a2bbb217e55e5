package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type ConnectParams struct {
	Driver     string
	Host       string
	Port       string
	Database   string
	User       string
	Password   string
	SqlitePath string
	DebugMode  bool
	Migrate    bool
}

func Connect(params ConnectParams) (err error) {
	if DB == nil {
		dialector, err := getDialector(params)
		if err != nil {
			return err
		}
		db, err := Open(dialector)
		if err != nil {
			return errors.Wrap(err, "database connection failed")
		}
		if params.DebugMode {
			db.Logger = logger.Default.LogMode(logger.Info)
			DB = db.Debug()
		} else {
			DB = db
		}
		if params.Migrate {
			err = AutoMigrateDB()
			if err != nil {
				return err
			}
		}
		log.WithField("driver", params.Driver).Info("Service connected to the database")
	}
	return nil
}

// Open applies the settings every connection needs: unique violations must surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	})
}

func getDialector(params ConnectParams) (gorm.Dialector, error) {
	switch params.Driver {
	case DriverPostgres, "":
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			params.Host, params.Port, params.User, params.Database, params.Password)
		return postgres.Open(dbConnString), nil
	case DriverSqlite:
		return sqlite.Open(params.SqlitePath + "?_foreign_keys=on"), nil
	}
	return nil, errors.Errorf("unsupported database driver: %v", params.Driver)
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}
