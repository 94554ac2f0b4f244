package user

import (
	"github.com/m04kA/SMC-HallBooking/pkg/dbmetrics"
)

// DBExecutor поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
