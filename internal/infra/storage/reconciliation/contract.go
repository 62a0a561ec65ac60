package reconciliation

import "github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"

// DBExecutor интерфейс выполнения запросов (*sql.DB или *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor
