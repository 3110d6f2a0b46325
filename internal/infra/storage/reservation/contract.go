package reservation

import (
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/dbmetrics"
)

// Database executor interfaces shared with dbmetrics.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
