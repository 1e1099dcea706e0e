package pgdb

import (
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

const logsTable = "logs"

func BuildSelectLogs(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.
		Select("microservice", "message").
		From(logsTable).
		OrderBy("created_at", "id")
}

func BuildInsertLog(b sq.StatementBuilderType, logObj *domain.Log) sq.InsertBuilder {
	return b.
		Insert(logsTable).
		Columns("microservice", "message").
		Values(logObj.Microservice, logObj.Message)
}
