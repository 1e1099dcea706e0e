package pgdb

import (
	"context"
	"fmt"

	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/repoerrs"
	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	"github.com/Camping-RSO/camping-logs-ms/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

func (r *LogRepo) GetLogs(ctx context.Context) ([]domain.Log, error) {
	sql, args, err := BuildSelectLogs(r.Builder).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		if errorsUtils.IsUndefinedTable(err) {
			return nil, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", repoerrs.ErrStoreNotReady, err))
		}
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Log])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if logs == nil {
		logs = []domain.Log{}
	}
	return logs, nil
}

func (r *LogRepo) WriteLog(ctx context.Context, logObj *domain.Log) error {
	sql, args, err := BuildInsertLog(r.Builder, logObj).ToSql()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	_, err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case errorsUtils.IsNotNullViolation(err):
			return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", repoerrs.ErrMalformedPoint, err))
		case errorsUtils.IsUndefinedTable(err):
			return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", repoerrs.ErrStoreNotReady, err))
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}
