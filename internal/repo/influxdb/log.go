package influxdb

import (
	"context"
	"fmt"

	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	"github.com/Camping-RSO/camping-logs-ms/internal/repo/repoerrs"
	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	"github.com/Camping-RSO/camping-logs-ms/pkg/influx"
	"github.com/influxdata/influxdb1-client/models"
	client "github.com/influxdata/influxdb1-client/v2"
)

const (
	Measurement = "logs"

	FieldMicroservice = "microservice"
	FieldMessage      = "message"

	selectAllQuery = "SELECT * FROM " + Measurement
)

// LogRepo opens a new client for every operation and closes it before returning.
type LogRepo struct {
	*influx.Influx
}

func NewLogRepo(db *influx.Influx) *LogRepo {
	return &LogRepo{db}
}

func (r *LogRepo) GetLogs(ctx context.Context) ([]domain.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	c, err := r.Dial()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	resp, err := c.Query(client.NewQuery(selectAllQuery, r.Database, ""))
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if err := resp.Error(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	logs := []domain.Log{}
	for _, result := range resp.Results {
		for _, row := range result.Series {
			if row.Name != Measurement {
				continue
			}
			rowLogs, err := logsFromRow(row)
			if err != nil {
				return nil, errorsUtils.WrapPathErr(err)
			}
			logs = append(logs, rowLogs...)
		}
	}

	return logs, nil
}

func (r *LogRepo) WriteLog(ctx context.Context, logObj *domain.Log) error {
	if err := ctx.Err(); err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	c, err := r.Dial()
	if err != nil {
		return err
	}
	defer c.Close()

	bp, err := client.NewBatchPoints(client.BatchPointsConfig{Database: r.Database})
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// No timestamp: the server stamps the point on arrival.
	pt, err := client.NewPoint(Measurement, nil, map[string]interface{}{
		FieldMicroservice: logObj.Microservice,
		FieldMessage:      logObj.Message,
	})
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	bp.AddPoint(pt)

	if err := c.Write(bp); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func logsFromRow(row models.Row) ([]domain.Log, error) {
	microserviceIdx, messageIdx := -1, -1
	for i, col := range row.Columns {
		switch col {
		case FieldMicroservice:
			microserviceIdx = i
		case FieldMessage:
			messageIdx = i
		}
	}
	if microserviceIdx < 0 || messageIdx < 0 {
		return nil, fmt.Errorf("%w: columns %v", repoerrs.ErrMalformedPoint, row.Columns)
	}

	logs := make([]domain.Log, 0, len(row.Values))
	for _, values := range row.Values {
		microservice, ok := stringValue(values, microserviceIdx)
		if !ok {
			return nil, fmt.Errorf("%w: no %s in %v", repoerrs.ErrMalformedPoint, FieldMicroservice, values)
		}
		message, ok := stringValue(values, messageIdx)
		if !ok {
			return nil, fmt.Errorf("%w: no %s in %v", repoerrs.ErrMalformedPoint, FieldMessage, values)
		}
		logs = append(logs, domain.Log{Microservice: microservice, Message: message})
	}
	return logs, nil
}

func stringValue(values []interface{}, idx int) (string, bool) {
	if idx >= len(values) || values[idx] == nil {
		return "", false
	}
	if s, ok := values[idx].(string); ok {
		return s, true
	}
	return fmt.Sprint(values[idx]), true
}
