package logginghelper

import (
	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(transport string, entry *domain.Log) {
	log.WithFields(log.Fields{
		"transport":    transport,
		"microservice": entry.Microservice,
		"message":      entry.Message,
	}).Info("Received log")
}

func LogSaved(transport string, entry *domain.Log) {
	log.WithFields(log.Fields{
		"transport":    transport,
		"microservice": entry.Microservice,
	}).Info("Log saved successfully")
}

func LogListed(transport string, count int) {
	log.WithFields(log.Fields{
		"transport": transport,
		"count":     count,
	}).Debug("Logs listed")
}

func LogError(transport, operation string, err error) {
	log.WithFields(log.Fields{
		"transport": transport,
		"operation": operation,
		"error":     err,
	}).Error("Operation failed")
}
