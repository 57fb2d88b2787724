package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"warbler/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// AuditService records account and content actions (REGISTER, LOGIN,
// POST_MESSAGE, FOLLOW, DELETE_USER, ...) on a background worker so request
// handling never waits on the audit table.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	channel chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		channel: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.channel:
			s.enrich(&entry)
			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

// LogAction queues an audit entry; it is dropped when the channel is full.
// The Browser field temporarily carries the raw user agent until the worker
// parses it.
func (s *AuditService) LogAction(userID *uint, action, entityID string, details interface{}, ip, userAgent string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(detailBytes),
		IPAddress: ip,
		Browser:   userAgent,
		Timestamp: time.Now(),
	}

	select {
	case s.channel <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping log", "action", action)
	}
}

func (s *AuditService) enrich(entry *models.AuditLog) {
	if entry.Browser != "" {
		ua := user_agent.New(entry.Browser)
		name, version := ua.Browser()
		entry.Browser = name + " " + version
		entry.OS = ua.OS()
	}

	entry.IPAddress = s.maskIP(entry.IPAddress)
}

// maskIP zeroes the last IPv4 octet before storage.
func (s *AuditService) maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
