package service

import (
	"context"
	"fmt"

	"itrfiling/internal/model"
	"itrfiling/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	FilingID   string `json:"filing_id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	// GetAuditLogs lists entries newest first, optionally for one filing.
	GetAuditLogs(ctx context.Context, filingID string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, filingID string, page, limit int) ([]AuditLogResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var fid *uuid.UUID
	if filingID != "" {
		parsed, err := parseID("filing", filingID)
		if err != nil {
			return nil, 0, err
		}
		fid = &parsed
	}

	logs, total, err := s.auditRepo.List(ctx, fid, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := lo.Map(logs, func(l model.AuditLog, _ int) AuditLogResponse {
		filing := ""
		if l.FilingID != nil {
			filing = l.FilingID.String()
		}
		return AuditLogResponse{
			ID:         l.ID.String(),
			FilingID:   filing,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	})
	return res, total, nil
}
