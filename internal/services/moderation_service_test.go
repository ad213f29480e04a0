package services

import (
	"errors"
	"testing"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/google/uuid"
)

func TestCreateReportRejectsUnknownTarget(t *testing.T) {
	svc := NewModerationService(nil)

	_, err := svc.CreateReport(nil, &dto.CreateReportRequest{
		TargetType: "user",
		TargetID:   uuid.New(),
		Reason:     "spam",
	})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
}
