package service

import (
	"context"
	"time"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/queue"
	"dealerdesk/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SaleService struct {
	sales     repository.SaleRepository
	auditLogs repository.AuditLogRepository
	publisher queue.Publisher
	validate  *validator.Validate
	clock     Clock
	logger    logrus.FieldLogger
}

func NewSaleService(
	sales repository.SaleRepository,
	auditLogs repository.AuditLogRepository,
	publisher queue.Publisher,
	validate *validator.Validate,
	clock Clock,
	logger logrus.FieldLogger,
) *SaleService {
	return &SaleService{
		sales:     sales,
		auditLogs: auditLogs,
		publisher: publisher,
		validate:  validate,
		clock:     clock,
		logger:    logger,
	}
}

// Create records a sale. The repository performs the insert and the vehicle
// status flip in a single transaction; a sale is never visible while its
// vehicle still reads available. The recorded event is best effort.
func (s *SaleService) Create(ctx context.Context, sellerID uuid.UUID, input dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, &ValidationError{Fields: dto.FieldErrors(err)}
	}

	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"vehicle_id": "must be a valid uuid"}}
	}

	sale := &entity.Sale{
		VehicleID:     vehicleID,
		UserID:        sellerID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		SalePrice:     input.SalePrice,
		SaleDate:      s.now(),
		PaymentMethod: entity.PaymentMethod(input.PaymentMethod),
		Notes:         input.Notes,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, MapRepositoryError(err)
	}

	if s.auditLogs != nil {
		_ = s.auditLogs.Log(ctx, &entity.AuditLog{
			UserID: &sellerID,
			Action: entity.SaleRecorded,
		})
	}

	if s.publisher != nil {
		event := queue.SaleRecordedEvent{
			SaleID:        sale.ID.String(),
			VehicleID:     sale.VehicleID.String(),
			SellerID:      sale.UserID.String(),
			SalePrice:     sale.SalePrice,
			PaymentMethod: string(sale.PaymentMethod),
			RecordedAt:    sale.SaleDate.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := s.publisher.PublishSaleRecorded(ctx, event); err != nil {
			s.log().WithError(err).WithField("sale_id", sale.ID).Warn("sale event publish failed")
		}
	}

	return sale, nil
}

func (s *SaleService) List(ctx context.Context) ([]entity.Sale, error) {
	return s.sales.List(ctx)
}

func (s *SaleService) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}

func (s *SaleService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
