package product

import (
	"context"
	"encoding/json"
	"fmt"

	"product-catalog/core/metrics"
	"product-catalog/feature/product/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// updatedMessage carries the pre-change snapshot with the new status.
func updatedMessage(snapshot models.Product, status models.ProductStatus) models.ProductUpdatedMessage {
	return models.ProductUpdatedMessage{
		ProductID:         snapshot.ID,
		ProductSapNumber:  snapshot.ProductSapNumber,
		Name:              snapshot.Name,
		Description:       snapshot.Description,
		UnitOfMeasureCode: snapshot.UnitOfMeasureCode,
		ProductStatus:     status.View(),
		DateCreated:       snapshot.DateCreated,
	}
}

// refreshedMessages serializes one message per committed product.
func refreshedMessages(products []*models.Product) ([]string, error) {
	out := make([]string, 0, len(products))
	for _, p := range products {
		msg := models.ProductRefreshedMessage{
			ID:                uuid.New(),
			ProductID:         p.ID,
			ProductSapNumber:  p.ProductSapNumber,
			Name:              p.Name,
			Description:       p.Description,
			CompanyCode:       p.CompanyCode,
			CountryCode:       p.CountryCode,
			UnitOfMeasureCode: p.UnitOfMeasureCode,
			Price:             p.Price,
			ProductStatus:     p.Status().View(),
			DateCreated:       p.DateCreated,
		}
		if p.DateRefreshed != nil {
			msg.DateRefreshed = *p.DateRefreshed
		}

		b, err := json.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode refresh message for %s: %w", p.ProductSapNumber, err)
		}
		out = append(out, string(b))
	}
	return out, nil
}

// publish delivers payload on a context detached from the caller with its own timeout.
// Failures are logged and counted; the committed write stands.
func (s *Service) publish(ctx context.Context, topic string, payload any) bool {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pctx, topic, payload); err != nil {
		metrics.RecordPublishFailure(topic)
		s.logger.Error("Failed to publish event", zap.String("topic", topic), zap.Error(err))
		return false
	}
	return true
}
