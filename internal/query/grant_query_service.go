package query

import (
	"context"

	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/models"
)

// GrantReader is the read side of the grant document store.
type GrantReader interface {
	FindByGranteeName(ctx context.Context, granteeName string) ([]models.PowerOfAttorneyDocument, error)
	FindAll(ctx context.Context) ([]models.PowerOfAttorneyDocument, error)
}

type GrantQueryService struct {
	reader GrantReader
}

func NewGrantQueryService(reader GrantReader) *GrantQueryService {
	return &GrantQueryService{reader: reader}
}

// FindGrants returns the grants whose grantee name matches exactly. No match
// is an empty slice, not an error.
func (s *GrantQueryService) FindGrants(ctx context.Context, q cqrs.FindGrantsQuery) ([]models.PowerOfAttorney, error) {
	docs, err := s.reader.FindByGranteeName(ctx, q.GranteeName)
	if err != nil {
		return nil, err
	}
	return toGrants(docs)
}

func (s *GrantQueryService) ListGrants(ctx context.Context, _ cqrs.ListGrantsQuery) ([]models.PowerOfAttorney, error) {
	docs, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toGrants(docs)
}

func toGrants(docs []models.PowerOfAttorneyDocument) ([]models.PowerOfAttorney, error) {
	grants := make([]models.PowerOfAttorney, 0, len(docs))
	for _, doc := range docs {
		grant, err := models.GrantFromDocument(doc)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, nil
}
