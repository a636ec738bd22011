// internal/service/company_service.go
package service

import (
	"context"

	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/validation"
)

type CompanyService struct {
	CompanyRepo repository.CompanyRepositoryInterface
}

type RegisterCompanyInput struct {
	Name string `json:"name" validate:"required,min=5,max=255"`
}

func (s *CompanyService) Register(ctx context.Context, in RegisterCompanyInput) (*model.Company, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	c := &model.Company{Name: in.Name, Status: model.CompanyStatusActive}
	if err := s.CompanyRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
