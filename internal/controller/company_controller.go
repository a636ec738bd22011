// internal/controller/company_controller.go
package controller

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/service"
)

type CompanyController struct {
	CompanyService *service.CompanyService
	Logger         *zap.Logger
}

func (c *CompanyController) Register(w http.ResponseWriter, r *http.Request) {
	var body service.RegisterCompanyInput
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	company, err := c.CompanyService.Register(r.Context(), body)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	writeOK(w, "Registered", struct {
		CID      int64     `json:"cid"`
		CreateAt time.Time `json:"create_at"`
	}{company.CID, company.CreateAt})
}
