package handlers

import (
	"net/http"

	"ssplt10-backend/http/response"
	"ssplt10-backend/logger"
	"ssplt10-backend/services"
)

// ExportHandler streams registration payment rows as an xlsx workbook.
type ExportHandler struct {
	store services.RegistrationStore
}

func NewExportHandler(store services.RegistrationStore) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export handles GET /api/registrations/export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.store == nil {
		response.Error(w, http.StatusServiceUnavailable, "Registration store not configured")
		return
	}

	regs, err := h.store.ListRegistrations(r.Context())
	if err != nil {
		logger.Error("error listing registrations for export: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error exporting registrations")
		return
	}

	workbook, err := services.BuildRegistrationsWorkbook(regs)
	if err != nil {
		logger.Error("error building registrations workbook: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error exporting registrations")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.xlsx"`)
	if err := workbook.Write(w); err != nil {
		logger.Error("error streaming registrations workbook: %v", err)
	}
}
