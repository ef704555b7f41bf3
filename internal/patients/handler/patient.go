package handler

import (
	"net/http"

	"medibook/internal/patients/service"
	httputil "medibook/pkg/http"
	"medibook/pkg/logger"
	"medibook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PatientHandler struct {
	service service.PatientService
	log     *logger.Logger
}

func NewPatientHandler(service service.PatientService, log *logger.Logger) *PatientHandler {
	return &PatientHandler{
		service: service,
		log:     log,
	}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patient model.Patient
	if err := httputil.DecodeJSON(r, &patient); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &patient); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, patient); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	patient, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, patient); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	patients, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, patients, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *PatientHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PatientHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/patients", h.GetAll)
	router.POST("/api/v1/patients", h.Create)
	router.GET("/api/v1/patients/id/:id", h.GetByID)
}
