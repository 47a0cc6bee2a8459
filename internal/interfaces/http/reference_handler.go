package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/entity"
)

type referenceHandler struct {
	refs   service.ReferenceService
	logger Logger
}

func newReferenceHandler(refs service.ReferenceService, logger Logger) *referenceHandler {
	return &referenceHandler{refs: refs, logger: logger}
}

// createRef binds a body into T and stores it with create
func createRef[T any](h *referenceHandler, c *gin.Context, kind string, create func(context.Context, *T) (*T, error)) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid "+kind+": "+err.Error())
		return
	}

	created, err := create(c.Request.Context(), &body)
	if err != nil {
		respondError(c, h.logger, "Failed to create "+kind, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func getRef[T any](h *referenceHandler, c *gin.Context, kind string, get func(context.Context, int64) (*T, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to get "+kind, err)
		return
	}
	respondData(c, http.StatusOK, found)
}

func listRefs[T any](h *referenceHandler, c *gin.Context, kind string, list func(context.Context) ([]*T, error)) {
	items, err := list(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to list "+kind, err)
		return
	}
	if items == nil {
		items = []*T{}
	}
	respondData(c, http.StatusOK, items)
}

func (h *referenceHandler) CreatePatient(c *gin.Context) {
	createRef[entity.Patient](h, c, service.KindPatient, h.refs.CreatePatient)
}

func (h *referenceHandler) GetPatient(c *gin.Context) {
	getRef[entity.Patient](h, c, service.KindPatient, h.refs.GetPatient)
}

func (h *referenceHandler) ListPatients(c *gin.Context) {
	listRefs[entity.Patient](h, c, service.KindPatient, h.refs.ListPatients)
}

func (h *referenceHandler) CreateProvider(c *gin.Context) {
	createRef[entity.Provider](h, c, service.KindProvider, h.refs.CreateProvider)
}

func (h *referenceHandler) GetProvider(c *gin.Context) {
	getRef[entity.Provider](h, c, service.KindProvider, h.refs.GetProvider)
}

func (h *referenceHandler) ListProviders(c *gin.Context) {
	listRefs[entity.Provider](h, c, service.KindProvider, h.refs.ListProviders)
}

func (h *referenceHandler) CreateInsurance(c *gin.Context) {
	createRef[entity.Insurance](h, c, service.KindInsurance, h.refs.CreateInsurance)
}

func (h *referenceHandler) GetInsurance(c *gin.Context) {
	getRef[entity.Insurance](h, c, service.KindInsurance, h.refs.GetInsurance)
}

func (h *referenceHandler) ListInsurances(c *gin.Context) {
	listRefs[entity.Insurance](h, c, service.KindInsurance, h.refs.ListInsurances)
}

func (h *referenceHandler) CreatePractice(c *gin.Context) {
	createRef[entity.Practice](h, c, service.KindPractice, h.refs.CreatePractice)
}

func (h *referenceHandler) GetPractice(c *gin.Context) {
	getRef[entity.Practice](h, c, service.KindPractice, h.refs.GetPractice)
}

func (h *referenceHandler) ListPractices(c *gin.Context) {
	listRefs[entity.Practice](h, c, service.KindPractice, h.refs.ListPractices)
}

func (h *referenceHandler) CreateOrder(c *gin.Context) {
	createRef[entity.Order](h, c, service.KindOrder, h.refs.CreateOrder)
}

func (h *referenceHandler) GetOrder(c *gin.Context) {
	getRef[entity.Order](h, c, service.KindOrder, h.refs.GetOrder)
}

func (h *referenceHandler) ListOrders(c *gin.Context) {
	listRefs[entity.Order](h, c, service.KindOrder, h.refs.ListOrders)
}
