package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/salestrack/customer-registry/internal/model"
	xhttp "github.com/salestrack/customer-registry/pkg/http"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.CustomerDetail, error)
	ListByRegion(ctx context.Context, region model.Region) ([]*model.CustomerSummary, error)
	Search(ctx context.Context, query string) ([]*model.CustomerSummary, error)
	CountByRegion(ctx context.Context) (map[model.Region]int64, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	AddCommunication(ctx context.Context, p model.CommunicationCreateRequest) (*model.CommunicationLog, error)
	ListCommunications(ctx context.Context, customerID int64) ([]*model.CommunicationLog, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.GET("/regions", h.ListRegions)
	e.GET("/regions/{region}/customers", h.ListByRegion)
	e.POST("/regions/{region}/customers", h.CreateCustomer)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.POST("/customers/{id}/communications", h.AddCommunication)
	e.GET("/customers/{id}/communications", h.ListCommunications)
	e.GET("/search", h.Search)
	e.GET("/statistics", h.Statistics)
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

type createCustomerRequest struct {
	CompanyName          string `json:"company_name"`
	Address              string `json:"address"`
	ContactPerson        string `json:"contact_person"`
	Mobile1              string `json:"mobile1"`
	Mobile2              string `json:"mobile2"`
	Phone                string `json:"phone"`
	InitialCommunication string `json:"initial_communication"`
}

type updateCustomerRequest struct {
	CompanyName   string `json:"company_name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Mobile1       string `json:"mobile1"`
	Mobile2       string `json:"mobile2"`
	Phone         string `json:"phone"`
}

type addCommunicationRequest struct {
	Details string `json:"details"`
}

type regionEntry struct {
	Name          model.Region `json:"name"`
	CustomerCount int64        `json:"customer_count"`
}

type regionsResponse struct {
	Regions []regionEntry `json:"regions"`
}

type customerListResponse struct {
	Items []*model.CustomerSummary `json:"items"`
	Total int                      `json:"total"`
}

type communicationListResponse struct {
	Items []*model.CommunicationLog `json:"items"`
	Total int                       `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

// ListRegions returns the fixed region list, each with its customer count.
// Every region appears even when it holds no customers yet.
func (h *CustomerHandler) ListRegions(ctx *xhttp.RequestCtx) {
	counts, err := h.svc.CountByRegion(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	resp := regionsResponse{Regions: make([]regionEntry, 0, len(model.Regions))}
	for _, r := range model.Regions {
		resp.Regions = append(resp.Regions, regionEntry{Name: r, CustomerCount: counts[r]})
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}

func (h *CustomerHandler) ListByRegion(ctx *xhttp.RequestCtx) {
	region := model.Region(param(ctx, "region"))
	items, err := h.svc.ListByRegion(ctx, region)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerListResponse{Items: items, Total: len(items)})
}

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req createCustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.CustomerCreateRequest{
		Region:               model.Region(param(ctx, "region")),
		CompanyName:          req.CompanyName,
		Address:              req.Address,
		ContactPerson:        req.ContactPerson,
		Mobile1:              req.Mobile1,
		Mobile2:              req.Mobile2,
		Phone:                req.Phone,
		InitialCommunication: req.InitialCommunication,
	}
	customer, err := h.svc.Create(ctx, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	detail, err := h.svc.Detail(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, detail)
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	var req updateCustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.CustomerUpdateRequest{
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Mobile1:       req.Mobile1,
		Mobile2:       req.Mobile2,
		Phone:         req.Phone,
	}
	customer, err := h.svc.Update(ctx, id, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customer)
}

func (h *CustomerHandler) AddCommunication(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	var req addCommunicationRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	log, err := h.svc.AddCommunication(ctx, model.CommunicationCreateRequest{
		CustomerID: id,
		Details:    req.Details,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, log)
}

func (h *CustomerHandler) ListCommunications(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	items, err := h.svc.ListCommunications(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, communicationListResponse{Items: items, Total: len(items)})
}

func (h *CustomerHandler) Search(ctx *xhttp.RequestCtx) {
	items, err := h.svc.Search(ctx, query(ctx, "q"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerListResponse{Items: items, Total: len(items)})
}

func (h *CustomerHandler) Statistics(ctx *xhttp.RequestCtx) {
	stats, err := h.svc.Statistics(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stats)
}

/* -------------------------------- Helpers ----------------------------------- */

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error(xhttp.StatusText(xhttp.StatusInternalServerError), xhttp.StatusInternalServerError)
		return
	}
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the model's error groups onto HTTP statuses so
// individual routes never enumerate sentinels.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case model.IsValidation(err):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case model.IsNotFound(err), errors.Is(err, model.ErrBlobMissing):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrFileTooLarge):
		writeError(ctx, xhttp.StatusRequestEntityTooLarge, err.Error())
	default:
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
	}
}

func param(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

func paramID(ctx *xhttp.RequestCtx) (int64, error) {
	return strconv.ParseInt(param(ctx, "id"), 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
