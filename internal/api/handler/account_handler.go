package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	service ports.AccountService
	metrics *metrics.Metrics
}

func NewAccountHandler(service ports.AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{service: service, metrics: m}
}

// Create handles POST /accounts.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  createAccountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.CreateAccount(c.Request().Context(), ports.CreateAccountInput{
		ActorID:       userID,
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
	})
	h.metrics.AccountMutationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createAccountResponse{
		Message:   "Account created successfully",
		AccountID: account.ID,
	})
}

// Update handles PUT /accounts/:id.
//
// @Summary      Update an account
// @Description  Partial update; omitted fields keep their value.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return domain.ErrAccountNotFound
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err = h.service.UpdateAccount(c.Request().Context(), ports.UpdateAccountInput{
		ActorID: userID,
		ID:      id,
		Patch: domain.AccountPatch{
			Name:          req.Name,
			Email:         req.Email,
			ContactNumber: req.ContactNumber,
		},
	})
	h.metrics.AccountMutationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Account updated successfully"})
}

// Get handles GET /accounts/:id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return domain.ErrAccountNotFound
	}

	account, err := h.service.GetAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse{
		ID:            account.ID,
		Name:          account.Name,
		Email:         account.Email,
		ContactNumber: account.ContactNumber,
		AddedBy:       account.AddedBy,
		CreatedAt:     account.CreatedAt,
	})
}

// Delete handles DELETE /accounts/:id. The caller's admin role is checked
// by the service after the account is found.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return domain.ErrAccountNotFound
	}

	err = h.service.DeleteAccount(c.Request().Context(), userID, id)
	h.metrics.AccountMutationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}

// List handles GET /accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        email   query     string  false  "Case-insensitive email substring"
// @Param        search  query     string  false  "Case-insensitive name substring"
// @Param        sort    query     string  false  "name or email"  Enums(name, email)
// @Param        order   query     string  false  "asc or desc"    Enums(asc, desc)
// @Success      200     {object}  listAccountsResponse
// @Failure      401     {object}  errorResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	result, err := h.service.ListAccounts(c.Request().Context(), ports.ListAccountsInput{
		Email:  c.QueryParam("email"),
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Order:  c.QueryParam("order"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]accountSummary, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, accountSummary{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			ContactNumber: a.ContactNumber,
			CreatedAt:     a.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listAccountsResponse{
		Accounts:     items,
		TotalRecords: result.TotalRecords,
		TotalPages:   result.TotalPages,
		CurrentPage:  result.Page,
		PageSize:     result.Limit,
	})
}
