package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-dashboard-admin/internal/domain"
	"go-dashboard-admin/internal/service"
	mdw "go-dashboard-admin/internal/transport/http/middleware"
	resp "go-dashboard-admin/internal/transport/http/response"
)

type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) List(c *gin.Context) {
	type listQ struct {
		UserName    string `form:"userName"`
		CurrentPage int    `form:"currentPage"`
		PageSize    int    `form:"pageSize"`
	}
	var q listQ
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	page, err := h.svc.ListAccounts(c, domain.AccountQuery{
		UserName: q.UserName,
		Page:     q.CurrentPage,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	// 空页在服务层是成功；对前端保留旧控制台的 "query failed" 文案
	if len(page.List) == 0 {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, resp.MsgQueryFailed))
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgQuerySuccess, page))
}

func (h *AccountHandler) Detail(c *gin.Context) {
	a, err := h.svc.GetAccountDetail(c, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgDetailSuccess, a))
}

func (h *AccountHandler) Create(c *gin.Context) {
	var in domain.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	n, err := h.svc.CreateAccount(c, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgCreateSuccess, n))
}

func (h *AccountHandler) Update(c *gin.Context) {
	var in domain.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	n, err := h.svc.UpdateAccount(c, c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgUpdateSuccess, n))
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var in domain.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	n, err := h.svc.ChangePassword(c, c.Param("id"), in, mdw.Caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgUpdateSuccess, n))
}

func (h *AccountHandler) DeleteBatch(c *gin.Context) {
	var ids []string
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	n, err := h.svc.DeleteAccounts(c, ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Success(resp.MsgDeleteSuccess, n))
}

// fail 领域错误 → 响应码/文案
func (h *AccountHandler) fail(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, domain.ErrNotFound.Error()))
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusOK, resp.Error(resp.CodeConflict, domain.ErrConflict.Error()))
	case errors.Is(err, domain.ErrLoginRequired):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, resp.MsgLoginError))
	case errors.Is(err, domain.ErrPasswordDenied):
		c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, resp.MsgPasswordDenied))
	default:
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
	}
}
