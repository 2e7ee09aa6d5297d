package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/application"
	"github.com/yourplaces/backend/internal/infrastructure/media"
	"github.com/yourplaces/backend/pkg/response"
	"github.com/yourplaces/backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Media  *media.Store
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, store *media.Store, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Media: store, Logger: logger}
}

type signupRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.logErr(c, "list users failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logValidation(c, err)
		response.Err(c, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		h.logErr(c, "image upload failed", err)
		response.Err(c, http.StatusInternalServerError, "Uploading image failed, please try again.")
		return
	}

	res, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password, imageURL)
	if err != nil {
		h.logErr(c, "signup failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"userId": res.User.ID,
		"email":  res.User.Email,
		"token":  res.Token,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logValidation(c, err)
		response.Err(c, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"userId": res.User.ID,
		"email":  res.User.Email,
		"token":  res.Token,
	})
}

func (h *UserHandler) uploadImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if h.Media == nil {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return h.Media.Upload(c.Request.Context(), "avatars", f, fh.Filename, fh.Header.Get("Content-Type"))
}

func (h *UserHandler) logErr(c *gin.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
}

func (h *UserHandler) logValidation(c *gin.Context, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithField("details", validation.ToDetails(err)).
		WithField("request_id", c.GetString("request_id")).
		Warn("invalid user payload")
}
