package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/application"
	"github.com/yourplaces/backend/internal/infrastructure/media"
	"github.com/yourplaces/backend/internal/interface/middleware"
	"github.com/yourplaces/backend/pkg/response"
	"github.com/yourplaces/backend/pkg/validation"
)

type PlaceHandler struct {
	Svc    *application.PlaceService
	Media  *media.Store
	Logger *logrus.Logger
}

func NewPlaceHandler(svc *application.PlaceService, store *media.Store, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Svc: svc, Media: store, Logger: logger}
}

type createPlaceRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required,min=5"`
	Address     string `form:"address" binding:"required"`
	Creator     string `form:"creator" binding:"required"`
}

type updatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

func (h *PlaceHandler) GetAll(c *gin.Context) {
	places, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.logErr(c, "list places failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"places": places})
}

func (h *PlaceHandler) GetByID(c *gin.Context) {
	place, err := h.Svc.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"place": place})
}

func (h *PlaceHandler) GetByUser(c *gin.Context) {
	places, err := h.Svc.GetByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"places": places})
}

func (h *PlaceHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.logErr(c, "search places failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"places": hits})
}

// Create accepts multipart form data with an optional image file. The
// image is uploaded before the service call; the service only ever sees
// the resulting opaque reference. Note the caller does not have to equal
// the creator field here; ownership is enforced on update and delete.
func (h *PlaceHandler) Create(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logValidation(c, err)
		response.Err(c, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}

	imageURL, err := h.uploadImage(c, "places")
	if err != nil {
		h.logErr(c, "image upload failed", err)
		response.Err(c, http.StatusInternalServerError, "Uploading image failed, please try again.")
		return
	}

	place, err := h.Svc.Create(c.Request.Context(), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		CreatorID:   req.Creator,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.logErr(c, "create place failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"place": place})
}

func (h *PlaceHandler) Update(c *gin.Context) {
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logValidation(c, err)
		response.Err(c, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}

	place, err := h.Svc.Update(c.Request.Context(), c.Param("pid"), req.Title, req.Description, c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.logErr(c, "update place failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"place": place})
}

func (h *PlaceHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("pid"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.logErr(c, "delete place failed", err)
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Deleted place."})
}

func (h *PlaceHandler) uploadImage(c *gin.Context, folder string) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file attached; the field is optional at the transport level.
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
	return h.Media.Upload(c.Request.Context(), folder, f, fh.Filename, fh.Header.Get("Content-Type"))
}

func (h *PlaceHandler) logErr(c *gin.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
}

func (h *PlaceHandler) logValidation(c *gin.Context, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithField("details", validation.ToDetails(err)).
		WithField("request_id", c.GetString("request_id")).
		Warn("invalid place payload")
}
