package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/geolink/internal/geo"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/services"
)

// AccessController проверка доступа к коротким ссылкам по координатам.
type AccessController struct {
	verifier AccessVerifier
	links    LinkInfoProvider
}

// NewAccessController создает новый экземпляр AccessController.
//
// Параметры:
//   - verifier: сервис проверки доступа
//   - links: источник публичных сведений о ссылке
//
// Возвращает:
//   - *AccessController: новый экземпляр контроллера
func NewAccessController(verifier AccessVerifier, links LinkInfoProvider) *AccessController {
	return &AccessController{verifier: verifier, links: links}
}

type verifyRequestBody struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type verifyResponse struct {
	Outcome        models.Outcome `json:"outcome"`
	Allowed        bool           `json:"allowed"`
	TargetURL      *string        `json:"target_url,omitempty"`
	Title          *string        `json:"title,omitempty"`
	DistanceMeters *float64       `json:"distance_meters,omitempty"`
	Contact        *string        `json:"contact,omitempty"`
}

type publicInfoResponse struct {
	ShortCode    string  `json:"short_code"`
	Title        *string `json:"title"`
	LocationName *string `json:"location_name"`
	IsActive     bool    `json:"is_active"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Verify обрабатывает POST /api/verify/:shortCode с телом {"latitude": .., "longitude": ..}.
//
// Статусы:
//   - 200 доступ разрешен, в теле target_url
//   - 403 вне геозоны или ссылка заблокирована
//   - 404 ссылки нет или она удалена
//   - 410 срок истек или квота исчерпана
//   - 503 хранилище недоступно, заголовок Retry-After
//   - 400 тело не разобрано, 422 координаты вне диапазона
func (a *AccessController) Verify(ctx *gin.Context) {
	var body verifyRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		_ = ctx.Error(fmt.Errorf("bind verify body: %w", err))
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: ErrBadRequest.Error()})
		return
	}

	result, ok := a.verify(ctx, geo.Point{Lat: *body.Latitude, Lng: *body.Longitude})
	if !ok {
		return
	}
	a.writeResult(ctx, result)
}

// Redirect обрабатывает GET /:shortCode?lat=..&lng=.. и при разрешенном доступе делает 307 редирект.
// Отказ отдается тем же json, что и Verify.
func (a *AccessController) Redirect(ctx *gin.Context) {
	lat, latErr := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(ctx.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: ErrBadRequest.Error()})
		return
	}

	result, ok := a.verify(ctx, geo.Point{Lat: lat, Lng: lng})
	if !ok {
		return
	}
	if result.Outcome.Allowed() && result.TargetURL != nil {
		ctx.Redirect(http.StatusTemporaryRedirect, *result.TargetURL)
		return
	}
	a.writeResult(ctx, result)
}

// PublicInfo обрабатывает GET /api/public/:shortCode.
func (a *AccessController) PublicInfo(ctx *gin.Context) {
	info, err := a.links.PublicInfo(ctx, ctx.Param("shortCode"))
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse{Error: ErrRecordNotFound.Error()})
			return
		}
		_ = ctx.Error(fmt.Errorf("public info: %w", err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal.Error()})
		return
	}
	ctx.JSON(http.StatusOK, publicInfoResponse{
		ShortCode:    info.ShortCode,
		Title:        info.Title,
		LocationName: info.LocationName,
		IsActive:     info.IsActive,
	})
}

// verify вызывает сервис и пишет ответ на ошибку. false означает, что ответ уже отправлен.
func (a *AccessController) verify(ctx *gin.Context, p geo.Point) (*services.VerificationResult, bool) {
	result, err := a.verifier.Verify(ctx, services.VerifyRequest{
		ShortCode: ctx.Param("shortCode"),
		Point:     p,
		Now:       time.Now(),
		UserAgent: ctx.Request.UserAgent(),
		ClientIP:  ctx.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCoordinate) {
			ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: ErrInvalidCoordinates.Error()})
			return nil, false
		}
		_ = ctx.Error(fmt.Errorf("verify: %w", err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal.Error()})
		return nil, false
	}
	return result, true
}

func (a *AccessController) writeResult(ctx *gin.Context, result *services.VerificationResult) {
	resp := verifyResponse{
		Outcome: result.Outcome,
		Allowed: result.Outcome.Allowed(),
	}
	switch result.Outcome {
	case models.OutcomeAllowed:
		resp.TargetURL = result.TargetURL
		resp.Title = result.Title
		resp.DistanceMeters = roundMeters(result.DistanceMeters)
	case models.OutcomeDeniedOutOfRange:
		resp.Title = result.Title
		resp.DistanceMeters = roundMeters(result.DistanceMeters)
		resp.Contact = result.Contact
	case models.OutcomeDeniedUnavailable:
		ctx.Header("Retry-After", RetryAfterSeconds)
	}
	ctx.JSON(outcomeStatus(result.Outcome), resp)
}
