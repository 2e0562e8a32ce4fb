package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/response"
	"trip-roster-api/internal/service"
)

type TripHandler struct {
	tripService service.TripService
}

func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary      Trip 생성
// @Description  새 여행을 만들고 요청자를 confirmed 상태의 주최자로 등록합니다
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTripRequest true "Trip 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TripResponse} "Trip 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       / [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, trip)
}

// GetTrip godoc
// @Summary      Trip 조회
// @Tags         trips
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TripResponse} "Trip 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Trip ID"
// @Failure      403 {object} response.ErrorResponse "Trip 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Router       /{tripId} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), tripID, caller.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, trip)
}

// UpdateTrip godoc
// @Summary      Trip 수정
// @Description  주최자만 이름, 일정, 정원을 수정할 수 있습니다
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Param        request body dto.UpdateTripRequest true "Trip 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TripResponse} "Trip 수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "주최자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Router       /{tripId} [put]
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), tripID, caller.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, trip)
}
