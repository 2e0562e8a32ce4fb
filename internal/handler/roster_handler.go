package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/response"
	"trip-roster-api/internal/service"
)

type RosterHandler struct {
	rosterService service.RosterService
}

func NewRosterHandler(rosterService service.RosterService) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// GetRoster godoc
// @Summary      Roster 조회
// @Description  상태별로 묶고 정렬한 참여자 목록과 정원 요약을 반환합니다.
// @Description  그룹 순서: confirmed, conditional, waitlist, interested, pending, declined (cancelled 포함)
// @Tags         roster
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.RosterResponse} "Roster 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Trip ID"
// @Failure      403 {object} response.ErrorResponse "Trip 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /{tripId}/roster [get]
func (h *RosterHandler) GetRoster(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	roster, err := h.rosterService.GetRoster(c.Request.Context(), tripID, caller.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, roster)
}

// GetCapacity godoc
// @Summary      정원 요약 조회
// @Tags         roster
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CapacityResponse} "정원 요약 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Trip ID"
// @Failure      403 {object} response.ErrorResponse "Trip 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Router       /{tripId}/capacity [get]
func (h *RosterHandler) GetCapacity(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	capacity, err := h.rosterService.GetCapacity(c.Request.Context(), tripID, caller.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, capacity)
}

// UpdateCommitment godoc
// @Summary      참여 상태 변경
// @Description  요청자 본인의 참여 상태와 조건을 변경합니다. 경고(CAPACITY_FULL, MUTUAL_DEPENDENCY)는 저장을 막지 않습니다
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Param        request body dto.UpdateCommitmentRequest true "참여 상태 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.UpdateCommitmentResponse} "변경 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 상태 또는 조건"
// @Failure      404 {object} response.ErrorResponse "Trip 또는 Participant를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /{tripId}/commitment [put]
func (h *RosterHandler) UpdateCommitment(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	var req dto.UpdateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.rosterService.UpdateCommitment(c.Request.Context(), tripID, caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// CheckDependencies godoc
// @Summary      상호 의존 확인
// @Description  후보 참여자 각각이 이미 요청자를 기다리고 있는지 표시합니다
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Param        request body dto.DependencyCheckRequest true "후보 참여자 목록"
// @Success      200 {object} response.SuccessResponse{data=dto.DependencyCheckResponse} "확인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "Trip 또는 Participant를 찾을 수 없음"
// @Router       /{tripId}/commitment/dependency-check [post]
func (h *RosterHandler) CheckDependencies(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	var req dto.DependencyCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.rosterService.CheckDependencies(c.Request.Context(), tripID, caller.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
