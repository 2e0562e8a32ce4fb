package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/response"
	"trip-roster-api/internal/service"
)

type ParticipantHandler struct {
	participantService service.ParticipantService
}

func NewParticipantHandler(participantService service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// AddParticipants godoc
// @Summary      Participant 추가 (단건/다중)
// @Description  Trip에 한 명 또는 여러 명의 참여자를 pending 상태로 추가합니다
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Param        request body dto.AddParticipantsRequest true "Participant 추가 요청 (userIds 1~50개)"
// @Success      201 {object} dto.AddParticipantsResponse "모든 참여자 추가 성공"
// @Success      207 {object} dto.AddParticipantsResponse "일부 참여자만 추가 성공 (Multi-Status)"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 모든 참여자 추가 실패"
// @Failure      403 {object} response.ErrorResponse "Trip 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /{tripId}/participants [post]
func (h *ParticipantHandler) AddParticipants(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	var req dto.AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	req.TripID = tripID

	result, err := h.participantService.AddParticipants(c.Request.Context(), caller.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// If all participants failed to add, return 400 Bad Request
	if result.TotalSuccess == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "All participants failed to add")
		return
	}

	// If some participants failed (partial success), return 207 Multi-Status
	if result.TotalFailed > 0 {
		c.JSON(http.StatusMultiStatus, result)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// GetParticipants godoc
// @Summary      Trip의 Participant 목록 조회
// @Description  가입 순서대로 모든 참여자를 조회합니다
// @Tags         participants
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ParticipantResponse} "Participant 목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Trip ID"
// @Failure      403 {object} response.ErrorResponse "Trip 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /{tripId}/participants [get]
func (h *ParticipantHandler) GetParticipants(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}

	participants, err := h.participantService.GetParticipants(c.Request.Context(), tripID, caller.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, participants)
}

// RemoveParticipant godoc
// @Summary      Participant 제거
// @Description  주최자가 Trip에서 참여자를 제거합니다
// @Tags         participants
// @Produce      json
// @Param        tripId path string true "Trip ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse "Participant 제거 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 ID 또는 주최자 제거 시도"
// @Failure      403 {object} response.ErrorResponse "주최자가 아님"
// @Failure      404 {object} response.ErrorResponse "Trip 또는 Participant를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /{tripId}/participants/{userId} [delete]
func (h *ParticipantHandler) RemoveParticipant(c *gin.Context) {
	caller, ok := extractCaller(c)
	if !ok {
		return
	}
	tripID, ok := parseIDParam(c, "tripId", "Invalid trip ID")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	if err := h.participantService.RemoveParticipant(c.Request.Context(), tripID, caller.UserID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
