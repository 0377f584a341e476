package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/service"

	"github.com/gorilla/mux"
)

type SettlementHandler struct {
	settlementSvc service.SettlementService
}

func NewSettlementHandler(settlementSvc service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid %s", name)
	}
	return id, nil
}

func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	return int32(page), int32(pageSize)
}

type releaseMilestoneRequest struct {
	Notes string `json:"notes"`
}

func (h *SettlementHandler) ReleaseMilestone(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req releaseMilestoneRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.NewValidationError("invalid request body"))
			return
		}
	}

	admin := adminFromContext(r.Context())
	txn, err := h.settlementSvc.ReleaseMilestone(r.Context(), admin.AdminID, milestoneID, req.Notes)
	if err != nil {
		// A partial failure is still surfaced as an error response: the
		// release stands but the wallet credit is queued for retry.
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (h *SettlementHandler) PreviewMilestoneRelease(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	milestone, split, err := h.settlementSvc.PreviewMilestoneRelease(r.Context(), milestoneID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"milestone": milestone,
		"split":     split,
	})
}

func (h *SettlementHandler) GetMilestoneEscrow(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	txn, err := h.settlementSvc.GetMilestoneEscrow(r.Context(), milestoneID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (h *SettlementHandler) GetBookingSettlement(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, milestones, err := h.settlementSvc.GetBookingSettlement(r.Context(), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"booking":    booking,
		"milestones": milestones,
	})
}

func (h *SettlementHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	status := domain.RefundStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.RefundStatusPending
	}
	page, pageSize := pageParams(r)

	refunds, total, err := h.settlementSvc.ListRefunds(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"refunds": refunds,
		"total":   total,
	})
}

func (h *SettlementHandler) ReleaseRefund(w http.ResponseWriter, r *http.Request) {
	refundID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	admin := adminFromContext(r.Context())
	refund, err := h.settlementSvc.ReleaseRefund(r.Context(), admin.AdminID, refundID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refund)
}

func (h *SettlementHandler) RejectRefund(w http.ResponseWriter, r *http.Request) {
	refundID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	admin := adminFromContext(r.Context())
	refund, err := h.settlementSvc.RejectRefund(r.Context(), admin.AdminID, refundID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refund)
}
