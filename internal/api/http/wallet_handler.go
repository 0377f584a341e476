package http

import (
	"net/http"

	"saralevents-backend/internal/service"
)

type WalletHandler struct {
	walletSvc service.WalletService
}

func NewWalletHandler(walletSvc service.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "vendor_id")
	if err != nil {
		writeError(w, err)
		return
	}

	wallet, err := h.walletSvc.GetWallet(r.Context(), vendorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "vendor_id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pageParams(r)

	txns, total, err := h.walletSvc.ListTransactions(r.Context(), vendorID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"total":        total,
	})
}

func (h *WalletHandler) AuditWallet(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "vendor_id")
	if err != nil {
		writeError(w, err)
		return
	}

	audit, err := h.walletSvc.AuditWallet(r.Context(), vendorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, audit)
}
