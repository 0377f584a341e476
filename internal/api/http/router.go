package http

import (
	"net/http"

	"saralevents-backend/internal/security"
	"saralevents-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter builds the admin API. Everything except login and the health
// check sits behind bearer auth.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	settlementSvc service.SettlementService,
	walletSvc service.WalletService,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	authHandler := NewAuthHandler(authSvc)
	router.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	settlementHandler := NewSettlementHandler(settlementSvc)
	api.HandleFunc("/milestones/{id}/release", settlementHandler.ReleaseMilestone).Methods("POST")
	api.HandleFunc("/milestones/{id}/preview", settlementHandler.PreviewMilestoneRelease).Methods("GET")
	api.HandleFunc("/milestones/{id}/escrow-transaction", settlementHandler.GetMilestoneEscrow).Methods("GET")
	api.HandleFunc("/bookings/{id}/settlement", settlementHandler.GetBookingSettlement).Methods("GET")
	api.HandleFunc("/refunds", settlementHandler.ListRefunds).Methods("GET")
	api.HandleFunc("/refunds/{id}/release", settlementHandler.ReleaseRefund).Methods("POST")
	api.HandleFunc("/refunds/{id}/reject", settlementHandler.RejectRefund).Methods("POST")

	walletHandler := NewWalletHandler(walletSvc)
	api.HandleFunc("/vendors/{vendor_id}/wallet", walletHandler.GetWallet).Methods("GET")
	api.HandleFunc("/vendors/{vendor_id}/wallet/transactions", walletHandler.ListTransactions).Methods("GET")
	api.HandleFunc("/vendors/{vendor_id}/wallet/audit", walletHandler.AuditWallet).Methods("GET")

	return router
}
