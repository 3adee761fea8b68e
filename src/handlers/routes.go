// backend/src/handlers/routes.go
package handlers

import "github.com/go-chi/chi/v5"

// Handlers groups every API handler for route registration.
type Handlers struct {
	Summary      *SummaryHandler
	Transactions *TransactionHandler
	Uploads      *UploadHandler
	Debts        *DebtHandler
	Investments  *InvestmentHandler
	Goals        *GoalHandler
	Categories   *CategoryHandler
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.Summary.HandleGetSummary)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.HandleListTransactions)
			r.Post("/", h.Transactions.HandleCreateTransaction)
			r.Post("/bulk", h.Transactions.HandleBulkCreate)
			r.Post("/import", h.Uploads.HandleImport)
			r.Get("/template", h.Transactions.HandleGetTemplate)
			r.Get("/export", h.Transactions.HandleExport)
			r.Get("/{id}", h.Transactions.HandleGetTransaction)
			r.Put("/{id}", h.Transactions.HandleUpdateTransaction)
			r.Delete("/{id}", h.Transactions.HandleDeleteTransaction)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", h.Debts.HandleListDebts)
			r.Post("/", h.Debts.HandleCreateDebt)
			r.Post("/{id}/toggle", h.Debts.HandleToggleDebt)
			r.Post("/{id}/pay", h.Debts.HandlePayDebt)
			r.Delete("/{id}", h.Debts.HandleDeleteDebt)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Get("/", h.Investments.HandleListInvestments)
			r.Post("/", h.Investments.HandleCreateInvestment)
			r.Put("/{id}/value", h.Investments.HandleUpdateValue)
			r.Post("/{id}/withdraw", h.Investments.HandleWithdraw)
			r.Delete("/{id}", h.Investments.HandleDeleteInvestment)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.Goals.HandleListGoals)
			r.Post("/", h.Goals.HandleCreateGoal)
			r.Delete("/breakdown/{itemID}", h.Goals.HandleDeleteBreakdownItem)
			r.Get("/{id}", h.Goals.HandleGetGoal)
			r.Delete("/{id}", h.Goals.HandleDeleteGoal)
			r.Put("/{id}/target", h.Goals.HandleUpdateTarget)
			r.Post("/{id}/target/sync", h.Goals.HandleSyncTarget)
			r.Post("/{id}/contribute", h.Goals.HandleContribute)
			r.Post("/{id}/withdraw", h.Goals.HandleWithdraw)
			r.Get("/{id}/breakdown", h.Goals.HandleListBreakdown)
			r.Post("/{id}/breakdown", h.Goals.HandleAddBreakdownItem)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.HandleListCategories)
			r.Post("/", h.Categories.HandleCreateCategory)
			r.Delete("/{id}", h.Categories.HandleDeleteCategory)
		})
	})
}
