package main

import (
	"github.com/gin-gonic/gin"

	"github.com/isletme/backend/internal/domain/identity"
	"github.com/isletme/backend/internal/interfaces/http/handler"
	"github.com/isletme/backend/internal/interfaces/http/middleware"
	"github.com/isletme/backend/internal/interfaces/http/router"
)

type handlers struct {
	auth            *handler.AuthHandler
	customers       *handler.CustomerHandler
	bankAccounts    *handler.BankAccountHandler
	transactions    *handler.TransactionHandler
	loans           *handler.LoanHandler
	checks          *handler.CheckHandler
	proposals       *handler.ProposalHandler
	serviceRequests *handler.ServiceRequestHandler
	tasks           *handler.TaskHandler
	employees       *handler.EmployeeHandler
	opex            *handler.OpexHandler
	documents       *handler.DocumentHandler
	dashboard       *handler.DashboardHandler
	system          *handler.SystemHandler
}

// registerRoutes mounts every domain group on r and the probes on engine
func registerRoutes(engine *gin.Engine, r *router.Router, h handlers, authLimit gin.HandlerFunc) {
	engine.GET("/health", h.system.Health)

	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/login", authLimit, h.auth.Login)
	authRoutes.POST("/refresh", authLimit, h.auth.RefreshToken)

	identityRoutes := router.NewDomainGroup("/identity")
	identityRoutes.POST("/auth/logout", h.auth.Logout)
	identityRoutes.GET("/auth/me", h.auth.GetCurrentUser)

	// Writes in these groups change dashboard figures
	invalidate := h.dashboard.InvalidateOnWrite()

	crmRoutes := router.NewDomainGroup("/crm").Use(invalidate)
	crmRoutes.Resource("/customers", h.customers).
		GET("/customers/search", h.customers.Search).
		GET("/customers/:id/proposals", h.proposals.ListByCustomer)

	financeRoutes := router.NewDomainGroup("/finance").Use(invalidate)
	financeRoutes.Resource("/bank-accounts", h.bankAccounts).
		GET("/bank-accounts/:id/transactions", h.transactions.ListByAccount)
	financeRoutes.Resource("/transactions", h.transactions)
	financeRoutes.Resource("/loans", h.loans).
		GET("/loans/summary", h.loans.Summary)
	financeRoutes.Resource("/checks", h.checks).
		GET("/checks/upcoming", h.checks.Upcoming)

	salesRoutes := router.NewDomainGroup("/sales")
	salesRoutes.Resource("/proposals", h.proposals)
	proposal := salesRoutes.Group("/proposals/:id")
	proposal.POST("/send", h.proposals.Send).
		POST("/accept", h.proposals.Accept).
		POST("/reject", h.proposals.Reject).
		POST("/expire", h.proposals.Expire).
		GET("/preview", h.proposals.Preview).
		GET("/pdf", h.proposals.PDF).
		POST("/pdf/archive", h.proposals.Archive)

	serviceRoutes := router.NewDomainGroup("/service").Use(invalidate)
	serviceRoutes.Resource("/requests", h.serviceRequests)
	request := serviceRoutes.Group("/requests/:id")
	request.POST("/start", h.serviceRequests.Start).
		POST("/resolve", h.serviceRequests.Resolve).
		POST("/close", h.serviceRequests.Close).
		POST("/cancel", h.serviceRequests.Cancel)
	serviceRoutes.Resource("/tasks", h.tasks).
		POST("/tasks/:id/complete", h.tasks.Complete)

	hrRoutes := router.NewDomainGroup("/hr").Use(invalidate)
	hrRoutes.Resource("/employees", h.employees).
		GET("/employees/salaries/by-department", h.employees.SalariesByDepartment)

	opexRoutes := router.NewDomainGroup("/opex").Use(invalidate)
	opexRoutes.GET("/matrix", h.opex.Matrix).
		PUT("/matrix/cells", h.opex.EditCell).
		POST("/matrix/save", h.opex.SaveAll).
		GET("/matrix/export", h.opex.Export).
		POST("/matrix/import", h.opex.Import)

	documentRoutes := router.NewDomainGroup("/documents")
	documentRoutes.GET("/schemas/:type", h.documents.GetSchema).
		PUT("/schemas/:type", middleware.RequireRole(string(identity.RoleAdmin)), h.documents.SaveSchema)

	dashboardRoutes := router.NewDomainGroup("/dashboard").
		GET("/summary", h.dashboard.Summary)

	systemRoutes := router.NewDomainGroup("/system").
		GET("/info", h.system.GetSystemInfo).
		GET("/ping", h.system.Ping)

	r.Register(
		authRoutes, identityRoutes, crmRoutes, financeRoutes, salesRoutes,
		serviceRoutes, hrRoutes, opexRoutes, documentRoutes, dashboardRoutes, systemRoutes,
	)
}
