package main

import (
	"github.com/gin-gonic/gin"

	"voltbay.backend/internal/interfaces/http/handlers"
	"voltbay.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	productHandler    *handlers.ProductHandler
	paymentHandler    *handlers.PaymentHandler
	walletHandler     *handlers.WalletHandler
	orderHandler      *handlers.OrderHandler
	enterpriseHandler *handlers.EnterpriseHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Category routes (public)
		categories := v1.Group("/categories")
		{
			categories.GET("", d.productHandler.ListCategories)
		}

		// Product routes (public read)
		products := v1.Group("/products")
		{
			products.GET("", d.productHandler.ListProducts)
			products.GET("/:id", d.productHandler.GetProduct)
			products.GET("/:id/auction", d.productHandler.GetAuctionState)
			products.GET("/:id/bids", d.productHandler.ListBids)
		}

		// Product routes (protected write)
		productsAuth := v1.Group("/products")
		productsAuth.Use(d.authMiddleware)
		{
			productsAuth.POST("", d.productHandler.CreateProduct)
			productsAuth.PUT("/:id", d.productHandler.UpdateProduct)
			productsAuth.DELETE("/:id", d.productHandler.DelistProduct)
			productsAuth.POST("/:id/bids", d.productHandler.PlaceBid)
		}

		// Payment gateway config (public)
		v1.GET("/payments/config", d.paymentHandler.Config)

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/intent", middleware.IdempotencyMiddleware(), d.paymentHandler.CreateIntent)
			payments.POST("/:id/confirm", d.paymentHandler.ConfirmPayment)
			payments.GET("", d.paymentHandler.History)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("", d.walletHandler.GetWallet)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
			wallet.POST("/deposit", middleware.IdempotencyMiddleware(), d.walletHandler.Deposit)
			wallet.POST("/purchase", middleware.IdempotencyMiddleware(), d.walletHandler.Purchase)
		}

		// Order routes (protected)
		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.GET("", d.orderHandler.ListOrders)
			orders.GET("/:id", d.orderHandler.GetOrder)
			orders.PUT("/:id/status", d.orderHandler.UpdateStatus)
		}

		// Enterprise listing routes (public read, vendor write)
		listings := v1.Group("/enterprise/listings")
		{
			listings.GET("", d.enterpriseHandler.ListListings)
			listings.POST("", d.authMiddleware, middleware.RequireVendor(), d.enterpriseHandler.CreateListing)
			listings.DELETE("/:id", d.authMiddleware, middleware.RequireVendor(), d.enterpriseHandler.DeactivateListing)
		}

		// Quote request routes (protected)
		quotes := v1.Group("/enterprise/quotes")
		quotes.Use(d.authMiddleware)
		{
			quotes.POST("", d.enterpriseHandler.CreateQuoteRequest)
			quotes.GET("", d.enterpriseHandler.ListQuoteRequests)
			quotes.GET("/:id", d.enterpriseHandler.GetQuoteRequest)
			quotes.POST("/:id/respond", middleware.RequireVendor(), d.enterpriseHandler.RespondToQuote)
			quotes.POST("/:id/resolve", d.enterpriseHandler.ResolveQuote)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/orders", d.adminHandler.ListOrders)
			admin.PUT("/users/:id/role", d.adminHandler.UpdateUserRole)
		}
	}
}
