package router

import (
	"github.com/Lewin99/BuddyGet/internal/aggregator"
	"github.com/Lewin99/BuddyGet/internal/config"
	"github.com/Lewin99/BuddyGet/internal/handler"
	"github.com/Lewin99/BuddyGet/internal/importer"
	"github.com/Lewin99/BuddyGet/internal/middleware"
	"github.com/Lewin99/BuddyGet/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter builds the gin engine with every route of the API.
func SetupRouter(cfg *config.Config, db *gorm.DB, agg aggregator.Client, log zerolog.Logger) (*gin.Engine, error) {
	historyStart, err := cfg.Plaid.HistoryStartDate()
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		cors.New(corsConfig(cfg.CORS)),
	)

	users := store.NewUserStore(db, cfg.Security.BcryptCost)
	budgets := store.NewBudgetStore(db)
	goals := store.NewGoalStore(db)
	accounts := store.NewAccountStore(db, cfg.Security.EncryptionKey)
	txns := store.NewTransactionStore(db)

	imp := importer.New(accounts, agg, txns, importer.Options{
		HistoryStart: historyStart,
		Timeout:      cfg.Plaid.Timeout,
	}, log)

	jwtSecret := cfg.JWT.Secret
	auth := middleware.AuthMiddleware(jwtSecret, users)
	optionalAuth := middleware.OptionalAuth(jwtSecret, users)

	r.GET("/healthz", handler.Health(db))

	authHandler := handler.NewAuthHandler(users, cfg.JWT)
	r.POST("/users", authHandler.Register)
	r.POST("/users/login", authHandler.Login)
	r.GET("/users/me", auth, authHandler.Me)

	budgetHandler := handler.NewBudgetHandler(budgets)
	budget := r.Group("/Budget", auth)
	budget.POST("/CreateBudget", budgetHandler.CreateBudget)
	budget.GET("/GetBudgets", budgetHandler.GetBudgets)
	budget.GET("/GetBudget/:id", budgetHandler.GetBudget)
	budget.PUT("/UpdateBudget/:id", budgetHandler.UpdateBudget)
	budget.DELETE("/DeleteBudget/:id", budgetHandler.DeleteBudget)
	budget.PUT("/UpdateActualSpending/:id", budgetHandler.UpdateActualSpending)

	goalHandler := handler.NewGoalHandler(goals)
	goal := r.Group("/Goals", auth)
	goal.POST("/CreateGoal", goalHandler.CreateGoal)
	goal.GET("/GetGoals", goalHandler.GetGoals)
	goal.PUT("/UpdateGoal/:id", goalHandler.UpdateGoal)
	goal.DELETE("/DeleteGoal/:id", goalHandler.DeleteGoal)

	txnHandler := handler.NewTransactionHandler(imp, txns)
	txn := r.Group("/Transactions", auth)
	txn.POST("/FetchandSaveTransactions", txnHandler.FetchAndSaveTransactions)
	txn.POST("/GetTransactions", txnHandler.GetTransactions)
	txn.GET("/GetTransactions", txnHandler.GetTransactions)
	txn.GET("/Export", txnHandler.ExportTransactions)

	linkHandler := handler.NewLinkHandler(agg, accounts, cfg.Plaid.ClientUserID)
	r.POST("/CreateLinkToken", optionalAuth, linkHandler.CreateLinkToken)
	r.POST("/ExchangePublicToken", optionalAuth, linkHandler.ExchangePublicToken)

	return r, nil
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader, "Content-Disposition"}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
