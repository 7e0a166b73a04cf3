package app

import (
	"net/http"
	"sync"

	"wallet-engine/controllers"
	"wallet-engine/registry"
	"wallet-engine/services"
	"wallet-engine/utility/logger"
)

var (
	once sync.Once
)

// RegisterRoutes ... Wires services to controllers and registers all routes
func (app *App) RegisterRoutes() {

	once.Do(func() {
		networks := registry.New(app.Config)

		custodyService := services.NewCustodyService(app.Cache, app.Config)
		accountService := services.NewAccountService(app.Cache, app.Config, custodyService)
		indexerService := services.NewIndexerService(app.Config)
		chainService := services.NewChainService(app.Config)
		priceService := services.NewPriceService(app.Cache, app.Config)
		signerService := services.NewSignerService(app.Config)

		balanceService := services.NewBalanceService(networks, indexerService, chainService, priceService)
		nftService := services.NewNFTService(networks, indexerService)
		historyService := services.NewHistoryService(networks, indexerService)
		transferService := services.NewTransferService(custodyService, signerService)

		baseController := &controllers.Controller{Config: app.Config, Validator: app.Validator}
		walletController := controllers.NewWalletController(app.Config, app.Validator, networks,
			accountService, balanceService, nftService, historyService, transferService)

		app.Router.HandleFunc("/ping", baseController.Ping).Methods(http.MethodGet)

		walletRouter := app.Router.PathPrefix("/wallet").Subrouter()
		walletRouter.HandleFunc("", walletController.CreateWallet).Methods(http.MethodPost)
		walletRouter.HandleFunc("/tokens/{name}", walletController.GetTokens).Methods(http.MethodGet)
		walletRouter.HandleFunc("/nfts/{name}", walletController.GetNFTs).Methods(http.MethodGet)
		walletRouter.HandleFunc("/history/{name}", walletController.GetHistory).Methods(http.MethodGet)
		walletRouter.HandleFunc("/send", walletController.SendToken).Methods(http.MethodPost)
		walletRouter.HandleFunc("/send-nft", walletController.SendNFT).Methods(http.MethodPost)
	})

	logger.Info("App routes registered successfully!")
}
