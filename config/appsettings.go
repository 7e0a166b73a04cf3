package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

//Data : config data
type Data struct {
	AppPort           string `mapstructure:"appPort" yaml:"appPort,omitempty"`
	ServiceName       string `mapstructure:"serviceName" yaml:"serviceName,omitempty"`
	SentryDSN         string `mapstructure:"sentryDsn" yaml:"sentryDsn,omitempty"`
	CustodyServiceURL string `mapstructure:"custodyServiceURL" yaml:"custodyServiceURL,omitempty"`
	CustodyAPIKey     string `mapstructure:"custodyApiKey" yaml:"custodyApiKey,omitempty"`
	IndexerAPIKey     string `mapstructure:"indexerApiKey" yaml:"indexerApiKey,omitempty"`
	PriceOracleURL    string `mapstructure:"priceOracleURL" yaml:"priceOracleURL,omitempty"`
	PriceOracleAPIKey string `mapstructure:"priceOracleApiKey" yaml:"priceOracleApiKey,omitempty"`
	DexOracleURL      string `mapstructure:"dexOracleURL" yaml:"dexOracleURL,omitempty"`
	BaseRPCURL        string `mapstructure:"baseRpcURL" yaml:"baseRpcURL,omitempty"`
	EthereumRPCURL    string `mapstructure:"ethereumRpcURL" yaml:"ethereumRpcURL,omitempty"`
	PolygonRPCURL     string `mapstructure:"polygonRpcURL" yaml:"polygonRpcURL,omitempty"`
	BaseIndexerURL    string `mapstructure:"baseIndexerURL" yaml:"baseIndexerURL,omitempty"`
	EthIndexerURL     string `mapstructure:"ethereumIndexerURL" yaml:"ethereumIndexerURL,omitempty"`
	PolygonIndexerURL string `mapstructure:"polygonIndexerURL" yaml:"polygonIndexerURL,omitempty"`
	PriceCacheSeconds int    `mapstructure:"priceCacheSeconds" yaml:"priceCacheSeconds,omitempty"`
	PriceWarmSpec     string `mapstructure:"priceWarmSpec" yaml:"priceWarmSpec,omitempty"`
}

//Init : initialize data
func (c *Data) Init(configDir string) {

	dir, dirErr := os.Getwd()
	if dirErr != nil {
		log.Printf("Cannot set default config directory to the current working directory >> %s", dirErr)
	}

	viper.SetEnvPrefix("wen") // Prefix all env variables with WEN (Wallet ENgine)
	viper.AutomaticEnv()
	viper.BindEnv("appPort")
	viper.BindEnv("custodyServiceURL")
	viper.BindEnv("custodyApiKey")
	viper.BindEnv("indexerApiKey")
	viper.BindEnv("priceOracleApiKey")
	viper.BindEnv("sentryDsn")

	viper.SetDefault("appPort", "8200")
	viper.SetDefault("serviceName", "crypto-wallet-engine")
	viper.SetDefault("priceOracleURL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("dexOracleURL", "https://api.dexscreener.com")
	viper.SetDefault("priceCacheSeconds", 300)
	viper.SetDefault("priceWarmSpec", "@every 4m")

	viper.SetConfigName("config")
	viper.AddConfigPath("../")
	viper.AddConfigPath(dir)
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No configuration file found, relying on environment variables")
		} else {
			panic(fmt.Errorf("fatal error: could not read from config file >> %s", err))
		}
	} else {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			if err := viper.ReadInConfig(); err != nil {
				log.Printf("Could not re-read config file after change >> %s", err)
				return
			}
			viper.Unmarshal(c)
			log.Println("Config file changed:", e.Name)
		})
	}

	viper.Unmarshal(c)
	log.Println("App configuration loaded successfully!")
}
