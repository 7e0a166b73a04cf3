package app

import (
	"github.com/gorilla/mux"
	validation "gopkg.in/go-playground/validator.v9"

	Config "wallet-engine/config"
	"wallet-engine/utility/cache"
)

//App : application dependencies shared by route registration
type App struct {
	Config    Config.Data
	Router    *mux.Router
	Validator *validation.Validate
	Cache     *cache.Memory
}
